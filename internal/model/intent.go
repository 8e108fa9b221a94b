package model

// ParsedIntent represents the structured filters extracted from a chat message.
// A nil field means the message did not mention it; absence is a valid state,
// not an error.
type ParsedIntent struct {
	BHK      *int     `json:"bhk,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	City     *string  `json:"city,omitempty"`
}

// IsEmpty reports whether no filter was extracted from the message
func (i ParsedIntent) IsEmpty() bool {
	return i.BHK == nil && i.MinPrice == nil && i.MaxPrice == nil && i.City == nil
}
