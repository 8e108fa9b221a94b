package model

// Conversation turn types accepted from the frontend
const (
	TurnUser   = "user"
	TurnBot    = "bot"
	TurnSystem = "system"
)

// ConversationTurn is one prior message in the chat widget
type ConversationTurn struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatRequest represents a chatbot message request
type ChatRequest struct {
	Message             string             `json:"message" binding:"required"`
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
}

// ChatResponse represents the chatbot reply. Properties carries exact matches
// if any, else alternatives if any, else null; the two sets are never merged.
type ChatResponse struct {
	Success    bool       `json:"success"`
	Reply      string     `json:"reply"`
	Properties []Property `json:"properties"`
}

// ResultState classifies the outcome of a chatbot search. The three states
// are mutually exclusive.
type ResultState string

const (
	StateExactMatch   ResultState = "EXACT_MATCH"
	StateAlternatives ResultState = "ALTERNATIVES"
	StateNoResults    ResultState = "NO_RESULTS"
)

// ChatLog records one handled chatbot turn for the analytics dashboard
type ChatLog struct {
	ID             string       `json:"id" db:"id"`
	Message        string       `json:"message" db:"message"`
	Intent         ParsedIntent `json:"intent" db:"-"`
	ResultState    ResultState  `json:"result_state" db:"result_state"`
	ResultCount    int          `json:"result_count" db:"result_count"`
	ResponseTimeMs int64        `json:"response_time_ms" db:"response_time_ms"`
}

// ChatStats holds aggregate counters for the admin dashboard
type ChatStats struct {
	TotalMessages   int64   `json:"total_messages" db:"total_messages"`
	ExactMatches    int64   `json:"exact_matches" db:"exact_matches"`
	Alternatives    int64   `json:"alternatives" db:"alternatives"`
	NoResults       int64   `json:"no_results" db:"no_results"`
	AvgResponseTime float64 `json:"avg_response_time_ms" db:"avg_response_time_ms"`
}
