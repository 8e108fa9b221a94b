package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Property represents a listing on the site
type Property struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Price     float64   `json:"price" db:"price"`
	BHK       int       `json:"bhk" db:"bhk"`
	Bathrooms int       `json:"bathrooms" db:"bathrooms"`
	City      string    `json:"city" db:"city"`
	Address   string    `json:"address" db:"address"`
	Area      *string   `json:"area,omitempty" db:"area"`
	Amenities JSONArray `json:"amenities" db:"amenities"`
	Images    ImageList `json:"images" db:"images"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Image is a single hosted property image
type Image struct {
	URL string `json:"url"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// ImageList represents a JSON array of image objects
type ImageList []Image

// Value implements driver.Valuer interface
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), l)
	}
	return json.Unmarshal(bytes, l)
}
