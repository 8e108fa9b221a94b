package model

import "time"

// Enquiry is a contact request left by a visitor, typically after the chatbot
// could not find a matching property.
type Enquiry struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Message    string    `json:"message" db:"message"`
	PropertyID *int64    `json:"property_id,omitempty" db:"property_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// EnquiryRequest represents an enquiry submission
type EnquiryRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Message    string `json:"message" binding:"required"`
	PropertyID *int64 `json:"property_id,omitempty"`
}

// EnquiryResponse represents the enquiry submission result
type EnquiryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
