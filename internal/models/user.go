package models

import "time"

// User represents a registered business owner
type User struct {
	ID           int64      `json:"id"`
	PhoneNumber  string     `json:"phone_number"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email,omitempty"`
	OTPHash      string     `json:"-"` // Not serialized
	OTPExpiresAt *time.Time `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
