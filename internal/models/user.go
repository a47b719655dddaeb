package models

import "time"

// User is a registered (or guest) account.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // don’t expose hash
	DietaryPrefs string    `json:"dietaryPreferences,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileUpdate carries optional profile changes. Empty string means
// "leave unchanged", never "clear".
type ProfileUpdate struct {
	Name         string
	Email        string
	DietaryPrefs string
	Password     string
}
