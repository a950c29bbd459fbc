package models

import (
	"time"
)

// Link represents one shortened URL owned by a user.
type Link struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	OriginalURL  string     `json:"originalUrl"`
	ShortCode    string     `json:"shortCode"`
	CustomAlias  *string    `json:"customAlias,omitempty"` // Overrides ShortCode when set
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	ClickCount   int        `json:"clickCount"`
	IsActive     bool       `json:"isActive"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	PasswordHash *string    `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Alias returns the code the link resolves under: the custom alias
// when present, the generated short code otherwise.
func (l Link) Alias() string {
	if l.CustomAlias != nil && *l.CustomAlias != "" {
		return *l.CustomAlias
	}
	return l.ShortCode
}

// Expired reports whether the link has an expiry in the past.
func (l Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
