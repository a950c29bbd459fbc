package models

import (
	"time"
)

// LinkClick is one recorded visit to a short link. Clicks are immutable
// once recorded and may outlive the link they reference.
type LinkClick struct {
	ID         string    `json:"id"`
	LinkID     string    `json:"linkId"`
	UserAgent  string    `json:"userAgent,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
	Country    string    `json:"country,omitempty"`
	City       string    `json:"city,omitempty"`
	DeviceType string    `json:"deviceType,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	ClickedAt  time.Time `json:"clickedAt"`
}
