package store

import (
	"time"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
)

// DemoUser is the single simulated account used by the seed dataset and the
// auth service.
var DemoUser = models.User{
	ID:          "user_1",
	Email:       "demo@example.com",
	DisplayName: "Demo User",
	Avatar:      "https://api.dicebear.com/6.x/avataaars/svg?seed=demo",
}

func strptr(s string) *string { return &s }

// Seed loads the demo dataset: three links and a handful of recent clicks so
// a fresh process has something to show on the dashboard. Click timestamps
// are spread over the trailing days relative to the store clock so the 7-day
// series is populated.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	s.links = []models.Link{
		{
			ID:          "link_1",
			UserID:      DemoUser.ID,
			OriginalURL: "https://example.com/very-long-url-1",
			ShortCode:   "abc123",
			Title:       strptr("Example Link 1"),
			Description: strptr("First example link"),
			ClickCount:  150,
			IsActive:    true,
			CreatedAt:   now.AddDate(0, 0, -15),
			UpdatedAt:   now.AddDate(0, 0, -15),
		},
		{
			ID:          "link_2",
			UserID:      DemoUser.ID,
			OriginalURL: "https://example.com/very-long-url-2",
			ShortCode:   "def456",
			Title:       strptr("Example Link 2"),
			ClickCount:  75,
			IsActive:    true,
			CreatedAt:   now.AddDate(0, 0, -10),
			UpdatedAt:   now.AddDate(0, 0, -10),
		},
		{
			ID:          "link_3",
			UserID:      DemoUser.ID,
			OriginalURL: "https://example.com/very-long-url-3",
			ShortCode:   "ghi789",
			CustomAlias: strptr("custom-link"),
			Title:       strptr("Example Link 3"),
			Description: strptr("Third example link"),
			ClickCount:  200,
			IsActive:    false,
			CreatedAt:   now.AddDate(0, 0, -5),
			UpdatedAt:   now.AddDate(0, 0, -5),
		},
	}

	s.clicks = []models.LinkClick{
		{
			ID:         "click_1",
			LinkID:     "link_1",
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			IPAddress:  "192.168.1.1",
			Referrer:   "https://google.com",
			Country:    "United States",
			City:       "New York",
			DeviceType: "Desktop",
			Browser:    "Chrome",
			ClickedAt:  now.Add(-1 * time.Hour),
		},
		{
			ID:         "click_2",
			LinkID:     "link_1",
			UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0)",
			IPAddress:  "192.168.1.2",
			Referrer:   "https://twitter.com",
			Country:    "United Kingdom",
			City:       "London",
			DeviceType: "Mobile",
			Browser:    "Safari",
			ClickedAt:  now.Add(-90 * time.Minute),
		},
		{
			ID:         "click_3",
			LinkID:     "link_2",
			UserAgent:  "Mozilla/5.0 (iPad; CPU OS 14_0)",
			IPAddress:  "192.168.1.3",
			Referrer:   "https://facebook.com",
			Country:    "Canada",
			City:       "Toronto",
			DeviceType: "Tablet",
			Browser:    "Firefox",
			ClickedAt:  now.AddDate(0, 0, -2),
		},
	}
}
