package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinkAlias(t *testing.T) {
	t.Run("Short code by default", func(t *testing.T) {
		link := Link{ShortCode: "abc123"}
		assert.Equal(t, "abc123", link.Alias())
	})

	t.Run("Custom alias wins", func(t *testing.T) {
		alias := "my-campaign"
		link := Link{ShortCode: "abc123", CustomAlias: &alias}
		assert.Equal(t, "my-campaign", link.Alias())
	})

	t.Run("Empty custom alias ignored", func(t *testing.T) {
		alias := ""
		link := Link{ShortCode: "abc123", CustomAlias: &alias}
		assert.Equal(t, "abc123", link.Alias())
	})
}

func TestLinkExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("No expiry never expires", func(t *testing.T) {
		assert.False(t, Link{}.Expired(now))
	})

	t.Run("Past expiry", func(t *testing.T) {
		past := now.Add(-time.Hour)
		assert.True(t, Link{ExpiresAt: &past}.Expired(now))
	})

	t.Run("Future expiry", func(t *testing.T) {
		future := now.Add(time.Hour)
		assert.False(t, Link{ExpiresAt: &future}.Expired(now))
	})
}

func TestLinkJSONShape(t *testing.T) {
	link := Link{
		ID:          "link_1",
		UserID:      "user_1",
		OriginalURL: "https://example.com",
		ShortCode:   "abc123",
		IsActive:    true,
	}
	raw, err := json.Marshal(link)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "https://example.com", decoded["originalUrl"])
	assert.NotContains(t, decoded, "customAlias")
	assert.NotContains(t, decoded, "passwordHash")
}
