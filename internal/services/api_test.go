package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/config"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/query"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/store"
)

func setupTestAPI(cfg config.Config) (*API, *store.Store) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	st := store.New(logger)
	api := NewAPI(cfg, logger, st, nil, nil, store.DemoUser)

	seq := 0
	api.newID = func(prefix string) string {
		seq++
		return fmt.Sprintf("%s_%d", prefix, seq)
	}
	return api, st
}

func TestMe(t *testing.T) {
	api, _ := setupTestAPI(config.Config{})

	user, err := api.Me(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, store.DemoUser, user)
}

func TestCreateLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Server-side fields filled", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		link, err := api.CreateLink(ctx, CreateLinkInput{
			OriginalURL: "https://a.com",
			ShortCode:   "abc123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "link_1", link.ID)
		assert.Equal(t, store.DemoUser.ID, link.UserID)
		assert.Equal(t, "abc123", link.ShortCode)
		assert.Zero(t, link.ClickCount)
		assert.True(t, link.IsActive)
		assert.Equal(t, link.CreatedAt, link.UpdatedAt)
	})

	t.Run("Short code generated when absent", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		link, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})
		assert.NoError(t, err)
		assert.Len(t, link.ShortCode, shortCodeLength)
	})

	t.Run("Generator retries on collision", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		calls := 0
		api.codeGen = func(int) string {
			calls++
			if calls == 1 {
				return "COLLIDE"
			}
			return "UNIQUE"
		}

		_, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com", ShortCode: "COLLIDE"})
		assert.NoError(t, err)

		link, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://b.com"})
		assert.NoError(t, err)
		assert.Equal(t, "UNIQUE", link.ShortCode)
		assert.Equal(t, 2, calls)
	})

	t.Run("Missing URL rejected", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		_, err := api.CreateLink(ctx, CreateLinkInput{ShortCode: "abc123"})

		var verr *store.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "originalUrl", verr.Field)
	})

	t.Run("Non-http URL rejected", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		_, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "ftp://a.com"})

		var verr *store.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Duplicate short code rejected", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})

		_, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com", ShortCode: "taken1"})
		assert.NoError(t, err)

		_, err = api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://b.com", ShortCode: "taken1"})
		var verr *store.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "shortCode", verr.Field)
	})
}

func TestUpdateAndDeleteLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Update patches through the facade", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})
		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})

		title := "Renamed"
		updated, err := api.UpdateLink(ctx, link.ID, store.LinkPatch{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", *updated.Title)
	})

	t.Run("Delete honours the cascade policy", func(t *testing.T) {
		api, st := setupTestAPI(config.Config{CascadeClicks: true})
		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})
		_, err := api.RecordClick(ctx, link.ID, ClickMeta{})
		assert.NoError(t, err)

		assert.NoError(t, api.DeleteLink(ctx, link.ID))
		assert.Empty(t, st.ListClicks())

		err = api.DeleteLink(ctx, link.ID)
		var nferr *store.NotFoundError
		assert.ErrorAs(t, err, &nferr)
	})
}

func TestRecordClick(t *testing.T) {
	ctx := context.Background()

	t.Run("Enriches from the user agent", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})
		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})

		click, err := api.RecordClick(ctx, link.ID, ClickMeta{
			UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			IPAddress: "203.0.113.10",
			Referrer:  "https://twitter.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Mobile", click.DeviceType)
		assert.Contains(t, click.Browser, "Safari")
		assert.Equal(t, "Unknown", click.Country) // no GeoIP configured
		assert.False(t, click.ClickedAt.IsZero())
	})

	t.Run("Empty metadata falls back to Unknown", func(t *testing.T) {
		api, _ := setupTestAPI(config.Config{})
		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})

		click, err := api.RecordClick(ctx, link.ID, ClickMeta{})
		assert.NoError(t, err)
		assert.Equal(t, "Unknown", click.DeviceType)
		assert.Equal(t, "Unknown", click.Browser)
		assert.Equal(t, "Unknown", click.Country)
	})

	t.Run("Click count tracks recorded clicks", func(t *testing.T) {
		api, st := setupTestAPI(config.Config{})
		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})

		for i := 0; i < 5; i++ {
			_, err := api.RecordClick(ctx, link.ID, ClickMeta{})
			assert.NoError(t, err)
		}

		stored, err := st.GetLink(link.ID)
		assert.NoError(t, err)
		assert.Equal(t, 5, stored.ClickCount)
	})

	t.Run("Flood control drops silently", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		st := store.New(logger)
		limiter := NewIPRateLimiter(rate.Limit(1), 1, logger)
		api := NewAPI(config.Config{}, logger, st, nil, limiter, store.DemoUser)

		link, _ := api.CreateLink(ctx, CreateLinkInput{OriginalURL: "https://a.com"})

		first, err := api.RecordClick(ctx, link.ID, ClickMeta{IPAddress: "203.0.113.10"})
		assert.NoError(t, err)
		assert.NotEmpty(t, first.ID)

		second, err := api.RecordClick(ctx, link.ID, ClickMeta{IPAddress: "203.0.113.10"})
		assert.NoError(t, err)
		assert.Empty(t, second.ID)

		assert.Len(t, st.ListClicks(), 1)
	})
}

func TestListThroughQueryEngine(t *testing.T) {
	ctx := context.Background()
	api, _ := setupTestAPI(config.Config{})

	for i := 0; i < 3; i++ {
		_, err := api.CreateLink(ctx, CreateLinkInput{OriginalURL: fmt.Sprintf("https://a.com/%d", i)})
		assert.NoError(t, err)
	}
	inactive := false
	_, err := api.UpdateLink(ctx, "link_2", store.LinkPatch{IsActive: &inactive})
	assert.NoError(t, err)

	active, err := api.ListLinks(ctx, query.Options{Where: map[string]any{"isActive": true}})
	assert.NoError(t, err)
	assert.Len(t, active, 2)

	limited, err := api.ListLinks(ctx, query.Options{Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEndToEndAnalytics(t *testing.T) {
	ctx := context.Background()
	api, st := setupTestAPI(config.Config{})
	analytics := NewAnalyticsService()

	link, err := api.CreateLink(ctx, CreateLinkInput{
		OriginalURL: "https://a.com",
		ShortCode:   "abc123",
	})
	assert.NoError(t, err)

	countries := []string{"US", "US", "FR"}
	for i, country := range countries {
		click := models.LinkClick{
			ID:        fmt.Sprintf("seeded_click_%d", i),
			LinkID:    link.ID,
			Country:   country,
			ClickedAt: time.Now().UTC(),
		}
		assert.NoError(t, st.AddClick(click))
	}

	byCountry := analytics.ClicksByCountry(st.ListClicks())
	assert.Equal(t, []CountryStat{
		{Country: "US", Clicks: 2},
		{Country: "FR", Clicks: 1},
	}, byCountry)

	stored, err := st.GetLink(link.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, stored.ClickCount)
}
