package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/config"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/query"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/store"
	"github.com/LUXA-Digital-Solutions/lynkz/pkg/utils"
)

const shortCodeLength = 6

// API fronts the store the way the real backend would: every call pays the
// configured artificial latency before touching data, ids and timestamps are
// generated server-side, and inputs are validated before any mutation.
//
// Calls are safe to issue concurrently. A latency delay, once begun, always
// runs to completion; the context is not used to abort in-flight operations.
type API struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	geo     *GeoResolver
	limiter *IPRateLimiter
	account models.User

	latency time.Duration
	sleep   func(time.Duration)
	now     func() time.Time
	newID   func(prefix string) string
	codeGen func(int) string
}

func NewAPI(cfg config.Config, logger *slog.Logger, st *store.Store, geo *GeoResolver, limiter *IPRateLimiter, account models.User) *API {
	return &API{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		geo:     geo,
		limiter: limiter,
		account: account,
		latency: cfg.APILatency(),
		sleep:   time.Sleep,
		now:     time.Now,
		newID:   utils.NewID,
		codeGen: utils.GenerateShortCode,
	}
}

// delay simulates network latency. This is the suspension point every caller
// must treat as asynchronous.
func (a *API) delay() {
	if a.latency > 0 {
		a.sleep(a.latency)
	}
}

// Me returns the simulated account.
func (a *API) Me(ctx context.Context) (models.User, error) {
	a.delay()
	return a.account, nil
}

// ListLinks returns a filtered, ordered and limited snapshot of the links.
func (a *API) ListLinks(ctx context.Context, opts query.Options) ([]models.Link, error) {
	a.delay()
	return query.Apply(a.store.ListLinks(), opts), nil
}

// ListClicks returns a filtered, ordered and limited snapshot of the clicks.
func (a *API) ListClicks(ctx context.Context, opts query.Options) ([]models.LinkClick, error) {
	a.delay()
	return query.Apply(a.store.ListClicks(), opts), nil
}

// CreateLinkInput carries the caller-supplied fields of a new link. A short
// code is generated when none is given.
type CreateLinkInput struct {
	OriginalURL string     `json:"originalUrl" validate:"required,http_url"`
	ShortCode   string     `json:"shortCode" validate:"omitempty,max=20"`
	CustomAlias *string    `json:"customAlias,omitempty" validate:"omitempty,max=50"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (a *API) CreateLink(ctx context.Context, input CreateLinkInput) (models.Link, error) {
	a.delay()

	if err := validateInput(input); err != nil {
		return models.Link{}, err
	}

	shortCode := input.ShortCode
	if shortCode != "" {
		if a.shortCodeTaken(shortCode) {
			return models.Link{}, &store.ValidationError{Field: "shortCode", Reason: "already taken"}
		}
	} else {
		for {
			shortCode = a.codeGen(shortCodeLength)
			if !a.shortCodeTaken(shortCode) {
				break
			}
		}
	}

	now := a.now().UTC()
	link := models.Link{
		ID:          a.newID("link"),
		UserID:      a.account.ID,
		OriginalURL: input.OriginalURL,
		ShortCode:   shortCode,
		CustomAlias: input.CustomAlias,
		Title:       input.Title,
		Description: input.Description,
		ClickCount:  0,
		IsActive:    true,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.AddLink(link); err != nil {
		return models.Link{}, err
	}

	a.logger.Info("Link created", "id", link.ID, "shortCode", link.ShortCode)
	return link, nil
}

func (a *API) shortCodeTaken(code string) bool {
	for _, l := range a.store.ListLinks() {
		if l.ShortCode == code {
			return true
		}
	}
	return false
}

// UpdateLink applies a partial patch and returns the updated record.
func (a *API) UpdateLink(ctx context.Context, id string, patch store.LinkPatch) (models.Link, error) {
	a.delay()

	link, err := a.store.UpdateLink(id, patch)
	if err != nil {
		return models.Link{}, err
	}
	a.logger.Info("Link updated", "id", id)
	return link, nil
}

// DeleteLink removes a link, applying the configured cascade policy to its
// clicks.
func (a *API) DeleteLink(ctx context.Context, id string) error {
	a.delay()

	if err := a.store.DeleteLink(id, a.cfg.CascadeClicks); err != nil {
		return err
	}
	a.logger.Info("Link deleted", "id", id, "cascade", a.cfg.CascadeClicks)
	return nil
}

// ClickMeta carries the request attributes of a visit.
type ClickMeta struct {
	UserAgent string
	IPAddress string
	Referrer  string
}

// RecordClick records a visit against a link. The click is enriched with
// device, browser and location before it is stored; the link's counter is
// incremented as a side effect when the link still exists. When flood control
// is enabled and the source IP is over its budget the click is dropped
// silently and a zero-valued click is returned.
func (a *API) RecordClick(ctx context.Context, linkID string, meta ClickMeta) (models.LinkClick, error) {
	a.delay()

	if a.limiter != nil && !a.limiter.Allow(meta.IPAddress) {
		a.logger.Warn("Click rate exceeded, dropping click", "linkId", linkID, "ip", meta.IPAddress)
		return models.LinkClick{}, nil
	}

	click := models.LinkClick{
		ID:        a.newID("click"),
		LinkID:    linkID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		Referrer:  meta.Referrer,
		ClickedAt: a.now().UTC(),
	}
	enrichClick(&click, a.geo)

	if err := a.store.AddClick(click); err != nil {
		return models.LinkClick{}, err
	}
	return click, nil
}
