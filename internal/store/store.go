package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
)

// Store holds the authoritative in-memory Link and LinkClick collections.
// All mutations go through it; reads return defensive snapshot copies so
// callers can never reach the backing slices. Every mutation is all-or-nothing
// on a single record.
type Store struct {
	mu     sync.RWMutex
	links  []models.Link
	clicks []models.LinkClick
	logger *slog.Logger
	now    func() time.Time
}

func New(logger *slog.Logger) *Store {
	return &Store{
		logger: logger,
		now:    time.Now,
	}
}

// LinkPatch is a partial update for a Link. Nil fields are left untouched.
type LinkPatch struct {
	OriginalURL  *string
	ShortCode    *string
	CustomAlias  *string
	Title        *string
	Description  *string
	ClickCount   *int
	IsActive     *bool
	ExpiresAt    *time.Time
	PasswordHash *string
}

// ListLinks returns a snapshot of all links in insertion order.
func (s *Store) ListLinks() []models.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Link, len(s.links))
	copy(out, s.links)
	return out
}

// GetLink returns the link with the given id.
func (s *Store) GetLink(id string) (models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Link{}, &NotFoundError{Entity: "link", ID: id}
}

// AddLink appends a link. Id generation is the caller's responsibility;
// inserting a duplicate id is a contract violation.
func (s *Store) AddLink(link models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.links {
		if l.ID == link.ID {
			return &ValidationError{Field: "id", Reason: "link id already exists"}
		}
	}
	s.links = append(s.links, link)
	return nil
}

// UpdateLink merges non-nil patch fields into the stored record and refreshes
// UpdatedAt. A no-op patch still refreshes UpdatedAt.
func (s *Store) UpdateLink(id string, patch LinkPatch) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, l := range s.links {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Link{}, &NotFoundError{Entity: "link", ID: id}
	}

	link := s.links[idx]
	if patch.OriginalURL != nil {
		link.OriginalURL = *patch.OriginalURL
	}
	if patch.ShortCode != nil {
		link.ShortCode = *patch.ShortCode
	}
	if patch.CustomAlias != nil {
		link.CustomAlias = patch.CustomAlias
	}
	if patch.Title != nil {
		link.Title = patch.Title
	}
	if patch.Description != nil {
		link.Description = patch.Description
	}
	if patch.ClickCount != nil {
		link.ClickCount = *patch.ClickCount
	}
	if patch.IsActive != nil {
		link.IsActive = *patch.IsActive
	}
	if patch.ExpiresAt != nil {
		link.ExpiresAt = patch.ExpiresAt
	}
	if patch.PasswordHash != nil {
		link.PasswordHash = patch.PasswordHash
	}
	link.UpdatedAt = s.now().UTC()

	s.links[idx] = link
	return link, nil
}

// DeleteLink removes the link. When cascade is set, clicks referencing the
// link are removed with it; otherwise they are kept for historical analytics.
func (s *Store) DeleteLink(id string, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, l := range s.links {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &NotFoundError{Entity: "link", ID: id}
	}
	s.links = append(s.links[:idx], s.links[idx+1:]...)

	if cascade {
		kept := s.clicks[:0]
		for _, c := range s.clicks {
			if c.LinkID != id {
				kept = append(kept, c)
			}
		}
		s.clicks = kept
	}
	return nil
}

// ListClicks returns a snapshot of all clicks in insertion order.
func (s *Store) ListClicks() []models.LinkClick {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LinkClick, len(s.clicks))
	copy(out, s.clicks)
	return out
}

// AddClick records a click and increments the referenced link's ClickCount.
// If the link no longer exists the click is still recorded and no counter is
// touched.
func (s *Store) AddClick(click models.LinkClick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clicks {
		if c.ID == click.ID {
			return &ValidationError{Field: "id", Reason: "click id already exists"}
		}
	}
	s.clicks = append(s.clicks, click)

	for i := range s.links {
		if s.links[i].ID == click.LinkID {
			s.links[i].ClickCount++
			return nil
		}
	}
	s.logger.Debug("click recorded for missing link", "linkId", click.LinkID)
	return nil
}
