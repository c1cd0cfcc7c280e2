package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

// Catalog is the process-wide in-memory video repository: metadata,
// ownership records, and per-video rating ledgers. It is constructed
// once at startup and injected into the usecase layer; state does not
// survive restarts.
type Catalog struct {
	lastID atomic.Int64

	mu      sync.RWMutex
	videos  map[int64]usecase.Video
	owners  map[int64]string
	ratings map[int64]*ledger
}

var _ usecase.Repository = (*Catalog)(nil)

func New() *Catalog {
	return &Catalog{
		videos:  make(map[int64]usecase.Video),
		owners:  make(map[int64]string),
		ratings: make(map[int64]*ledger),
	}
}

// SaveVideo stores a new video or, when another video already carries the
// same title, replaces that video's record. New videos with an unassigned
// id (0) get a fresh one. The metadata record, ownership record, and empty
// ledger are published under one lock so readers never observe a video
// without its owner.
//
// The update gate checks that the submitter owns some video in the
// catalog, not that they own the video being replaced. That is the
// documented contract; see TestSaveUpdateByOtherOwner.
func (c *Catalog) SaveVideo(_ context.Context, v usecase.Video, owner string) (usecase.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.findByTitleLocked(v.Title); ok {
		if !c.ownerKnownLocked(owner) {
			return usecase.Video{}, fmt.Errorf("title %q already taken: %w", v.Title, usecase.ErrConflict)
		}
		v.ID = id
		c.videos[id] = v
		return v, nil
	}

	if v.ID == 0 {
		v.ID = c.lastID.Add(1)
	}
	c.videos[v.ID] = v
	c.owners[v.ID] = owner
	c.ratings[v.ID] = newLedger()
	return v, nil
}

func (c *Catalog) FindVideoByID(_ context.Context, id int64) (usecase.Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.videos[id]
	if !ok {
		return usecase.Video{}, fmt.Errorf("video %d: %w", id, usecase.ErrNotFound)
	}
	return v, nil
}

// FindAllVideos returns a point-in-time copy. Writers racing with the
// snapshot either appear in it fully or not at all.
func (c *Catalog) FindAllVideos(_ context.Context) ([]usecase.Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]usecase.Video, 0, len(c.videos))
	for _, v := range c.videos {
		list = append(list, v)
	}
	return list, nil
}

// FindVideoOwner resolves the owner of the first stored video whose title
// matches, mirroring SaveVideo's title-based dedup key.
func (c *Catalog) FindVideoOwner(_ context.Context, v usecase.Video) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.findByTitleLocked(v.Title)
	if !ok {
		return "", fmt.Errorf("owner of %q: %w", v.Title, usecase.ErrNotFound)
	}
	return c.owners[id], nil
}

// SetVideoRating upserts the user's rating for the video. Unknown ids are
// a silent no-op; callers that need a not-found signal check existence
// first.
func (c *Catalog) SetVideoRating(_ context.Context, id int64, rating float64, user string) error {
	c.mu.RLock()
	l, ok := c.ratings[id]
	c.mu.RUnlock()

	if !ok {
		return nil
	}
	l.upsert(user, rating)
	return nil
}

// GetVideoRating recomputes the mean over the video's current ledger,
// refreshes the cached aggregate on the stored record, and returns it.
func (c *Catalog) GetVideoRating(_ context.Context, id int64) (float64, error) {
	c.mu.RLock()
	l, ok := c.ratings[id]
	c.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("ratings for video %d: %w", id, usecase.ErrNotFound)
	}
	avg := l.average()

	c.mu.Lock()
	if v, ok := c.videos[id]; ok {
		v.Rating = avg
		c.videos[id] = v
	}
	c.mu.Unlock()

	return avg, nil
}

func (c *Catalog) GetTotalRatings(_ context.Context, id int64) (int, error) {
	c.mu.RLock()
	l, ok := c.ratings[id]
	c.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("ratings for video %d: %w", id, usecase.ErrNotFound)
	}
	return l.size(), nil
}

func (c *Catalog) Health() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]string{
		"status": "up",
		"videos": strconv.Itoa(len(c.videos)),
	}
}

func (c *Catalog) findByTitleLocked(title string) (int64, bool) {
	for id, v := range c.videos {
		if v.Title == title {
			return id, true
		}
	}
	return 0, false
}

func (c *Catalog) ownerKnownLocked(owner string) bool {
	for _, o := range c.owners {
		if o == owner {
			return true
		}
	}
	return false
}
