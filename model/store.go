package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var plog = logrus.WithFields(logrus.Fields{
	"env": "Store",
})

// Store owns the in-memory timeline and mirrors it to a Slot.
type Store struct {
	mu     sync.Mutex
	slot   Slot
	author Author
	now    func() time.Time
	posts  []Post
	loaded bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAuthor sets the local user identity used for new posts.
func WithAuthor(a Author) StoreOption {
	return func(s *Store) { s.author = a }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store backed by slot. Nothing is read until first use.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:   slot,
		author: DefaultAuthor,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Author returns the local user identity.
func (s *Store) Author() Author {
	return s.author
}

// Load reads the slot into memory and returns a copy of the list. An empty
// or corrupt slot is replaced by seed data. A failed seed write is returned
// wrapped in ErrPersist together with the seeded list.
func (s *Store) Load(ctx context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.load(ctx)
	if err != nil && !errors.Is(err, ErrPersist) {
		return nil, err
	}
	return s.snapshot(), err
}

// Save overwrites the slot with list and adopts it as the in-memory state.
// A list with repeated ids is rejected with ErrDuplicateID and nothing
// changes.
func (s *Store) Save(ctx context.Context, list []Post) error {
	seen := make(map[int64]bool, len(list))
	for _, p := range list {
		if seen[p.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make([]Post, len(list))
	copy(s.posts, list)
	s.loaded = true
	return s.save(ctx)
}

// Posts returns a copy of the list in storage order.
func (s *Store) Posts(ctx context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// Create appends a new post by the local user. Blank content is rejected
// with ErrEmptyContent and leaves the store untouched.
func (s *Store) Create(ctx context.Context, content string) (Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Post{}, ErrEmptyContent
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return Post{}, err
	}
	ts := s.now().UnixMilli()
	p := Post{
		ID:      s.nextID(ts),
		Author:  s.author,
		Content: content,
		Time:    ts,
	}
	s.posts = append(s.posts, p)
	plog.Debugf("Created post %d", p.ID)
	return p, s.save(ctx)
}

// ToggleLike flips the like state of the post with id.
func (s *Store) ToggleLike(ctx context.Context, id int64) (Post, error) {
	return s.toggle(ctx, id, (*Post).toggleLike)
}

// ToggleRetweet flips the retweet state of the post with id.
func (s *Store) ToggleRetweet(ctx context.Context, id int64) (Post, error) {
	return s.toggle(ctx, id, (*Post).toggleRetweet)
}

func (s *Store) toggle(ctx context.Context, id int64, fn func(*Post)) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return Post{}, err
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			fn(&s.posts[i])
			return s.posts[i], s.save(ctx)
		}
	}
	return Post{}, ErrPostNotFound
}

// nextID returns ts, or the first unused id above it.
func (s *Store) nextID(ts int64) int64 {
	used := make(map[int64]bool, len(s.posts))
	for _, p := range s.posts {
		used[p.ID] = true
	}
	id := ts
	for used[id] {
		id++
	}
	return id
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	err := s.load(ctx)
	if errors.Is(err, ErrPersist) {
		plog.Warnf("Seed data not persisted: %s", err)
		return nil
	}
	return err
}

func (s *Store) load(ctx context.Context) error {
	raw, err := s.slot.Read(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
	case errors.Is(err, ErrCorrupt):
		plog.Warnf("Discarding stored timeline: %s", err)
	default:
		return fmt.Errorf("read slot: %w", err)
	}
	if err == nil {
		posts, issues, derr := DecodePosts(raw)
		if derr == nil {
			s.posts = posts
			s.loaded = true
			if len(issues) == 0 {
				return nil
			}
			for _, issue := range issues {
				plog.Warnf("Stored timeline: %s", issue)
			}
			return s.save(ctx)
		}
		plog.Warnf("Discarding stored timeline: %s", derr)
	}
	plog.Info("Initializing timeline with seed posts")
	s.posts = SeedPosts(s.now(), s.author)
	s.loaded = true
	return s.save(ctx)
}

func (s *Store) save(ctx context.Context) error {
	b, err := EncodePosts(s.posts)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, b); err != nil {
		plog.Errorf("Could not write slot: %s", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func (s *Store) snapshot() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}
