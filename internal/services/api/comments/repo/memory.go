package repo

import (
	"context"
	"sync"
	"time"

	perr "commentedit/internal/platform/errors"
	"commentedit/internal/services/api/comments/domain"
)

type flagKey struct {
	comment int64
	user    string
	label   string
}

// Memory is an in process domain.Store; one mutex guards everything
type Memory struct {
	mu       sync.Mutex
	comments map[int64]domain.Comment
	flags    map[flagKey]domain.CommentFlag
	nextFlag int64
	now      func() time.Time
}

var _ domain.Store = (*Memory)(nil)

// NewMemory returns a store seeded with comments
func NewMemory(seed ...domain.Comment) *Memory {
	m := &Memory{
		comments: make(map[int64]domain.Comment, len(seed)),
		flags:    map[flagKey]domain.CommentFlag{},
		now:      time.Now,
	}
	for _, c := range seed {
		m.comments[c.ID] = c
	}
	return m
}

func (m *Memory) FindComment(_ context.Context, id, siteID int64) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id, siteID)
}

func (m *Memory) SaveComment(_ context.Context, c domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(c)
}

func (m *Memory) FindOrCreateFlag(_ context.Context, commentID int64, userID, label string) (domain.CommentFlag, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flag(commentID, userID, label)
}

// Atomic runs fn under the store lock; a failing fn rolls back every write it made
func (m *Memory) Atomic(_ context.Context, fn func(domain.CommentStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{m: m, comments: map[int64]domain.Comment{}, flags: map[flagKey]domain.CommentFlag{}}
	if err := fn(tx); err != nil {
		return err
	}
	for id, c := range tx.comments {
		m.comments[id] = c
	}
	for k, f := range tx.flags {
		m.flags[k] = f
	}
	return nil
}

// Flags returns a snapshot of every flag
func (m *Memory) Flags() []domain.CommentFlag {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CommentFlag, 0, len(m.flags))
	for _, f := range m.flags {
		out = append(out, f)
	}
	return out
}

func (m *Memory) find(id, siteID int64) (domain.Comment, error) {
	c, ok := m.comments[id]
	if !ok || c.SiteID != siteID {
		return domain.Comment{}, perr.NotFoundf("comment %d not found", id)
	}
	return c, nil
}

func (m *Memory) save(c domain.Comment) error {
	if _, ok := m.comments[c.ID]; !ok {
		return perr.ErrNotFound
	}
	m.comments[c.ID] = c
	return nil
}

func (m *Memory) flag(commentID int64, userID, label string) (domain.CommentFlag, bool, error) {
	k := flagKey{commentID, userID, label}
	if f, ok := m.flags[k]; ok {
		return f, false, nil
	}
	if _, ok := m.comments[commentID]; !ok {
		return domain.CommentFlag{}, false, perr.Newf(perr.ErrorCodeInvalidArgument, "comment %d does not exist", commentID)
	}
	m.nextFlag++
	f := domain.CommentFlag{ID: m.nextFlag, CommentID: commentID, UserID: userID, Flag: label, FlagDate: m.now().UTC()}
	m.flags[k] = f
	return f, true, nil
}

// memTx buffers writes until Atomic commits; the parent lock is already held
type memTx struct {
	m        *Memory
	comments map[int64]domain.Comment
	flags    map[flagKey]domain.CommentFlag
}

func (t *memTx) FindComment(_ context.Context, id, siteID int64) (domain.Comment, error) {
	if c, ok := t.comments[id]; ok && c.SiteID == siteID {
		return c, nil
	}
	return t.m.find(id, siteID)
}

func (t *memTx) SaveComment(_ context.Context, c domain.Comment) error {
	if _, ok := t.m.comments[c.ID]; !ok {
		return perr.ErrNotFound
	}
	t.comments[c.ID] = c
	return nil
}

func (t *memTx) FindOrCreateFlag(_ context.Context, commentID int64, userID, label string) (domain.CommentFlag, bool, error) {
	k := flagKey{commentID, userID, label}
	if f, ok := t.flags[k]; ok {
		return f, false, nil
	}
	if f, ok := t.m.flags[k]; ok {
		return f, false, nil
	}
	if _, ok := t.m.comments[commentID]; !ok {
		return domain.CommentFlag{}, false, perr.Newf(perr.ErrorCodeInvalidArgument, "comment %d does not exist", commentID)
	}
	t.m.nextFlag++
	f := domain.CommentFlag{ID: t.m.nextFlag, CommentID: commentID, UserID: userID, Flag: label, FlagDate: t.m.now().UTC()}
	t.flags[k] = f
	return f, true, nil
}
