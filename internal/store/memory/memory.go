// Package memory provides the in-process store driver. All state lives in
// mutex-guarded maps and is discarded on process exit; fixture rows are
// re-seeded at startup. Ids are process-local monotonically increasing
// integers assigned at creation.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// New constructs an empty in-memory store.
func New() store.Store { return newMemStore() }

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[int64]*model.User),
		materials:     make(map[int64]*model.StudyMaterial),
		sessions:      make(map[int64]*model.StudySession),
		summaries:     make(map[int64]*model.MaterialSummary),
		flashcards:    make(map[int64]*model.Flashcard),
		conversations: make(map[int64]*model.Conversation),
		badges:        make(map[int64]*model.Badge),
		userBadges:    make(map[int64]*model.UserBadge),
	}
}

type memStore struct {
	mu sync.RWMutex

	users         map[int64]*model.User
	materials     map[int64]*model.StudyMaterial
	sessions      map[int64]*model.StudySession
	summaries     map[int64]*model.MaterialSummary
	flashcards    map[int64]*model.Flashcard
	conversations map[int64]*model.Conversation
	badges        map[int64]*model.Badge
	userBadges    map[int64]*model.UserBadge

	userID         int64
	materialID     int64
	sessionID      int64
	summaryID      int64
	flashcardID    int64
	conversationID int64
	badgeID        int64
	userBadgeID    int64
}

func (s *memStore) Users() store.Users                 { return &users{s: s} }
func (s *memStore) Materials() store.Materials         { return &materials{s: s} }
func (s *memStore) Sessions() store.Sessions           { return &sessions{s: s} }
func (s *memStore) Summaries() store.Summaries         { return &summaries{s: s} }
func (s *memStore) Flashcards() store.Flashcards       { return &flashcards{s: s} }
func (s *memStore) Conversations() store.Conversations { return &conversations{s: s} }
func (s *memStore) Badges() store.Badges               { return &badges{s: s} }

// HealthPing implements health probing for the in-memory driver. The maps
// are always reachable, so only context cancellation can fail the probe.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- copy helpers ---
// Entities never leave the store by reference. Every read and write path
// goes through a clone so callers cannot mutate shared state.

func cloneUser(u *model.User) *model.User {
	out := *u
	return &out
}

func cloneMaterial(m *model.StudyMaterial) *model.StudyMaterial {
	out := *m
	if m.Description != nil {
		d := *m.Description
		out.Description = &d
	}
	if m.LastViewed != nil {
		t := *m.LastViewed
		out.LastViewed = &t
	}
	return &out
}

func cloneSession(ss *model.StudySession) *model.StudySession {
	out := *ss
	return &out
}

func cloneSummary(ms *model.MaterialSummary) *model.MaterialSummary {
	out := *ms
	return &out
}

func cloneFlashcard(f *model.Flashcard) *model.Flashcard {
	out := *f
	if f.MaterialID != nil {
		id := *f.MaterialID
		out.MaterialID = &id
	}
	return &out
}

func cloneConversation(c *model.Conversation) *model.Conversation {
	out := *c
	out.Messages = append([]model.ChatMessage(nil), c.Messages...)
	return &out
}

func cloneBadge(b *model.Badge) *model.Badge {
	out := *b
	return &out
}

// --- Users ---

type users struct{ s *memStore }

func (u *users) Create(_ context.Context, in *model.User) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Username == in.Username {
			return nil, fmt.Errorf("username %q already taken: %w", in.Username, model.ErrConflict)
		}
	}

	u.s.userID++
	rec := cloneUser(in)
	rec.ID = u.s.userID
	rec.Level = 1
	rec.XP = 0
	rec.TotalStudyTime = 0
	rec.CreatedAt = time.Now()
	u.s.users[rec.ID] = rec
	return cloneUser(rec), nil
}

func (u *users) Get(_ context.Context, id int64) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneUser(rec), nil
}

func (u *users) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, rec := range u.s.users {
		if rec.Username == username {
			return cloneUser(rec), nil
		}
	}
	return nil, model.ErrNotFound
}

func (u *users) Update(_ context.Context, id int64, p model.UserPatch) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Email != nil {
		rec.Email = *p.Email
	}
	if p.Level != nil {
		rec.Level = *p.Level
	}
	if p.XP != nil {
		rec.XP = *p.XP
	}
	if p.TotalStudyTime != nil {
		rec.TotalStudyTime = *p.TotalStudyTime
	}
	return cloneUser(rec), nil
}

// --- Materials ---

type materials struct{ s *memStore }

func (m *materials) Create(_ context.Context, in *model.StudyMaterial) (*model.StudyMaterial, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.materialID++
	rec := cloneMaterial(in)
	rec.ID = m.s.materialID
	if rec.Progress < 0 {
		rec.Progress = 0
	}
	rec.CreatedAt = time.Now()
	m.s.materials[rec.ID] = rec
	return cloneMaterial(rec), nil
}

func (m *materials) Get(_ context.Context, id int64) (*model.StudyMaterial, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	rec, ok := m.s.materials[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneMaterial(rec), nil
}

func (m *materials) ListByUser(_ context.Context, userID int64) ([]*model.StudyMaterial, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]*model.StudyMaterial, 0)
	for _, rec := range m.s.materials {
		if rec.UserID == userID {
			out = append(out, cloneMaterial(rec))
		}
	}
	// Most recently viewed first; never-viewed materials sort last.
	sort.Slice(out, func(i, j int) bool {
		var ti, tj time.Time
		if out[i].LastViewed != nil {
			ti = *out[i].LastViewed
		}
		if out[j].LastViewed != nil {
			tj = *out[j].LastViewed
		}
		return ti.After(tj)
	})
	return out, nil
}

func (m *materials) Update(_ context.Context, id int64, p model.MaterialPatch) (*model.StudyMaterial, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rec, ok := m.s.materials[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		rec.Description = &d
	}
	if p.Progress != nil {
		rec.Progress = *p.Progress
	}
	if p.LastViewed != nil {
		t := *p.LastViewed
		rec.LastViewed = &t
	}
	return cloneMaterial(rec), nil
}

func (m *materials) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.materials[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.s.materials, id)
	return nil
}

// --- Sessions ---

type sessions struct{ s *memStore }

func (se *sessions) Create(_ context.Context, in *model.StudySession) (*model.StudySession, error) {
	se.s.mu.Lock()
	defer se.s.mu.Unlock()

	se.s.sessionID++
	rec := cloneSession(in)
	rec.ID = se.s.sessionID
	rec.IsCompleted = false
	rec.CreatedAt = time.Now()
	se.s.sessions[rec.ID] = rec
	return cloneSession(rec), nil
}

func (se *sessions) Get(_ context.Context, id int64) (*model.StudySession, error) {
	se.s.mu.RLock()
	defer se.s.mu.RUnlock()
	rec, ok := se.s.sessions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneSession(rec), nil
}

func (se *sessions) ListByUser(_ context.Context, userID int64) ([]*model.StudySession, error) {
	se.s.mu.RLock()
	defer se.s.mu.RUnlock()
	out := make([]*model.StudySession, 0)
	for _, rec := range se.s.sessions {
		if rec.UserID == userID {
			out = append(out, cloneSession(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (se *sessions) ListUpcoming(_ context.Context, userID int64, now time.Time) ([]*model.StudySession, error) {
	se.s.mu.RLock()
	defer se.s.mu.RUnlock()
	out := make([]*model.StudySession, 0)
	for _, rec := range se.s.sessions {
		if rec.UserID == userID && !rec.IsCompleted && !rec.StartTime.Before(now) {
			out = append(out, cloneSession(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (se *sessions) Update(_ context.Context, id int64, p model.SessionPatch) (*model.StudySession, error) {
	se.s.mu.Lock()
	defer se.s.mu.Unlock()
	rec, ok := se.s.sessions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Subject != nil {
		rec.Subject = *p.Subject
	}
	if p.StartTime != nil {
		rec.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		rec.EndTime = *p.EndTime
	}
	if p.IsCompleted != nil {
		rec.IsCompleted = *p.IsCompleted
	}
	return cloneSession(rec), nil
}

func (se *sessions) Delete(_ context.Context, id int64) error {
	se.s.mu.Lock()
	defer se.s.mu.Unlock()
	if _, ok := se.s.sessions[id]; !ok {
		return model.ErrNotFound
	}
	delete(se.s.sessions, id)
	return nil
}

// --- Summaries ---

type summaries struct{ s *memStore }

func (su *summaries) Create(_ context.Context, in *model.MaterialSummary) (*model.MaterialSummary, error) {
	su.s.mu.Lock()
	defer su.s.mu.Unlock()

	su.s.summaryID++
	rec := cloneSummary(in)
	rec.ID = su.s.summaryID
	rec.CreatedAt = time.Now()
	su.s.summaries[rec.ID] = rec
	return cloneSummary(rec), nil
}

func (su *summaries) Get(_ context.Context, id int64) (*model.MaterialSummary, error) {
	su.s.mu.RLock()
	defer su.s.mu.RUnlock()
	rec, ok := su.s.summaries[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneSummary(rec), nil
}

func (su *summaries) ListByMaterial(_ context.Context, materialID int64) ([]*model.MaterialSummary, error) {
	su.s.mu.RLock()
	defer su.s.mu.RUnlock()
	out := make([]*model.MaterialSummary, 0)
	for _, rec := range su.s.summaries {
		if rec.MaterialID == materialID {
			out = append(out, cloneSummary(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Flashcards ---

type flashcards struct{ s *memStore }

func (f *flashcards) Create(_ context.Context, in *model.Flashcard) (*model.Flashcard, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.flashcardID++
	rec := cloneFlashcard(in)
	rec.ID = f.s.flashcardID
	rec.CreatedAt = time.Now()
	f.s.flashcards[rec.ID] = rec
	return cloneFlashcard(rec), nil
}

func (f *flashcards) Get(_ context.Context, id int64) (*model.Flashcard, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	rec, ok := f.s.flashcards[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneFlashcard(rec), nil
}

func (f *flashcards) ListByUser(_ context.Context, userID int64) ([]*model.Flashcard, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := make([]*model.Flashcard, 0)
	for _, rec := range f.s.flashcards {
		if rec.UserID == userID {
			out = append(out, cloneFlashcard(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *flashcards) ListByMaterial(_ context.Context, materialID int64) ([]*model.Flashcard, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := make([]*model.Flashcard, 0)
	for _, rec := range f.s.flashcards {
		if rec.MaterialID != nil && *rec.MaterialID == materialID {
			out = append(out, cloneFlashcard(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *flashcards) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.flashcards[id]; !ok {
		return model.ErrNotFound
	}
	delete(f.s.flashcards, id)
	return nil
}

// --- Conversations ---

type conversations struct{ s *memStore }

func (c *conversations) Create(_ context.Context, in *model.Conversation) (*model.Conversation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.conversationID++
	rec := cloneConversation(in)
	rec.ID = c.s.conversationID
	if rec.Messages == nil {
		rec.Messages = []model.ChatMessage{}
	}
	rec.CreatedAt = time.Now()
	c.s.conversations[rec.ID] = rec
	return cloneConversation(rec), nil
}

func (c *conversations) Get(_ context.Context, id int64) (*model.Conversation, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	rec, ok := c.s.conversations[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneConversation(rec), nil
}

func (c *conversations) ListByUser(_ context.Context, userID int64) ([]*model.Conversation, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	out := make([]*model.Conversation, 0)
	for _, rec := range c.s.conversations {
		if rec.UserID == userID {
			out = append(out, cloneConversation(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (c *conversations) UpdateMessages(_ context.Context, id int64, messages []model.ChatMessage) (*model.Conversation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	rec, ok := c.s.conversations[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	rec.Messages = append([]model.ChatMessage(nil), messages...)
	return cloneConversation(rec), nil
}

func (c *conversations) Delete(_ context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.conversations[id]; !ok {
		return model.ErrNotFound
	}
	delete(c.s.conversations, id)
	return nil
}

// --- Badges ---

type badges struct{ s *memStore }

func (b *badges) All(_ context.Context) ([]*model.Badge, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	out := make([]*model.Badge, 0, len(b.s.badges))
	for _, rec := range b.s.badges {
		out = append(out, cloneBadge(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *badges) ListForUser(_ context.Context, userID int64) ([]*model.Badge, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	earned := make(map[int64]bool)
	for _, ub := range b.s.userBadges {
		if ub.UserID == userID {
			earned[ub.BadgeID] = true
		}
	}
	out := make([]*model.Badge, 0, len(earned))
	for _, rec := range b.s.badges {
		if earned[rec.ID] {
			out = append(out, cloneBadge(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *badges) Assign(_ context.Context, userID, badgeID int64) (*model.UserBadge, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if _, ok := b.s.badges[badgeID]; !ok {
		return nil, model.ErrNotFound
	}
	b.s.userBadgeID++
	rec := &model.UserBadge{
		ID:       b.s.userBadgeID,
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}
	b.s.userBadges[rec.ID] = rec
	out := *rec
	return &out, nil
}
