package store

import (
	"context"
	"time"

	"github.com/studyhall/studyhall-server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., memory).
//
// Lookups for unknown ids return model.ErrNotFound rather than a driver
// error; callers decide whether absence is a 404 or part of normal flow.
// Entities returned by a store are snapshots owned by the caller.
type Store interface {
	Users() Users
	Materials() Materials
	Sessions() Sessions
	Summaries() Summaries
	Flashcards() Flashcards
	Conversations() Conversations
	Badges() Badges
}

type Users interface {
	// Create assigns the next id, applies new-account defaults
	// (level=1, xp=0, totalStudyTime=0) and stamps creation time.
	// A duplicate username fails with model.ErrConflict before any mutation.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id int64, p model.UserPatch) (*model.User, error)
}

type Materials interface {
	Create(ctx context.Context, m *model.StudyMaterial) (*model.StudyMaterial, error)
	Get(ctx context.Context, id int64) (*model.StudyMaterial, error)
	// ListByUser orders by last-viewed time, most recent first.
	ListByUser(ctx context.Context, userID int64) ([]*model.StudyMaterial, error)
	Update(ctx context.Context, id int64, p model.MaterialPatch) (*model.StudyMaterial, error)
	Delete(ctx context.Context, id int64) error
}

type Sessions interface {
	Create(ctx context.Context, s *model.StudySession) (*model.StudySession, error)
	Get(ctx context.Context, id int64) (*model.StudySession, error)
	// ListByUser orders by start time ascending.
	ListByUser(ctx context.Context, userID int64) ([]*model.StudySession, error)
	// ListUpcoming returns sessions starting at or after now that are not
	// completed, ordered by start time ascending.
	ListUpcoming(ctx context.Context, userID int64, now time.Time) ([]*model.StudySession, error)
	Update(ctx context.Context, id int64, p model.SessionPatch) (*model.StudySession, error)
	Delete(ctx context.Context, id int64) error
}

type Summaries interface {
	Create(ctx context.Context, s *model.MaterialSummary) (*model.MaterialSummary, error)
	Get(ctx context.Context, id int64) (*model.MaterialSummary, error)
	ListByMaterial(ctx context.Context, materialID int64) ([]*model.MaterialSummary, error)
}

type Flashcards interface {
	Create(ctx context.Context, f *model.Flashcard) (*model.Flashcard, error)
	Get(ctx context.Context, id int64) (*model.Flashcard, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Flashcard, error)
	ListByMaterial(ctx context.Context, materialID int64) ([]*model.Flashcard, error)
	Delete(ctx context.Context, id int64) error
}

type Conversations interface {
	Create(ctx context.Context, c *model.Conversation) (*model.Conversation, error)
	Get(ctx context.Context, id int64) (*model.Conversation, error)
	// ListByUser orders by creation time, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*model.Conversation, error)
	// UpdateMessages replaces the whole message list; last write wins.
	UpdateMessages(ctx context.Context, id int64, messages []model.ChatMessage) (*model.Conversation, error)
	Delete(ctx context.Context, id int64) error
}

type Badges interface {
	All(ctx context.Context) ([]*model.Badge, error)
	// ListForUser joins through earned-badge records.
	ListForUser(ctx context.Context, userID int64) ([]*model.Badge, error)
	Assign(ctx context.Context, userID, badgeID int64) (*model.UserBadge, error)
}
