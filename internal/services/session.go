package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// SessionService handles planned study sessions.
type SessionService struct {
	store store.Store
}

func NewSessionService(s store.Store) *SessionService { return &SessionService{store: s} }

// CreateSession validates that the session starts before it ends.
func (s *SessionService) CreateSession(ctx context.Context, sess *model.StudySession) (*model.StudySession, error) {
	if !sess.StartTime.Before(sess.EndTime) {
		return nil, fmt.Errorf("startTime must precede endTime: %w", model.ErrValidation)
	}
	return s.store.Sessions().Create(ctx, sess)
}

func (s *SessionService) GetSession(ctx context.Context, id int64) (*model.StudySession, error) {
	return s.store.Sessions().Get(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context, userID int64) ([]*model.StudySession, error) {
	return s.store.Sessions().ListByUser(ctx, userID)
}

func (s *SessionService) ListUpcomingSessions(ctx context.Context, userID int64) ([]*model.StudySession, error) {
	return s.store.Sessions().ListUpcoming(ctx, userID, time.Now())
}

// UpdateSession re-validates the time window against the stored row when
// either endpoint moves.
func (s *SessionService) UpdateSession(ctx context.Context, id int64, p model.SessionPatch) (*model.StudySession, error) {
	if p.StartTime != nil || p.EndTime != nil {
		current, err := s.store.Sessions().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartTime, current.EndTime
		if p.StartTime != nil {
			start = *p.StartTime
		}
		if p.EndTime != nil {
			end = *p.EndTime
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("startTime must precede endTime: %w", model.ErrValidation)
		}
	}
	return s.store.Sessions().Update(ctx, id, p)
}

func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	return s.store.Sessions().Delete(ctx, id)
}
