package services

import (
	"context"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// ConversationService handles chat transcripts.
type ConversationService struct {
	store store.Store
}

func NewConversationService(s store.Store) *ConversationService {
	return &ConversationService{store: s}
}

func (s *ConversationService) CreateConversation(ctx context.Context, c *model.Conversation) (*model.Conversation, error) {
	return s.store.Conversations().Create(ctx, c)
}

func (s *ConversationService) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	return s.store.Conversations().Get(ctx, id)
}

func (s *ConversationService) ListConversations(ctx context.Context, userID int64) ([]*model.Conversation, error) {
	return s.store.Conversations().ListByUser(ctx, userID)
}

// UpdateMessages replaces the transcript wholesale. Concurrent updates
// to the same conversation race and the later write wins.
func (s *ConversationService) UpdateMessages(ctx context.Context, id int64, messages []model.ChatMessage) (*model.Conversation, error) {
	return s.store.Conversations().UpdateMessages(ctx, id, messages)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id int64) error {
	return s.store.Conversations().Delete(ctx, id)
}
