package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// FlashcardService handles question/answer cards.
type FlashcardService struct {
	store store.Store
}

func NewFlashcardService(s store.Store) *FlashcardService { return &FlashcardService{store: s} }

// CreateFlashcard rejects cards that reference a material that does not
// exist. Cards without a material reference are global and always valid.
func (s *FlashcardService) CreateFlashcard(ctx context.Context, f *model.Flashcard) (*model.Flashcard, error) {
	if f.MaterialID != nil {
		if _, err := s.store.Materials().Get(ctx, *f.MaterialID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, fmt.Errorf("materialId %d references unknown material: %w", *f.MaterialID, model.ErrValidation)
			}
			return nil, err
		}
	}
	return s.store.Flashcards().Create(ctx, f)
}

func (s *FlashcardService) GetFlashcard(ctx context.Context, id int64) (*model.Flashcard, error) {
	return s.store.Flashcards().Get(ctx, id)
}

func (s *FlashcardService) ListFlashcards(ctx context.Context, userID int64) ([]*model.Flashcard, error) {
	return s.store.Flashcards().ListByUser(ctx, userID)
}

func (s *FlashcardService) ListFlashcardsByMaterial(ctx context.Context, materialID int64) ([]*model.Flashcard, error) {
	return s.store.Flashcards().ListByMaterial(ctx, materialID)
}

func (s *FlashcardService) DeleteFlashcard(ctx context.Context, id int64) error {
	return s.store.Flashcards().Delete(ctx, id)
}
