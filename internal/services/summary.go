package services

import (
	"context"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// SummaryService handles generated study notes. Summaries are
// append-only; a regeneration adds a row instead of overwriting.
type SummaryService struct {
	store store.Store
}

func NewSummaryService(s store.Store) *SummaryService { return &SummaryService{store: s} }

// CreateSummary requires the referenced material to exist.
func (s *SummaryService) CreateSummary(ctx context.Context, sum *model.MaterialSummary) (*model.MaterialSummary, error) {
	if _, err := s.store.Materials().Get(ctx, sum.MaterialID); err != nil {
		return nil, err
	}
	return s.store.Summaries().Create(ctx, sum)
}

func (s *SummaryService) GetSummary(ctx context.Context, id int64) (*model.MaterialSummary, error) {
	return s.store.Summaries().Get(ctx, id)
}

func (s *SummaryService) ListSummariesByMaterial(ctx context.Context, materialID int64) ([]*model.MaterialSummary, error) {
	return s.store.Summaries().ListByMaterial(ctx, materialID)
}
