package services

import (
	"context"
	"fmt"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// MaterialService handles uploaded study materials.
type MaterialService struct {
	store store.Store
}

func NewMaterialService(s store.Store) *MaterialService { return &MaterialService{store: s} }

func (s *MaterialService) CreateMaterial(ctx context.Context, m *model.StudyMaterial) (*model.StudyMaterial, error) {
	if m.Progress < 0 || m.Progress > 100 {
		return nil, fmt.Errorf("progress must be 0-100: %w", model.ErrValidation)
	}
	return s.store.Materials().Create(ctx, m)
}

func (s *MaterialService) GetMaterial(ctx context.Context, id int64) (*model.StudyMaterial, error) {
	return s.store.Materials().Get(ctx, id)
}

func (s *MaterialService) ListMaterials(ctx context.Context, userID int64) ([]*model.StudyMaterial, error) {
	return s.store.Materials().ListByUser(ctx, userID)
}

func (s *MaterialService) UpdateMaterial(ctx context.Context, id int64, p model.MaterialPatch) (*model.StudyMaterial, error) {
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return nil, fmt.Errorf("progress must be 0-100: %w", model.ErrValidation)
	}
	return s.store.Materials().Update(ctx, id, p)
}

func (s *MaterialService) DeleteMaterial(ctx context.Context, id int64) error {
	return s.store.Materials().Delete(ctx, id)
}
