package service

import (
	"context"

	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type auditRepository interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, *models.Pagination, error)
}

// AuditService exposes the append-only mutation trail.
type AuditService struct {
	repo auditRepository
}

func NewAuditService(repo auditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, *models.Pagination, error) {
	entries, pagination, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit entries")
	}
	return entries, pagination, nil
}
