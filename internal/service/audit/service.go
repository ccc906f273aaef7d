package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/pkg/auth"
	"github.com/patasfelizes/clinic-api/pkg/logger"
)

// Service records every mutation to the structured log and to the
// bounded in-memory trail.
type Service struct {
	repo   repository.AuditRepository
	logger *logger.Logger
}

func NewService(repo repository.AuditRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) Log(ctx context.Context, action, resource string, resourceID uuid.UUID, metadata map[string]interface{}) {
	actorID := uuid.Nil
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		actorID = claims.UserID
	}

	s.logger.Zerolog().Info().
		Str("actor_id", actorID.String()).
		Str("action", action).
		Str("resource", resource).
		Str("resource_id", resourceID.String()).
		Fields(metadata).
		Msg("audit")

	s.repo.Append(ctx, &model.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   metadata,
	})
}

func (s *Service) Recent(ctx context.Context, limit int) []*model.AuditEntry {
	return s.repo.Recent(ctx, limit)
}
