package service

import (
	"context"
	"fmt"
	"time"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/pkg/metrics"
)

type activityService struct {
	repo ports.ActivityRepository
}

// NewActivityService returns the audit trail writer used by the dispatcher workers.
func NewActivityService(repo ports.ActivityRepository) ports.ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	at := in.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &domain.Activity{
		ActorID:    in.ActorID,
		Action:     in.Action,
		Resource:   in.Resource,
		ResourceID: in.ResourceID,
		Detail:     in.Detail,
		At:         at,
	}); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivityRecordedTotal.WithLabelValues(in.Action).Inc()
	return nil
}
