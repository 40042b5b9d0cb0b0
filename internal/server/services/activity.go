package services

import (
	"context"
	"fmt"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/events"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
)

// ActivityRecorder turns catalog events into activity feed entries. It is
// best effort: a failed write is logged and counted, never propagated.
type ActivityRecorder struct {
	repomanager repomanager.RepositoryManager
	metrics     *metrics.Collector
	logger      logging.Logger
}

func NewActivityRecorder(m repomanager.RepositoryManager, collector *metrics.Collector, logger logging.Logger) *ActivityRecorder {
	return &ActivityRecorder{
		repomanager: m,
		metrics:     collector,
		logger:      logger.With("module", "activity"),
	}
}

// Subscribe registers the recorder on bus.
func (r *ActivityRecorder) Subscribe(bus *events.Bus) {
	bus.Subscribe(r.Handle)
}

// Handle is the events.Handler entry point.
func (r *ActivityRecorder) Handle(ctx context.Context, e events.Event) {
	a, err := r.Record(ctx, e)
	if err != nil {
		if a != nil {
			r.metrics.ActivitiesFailed.WithLabelValues(a.Type).Inc()
		}
		r.logger.Error(ctx, "failed to record activity", "kind", string(e.Kind), "entity_id", e.EntityID, "error", err)
	}
}

// Record writes the activity derived from e. Events without an owner, and
// kinds that do not feed the activity stream, are skipped and yield nil.
// On a write failure the attempted entry is returned with the error.
func (r *ActivityRecorder) Record(ctx context.Context, e events.Event) (*models.Activity, error) {
	if e.OwnerID == nil {
		return nil, nil
	}

	a := activityFor(e)
	if a == nil {
		return nil, nil
	}

	created, err := r.repomanager.Activities(r.repomanager.DB()).Create(ctx, a)
	if err != nil {
		return a, err
	}
	r.metrics.ActivitiesRecorded.WithLabelValues(created.Type).Inc()
	return created, nil
}

func activityFor(e events.Event) *models.Activity {
	a := &models.Activity{
		RelatedEntityID: &e.EntityID,
		UserID:          e.OwnerID,
		Metadata:        models.JSONMap{},
	}

	switch e.Kind {
	case events.MoleculeCreated:
		a.Type = models.ActivityMoleculeCreated
		a.Description = fmt.Sprintf("New molecule \"%s\" added to the database", e.EntityName)
		a.RelatedEntityType = models.EntityMolecule
	case events.DrugCandidateCreated:
		a.Type = models.ActivityDrugCandidateCreated
		a.Description = fmt.Sprintf("New drug candidate \"%s\" generated", e.EntityName)
		a.RelatedEntityType = models.EntityDrugCandidate
		a.Metadata = models.JSONMap{"aiScore": e.Metadata["aiScore"]}
	case events.DrugCandidateUpdated:
		a.Type = models.ActivityDrugCandidateUpdated
		a.Description = fmt.Sprintf("Drug candidate \"%s\" updated", e.EntityName)
		a.RelatedEntityType = models.EntityDrugCandidate
	case events.ProjectCreated:
		a.Type = models.ActivityProjectCreated
		a.Description = fmt.Sprintf("New project \"%s\" created", e.EntityName)
		a.RelatedEntityType = models.EntityProject
	default:
		return nil
	}
	return a
}
