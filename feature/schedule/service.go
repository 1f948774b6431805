package schedule

import (
	"context"
	"fmt"
	"time"

	"schedule-reconciler/core/database"
	"schedule-reconciler/core/reconcile"
	"schedule-reconciler/core/storage"
	"schedule-reconciler/feature/schedule/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// professionalColumns are the registry columns the service depends on.
var professionalColumns = []string{"id", "name", "specialty", "registration", "inactive"}

// appointmentColumns are the registry columns the service depends on.
var appointmentColumns = []string{"id", "client", "professional_id", "date", "time", "type"}

// Service orchestrates schedule reconciliation: it loads the registries,
// runs the engine over an imported schedule, and commits approved results.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	db       *gorm.DB
	registry *Registry
}

// NewService creates a new schedule service. registryTTL controls how long
// registry snapshots are cached between runs; zero disables caching.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, registryTTL time.Duration) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		logger:   logger,
		db:       db,
		registry: NewRegistry(db, registryTTL),
	}
}

// ReconcileData runs one reconciliation pass over already-parsed imported
// data against the current registries. The input is never mutated.
func (s *Service) ReconcileData(ctx context.Context, imported reconcile.ImportedData) (*reconcile.Result, error) {
	if s.db == nil {
		return nil, fmt.Errorf("registry database is not connected")
	}

	snap, err := s.registry.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := reconcile.New().Run(imported, snap.Professionals, snap.Appointments)

	s.logger.Info("Reconciliation complete",
		zap.Int("slots", len(imported.Schedule)),
		zap.Int("suggested_changes", result.Summary.SuggestedChanges),
		zap.Int("conflicts", result.Summary.Conflicts),
		zap.Int("validation_errors", result.Summary.ValidationErrors),
		zap.Int("auto_corrections", result.Summary.AutoCorrections),
	)

	return result, nil
}

// ReconcileObject fetches an imported schedule from storage and reconciles it.
func (s *Service) ReconcileObject(ctx context.Context, objName string) (*reconcile.Result, error) {
	imported, err := FetchImportedSchedule(ctx, s.client, s.bucket, objName)
	if err != nil {
		return nil, err
	}

	return s.ReconcileData(ctx, *imported)
}

// Apply commits a reconciliation result: professionals synthesized during
// the run are created in the registry and the processed schedule is
// uploaded to storage under objName. The registry cache is invalidated so
// the next run sees the new professionals.
func (s *Service) Apply(ctx context.Context, result *reconcile.Result, objName string) error {
	if s.db == nil {
		return fmt.Errorf("registry database is not connected")
	}

	if len(result.ProcessedData.NewProfessionals) > 0 {
		records := make([]models.ProfessionalRecord, 0, len(result.ProcessedData.NewProfessionals))
		for _, p := range result.ProcessedData.NewProfessionals {
			records = append(records, models.FromDomain(p))
		}

		if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
			return fmt.Errorf("failed to create new professionals: %w", err)
		}

		s.registry.Invalidate()
		s.logger.Info("Created new professionals", zap.Int("count", len(records)))
	}

	if err := UploadProcessedSchedule(ctx, s.client, s.bucket, objName, result.ProcessedData); err != nil {
		return err
	}

	s.logger.Info("Processed schedule uploaded", zap.String("object", objName))
	return nil
}

// Validate checks that the registry tables carry the columns the service
// reads. Returns an error naming the missing columns, if any.
func (s *Service) Validate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("registry database is not connected")
	}

	checks := []struct {
		table   string
		columns []string
	}{
		{"professionals", professionalColumns},
		{"appointments", appointmentColumns},
	}

	for _, check := range checks {
		missing, err := database.HasColumns(s.db.WithContext(ctx), check.table, check.columns)
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", check.table, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %v", check.table, missing)
		}
	}

	return nil
}
