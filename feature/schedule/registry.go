package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"schedule-reconciler/core/reconcile"
	"schedule-reconciler/feature/schedule/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// RegistrySnapshot holds one consistent read of the professional and
// appointment registries.
type RegistrySnapshot struct {
	Professionals []reconcile.Professional
	Appointments  []reconcile.Appointment

	// Built is the timestamp when this snapshot was loaded.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *RegistrySnapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Built) > s.TTL
}

// Registry loads professionals and appointments from the clinic database,
// caching a snapshot between runs. Each Registry owns its own cache, so
// independent services never share state.
type Registry struct {
	db  *gorm.DB
	ttl time.Duration

	mu       sync.RWMutex
	snapshot *RegistrySnapshot
	sf       singleflight.Group
}

// NewRegistry creates a registry backed by the given database.
// A zero ttl disables caching and every Snapshot call hits the database.
func NewRegistry(db *gorm.DB, ttl time.Duration) *Registry {
	return &Registry{db: db, ttl: ttl}
}

// LoadProfessionals reads the full professional registry.
func (r *Registry) LoadProfessionals(ctx context.Context) ([]reconcile.Professional, error) {
	var records []models.ProfessionalRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load professionals: %w", err)
	}

	professionals := make([]reconcile.Professional, 0, len(records))
	for _, rec := range records {
		professionals = append(professionals, rec.ToDomain())
	}
	return professionals, nil
}

// LoadAppointments reads the full appointment registry.
func (r *Registry) LoadAppointments(ctx context.Context) ([]reconcile.Appointment, error) {
	var records []models.AppointmentRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	appointments := make([]reconcile.Appointment, 0, len(records))
	for _, rec := range records {
		appointments = append(appointments, rec.ToDomain())
	}
	return appointments, nil
}

// Snapshot returns a registry snapshot, reusing a cached one while fresh.
// Uses singleflight so concurrent expirations trigger a single reload.
func (r *Registry) Snapshot(ctx context.Context) (*RegistrySnapshot, error) {
	// Fast path: cached and fresh.
	r.mu.RLock()
	snap := r.snapshot
	r.mu.RUnlock()

	if snap != nil && !snap.IsExpired() {
		return snap, nil
	}

	result, err, _ := r.sf.Do("registry", func() (interface{}, error) {
		// Double-check after acquiring the singleflight lock.
		r.mu.RLock()
		snap := r.snapshot
		r.mu.RUnlock()

		if snap != nil && !snap.IsExpired() {
			return snap, nil
		}

		fresh, err := r.load(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.snapshot = fresh
		r.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*RegistrySnapshot), nil
}

// Invalidate drops the cached snapshot, forcing the next Snapshot call to
// reload. Called after committing new professionals.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

func (r *Registry) load(ctx context.Context) (*RegistrySnapshot, error) {
	var (
		professionals []reconcile.Professional
		appointments  []reconcile.Appointment
		profErr       error
		apptErr       error
		wg            sync.WaitGroup
	)

	// Load both registries concurrently.
	wg.Add(2)

	go func() {
		defer wg.Done()
		professionals, profErr = r.LoadProfessionals(ctx)
	}()

	go func() {
		defer wg.Done()
		appointments, apptErr = r.LoadAppointments(ctx)
	}()

	wg.Wait()

	if profErr != nil {
		return nil, profErr
	}
	if apptErr != nil {
		return nil, apptErr
	}

	return &RegistrySnapshot{
		Professionals: professionals,
		Appointments:  appointments,
		Built:         time.Now(),
		TTL:           r.ttl,
	}, nil
}
