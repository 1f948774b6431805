package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	// The registry loads both tables concurrently.
	mock.MatchExpectationsInOrder(false)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func expectRegistryLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT (.+) FROM `professionals`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "registration", "inactive"}).
			AddRow("prof-1", "Ana Souza", "Cardiology", "CRM-123", false))

	mock.ExpectQuery("SELECT (.+) FROM `appointments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client", "professional_id", "date", "time", "type"}).
			AddRow("appt-1", "João Silva", "prof-1", "2026-09-14", "09:00", "consultation"))
}

func TestRegistry_Snapshot(t *testing.T) {
	db, mock := setupMockDB(t)
	expectRegistryLoad(mock)

	reg := NewRegistry(db, time.Minute)

	snap, err := reg.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Professionals, 1)
	assert.Equal(t, "Ana Souza", snap.Professionals[0].Name)
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, "João Silva", snap.Appointments[0].Client)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_SnapshotCached(t *testing.T) {
	db, mock := setupMockDB(t)
	expectRegistryLoad(mock)

	reg := NewRegistry(db, time.Minute)

	first, err := reg.Snapshot(context.Background())
	require.NoError(t, err)

	// Second call within the TTL reuses the snapshot: no further queries.
	second, err := reg.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_Invalidate(t *testing.T) {
	db, mock := setupMockDB(t)
	expectRegistryLoad(mock)
	expectRegistryLoad(mock)

	reg := NewRegistry(db, time.Minute)

	_, err := reg.Snapshot(context.Background())
	require.NoError(t, err)

	reg.Invalidate()

	_, err = reg.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_ZeroTTLAlwaysReloads(t *testing.T) {
	db, mock := setupMockDB(t)
	expectRegistryLoad(mock)
	expectRegistryLoad(mock)

	reg := NewRegistry(db, 0)

	_, err := reg.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = reg.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
