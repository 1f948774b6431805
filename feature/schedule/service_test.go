package schedule_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"schedule-reconciler/core/database"
	"schedule-reconciler/core/reconcile"
	"schedule-reconciler/core/storage/mocks"
	"schedule-reconciler/feature/schedule"
	"schedule-reconciler/feature/schedule/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const importedScheduleJSON = `{
  "schedule": [
    {
      "id": "slot-1",
      "room_name": "Room 1",
      "day_of_week": "monday",
      "time": "10:00",
      "appointment_date": "2026-09-07",
      "is_occupied": true,
      "patient_name": "Joao Silva",
      "professional_name": "Ana Souza"
    }
  ]
}`

// setupDB creates an in-memory registry database seeded with one active
// professional and one appointment.
func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ProfessionalRecord{}, &models.AppointmentRecord{}))

	require.NoError(t, db.Create(&models.ProfessionalRecord{
		ID:        "prof-1",
		Name:      "Ana Souza",
		Specialty: "Cardiology",
	}).Error)

	require.NoError(t, db.Create(&models.AppointmentRecord{
		ID:             "appt-1",
		Client:         "João Silva",
		ProfessionalID: "prof-1",
		Date:           "2026-09-14",
		Time:           "09:00",
		Type:           "consultation",
	}).Error)

	return db
}

func TestService_ReconcileData(t *testing.T) {
	db := setupDB(t)
	mockClient := new(mocks.Client)
	svc := schedule.NewService(mockClient, "clinic", zap.NewNop(), db, time.Minute)

	imported := reconcile.ImportedData{
		Schedule: []reconcile.Slot{
			{
				ID:               "slot-1",
				RoomName:         "Room 1",
				DayOfWeek:        "monday",
				Time:             "10:00",
				AppointmentDate:  "2026-09-07",
				IsOccupied:       true,
				PatientName:      "Joao Silva",
				ProfessionalName: "Ana Souza",
			},
		},
	}

	result, err := svc.ReconcileData(context.Background(), imported)
	require.NoError(t, err)

	// The misspelled patient is auto-corrected against the appointment registry.
	require.Len(t, result.AutoCorrections, 1)
	assert.Equal(t, "Joao Silva", result.AutoCorrections[0].Original)
	assert.Equal(t, "João Silva", result.AutoCorrections[0].Corrected)
	assert.Equal(t, "João Silva", result.ProcessedData.Schedule[0].PatientName)

	// The registered professional gets its registry id.
	assert.Equal(t, "prof-1", result.ProcessedData.Schedule[0].ProfessionalID)

	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.ValidationErrors)
}

func TestService_ReconcileObject(t *testing.T) {
	db := setupDB(t)
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "clinic").Return(true, nil)
	mockClient.On("GetObject", mock.Anything, "clinic", "import-week-37.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(importedScheduleJSON))), nil)

	svc := schedule.NewService(mockClient, "clinic", zap.NewNop(), db, time.Minute)

	result, err := svc.ReconcileObject(context.Background(), "import-week-37.json")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.AutoCorrections)
	assert.Equal(t, "João Silva", result.ProcessedData.Schedule[0].PatientName)
	mockClient.AssertExpectations(t)
}

func TestService_ReconcileObject_MissingBucket(t *testing.T) {
	db := setupDB(t)
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "clinic").Return(false, nil)

	svc := schedule.NewService(mockClient, "clinic", zap.NewNop(), db, time.Minute)

	_, err := svc.ReconcileObject(context.Background(), "import-week-37.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestService_Apply(t *testing.T) {
	db := setupDB(t)
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "clinic", "processed.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := schedule.NewService(mockClient, "clinic", zap.NewNop(), db, time.Minute)

	// Reconcile a slot with an unknown professional: the run synthesizes a
	// new professional record.
	imported := reconcile.ImportedData{
		Schedule: []reconcile.Slot{
			{
				ID:               "slot-1",
				RoomName:         "Room 2",
				DayOfWeek:        "tuesday",
				Time:             "14:00",
				AppointmentDate:  "2026-09-08",
				IsOccupied:       true,
				PatientName:      "João Silva",
				ProfessionalName: "Bruno Costa",
			},
		},
	}

	result, err := svc.ReconcileData(context.Background(), imported)
	require.NoError(t, err)
	require.Len(t, result.ProcessedData.NewProfessionals, 1)
	require.Empty(t, result.Conflicts)

	require.NoError(t, svc.Apply(context.Background(), result, "processed.json"))

	// The synthesized professional is committed to the registry.
	var count int64
	require.NoError(t, db.Model(&models.ProfessionalRecord{}).Where("name = ?", "Bruno Costa").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A follow-up run sees the committed professional and reuses its id.
	again, err := svc.ReconcileData(context.Background(), imported)
	require.NoError(t, err)
	assert.Empty(t, again.ProcessedData.NewProfessionals)
	assert.Equal(t, result.ProcessedData.NewProfessionals[0].ID, again.ProcessedData.Schedule[0].ProfessionalID)

	mockClient.AssertExpectations(t)
}

func TestService_Validate(t *testing.T) {
	t.Run("ValidSchema", func(t *testing.T) {
		db := setupDB(t)
		svc := schedule.NewService(new(mocks.Client), "clinic", zap.NewNop(), db, 0)
		assert.NoError(t, svc.Validate(context.Background()))
	})

	t.Run("MissingTable", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)

		svc := schedule.NewService(new(mocks.Client), "clinic", zap.NewNop(), db, 0)
		assert.Error(t, svc.Validate(context.Background()))
	})
}

func TestService_NoDatabase(t *testing.T) {
	svc := schedule.NewService(new(mocks.Client), "clinic", zap.NewNop(), nil, 0)

	_, err := svc.ReconcileData(context.Background(), reconcile.ImportedData{})
	assert.Error(t, err)

	assert.Error(t, svc.Validate(context.Background()))
}
