package cmd

import (
	"fmt"
	"time"

	"schedule-reconciler/core/config"
	"schedule-reconciler/core/database"
	"schedule-reconciler/core/logger"
	"schedule-reconciler/feature/schedule/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedProfessionals int
	seedAppointments  int
)

// seedSpecialties are the specialties assigned to generated professionals.
var seedSpecialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

// seedAppointmentTypes are the types assigned to generated appointments.
var seedAppointmentTypes = []string{
	"consultation",
	"follow-up",
	"evaluation",
	"procedure",
}

// seedCmd populates the registry database with generated data for local
// development and testing.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the registry database with generated data",
	Long: `Creates the registry tables if needed and fills them with generated
professionals and appointments. Intended for local development only.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedProfessionals, "professionals", 50, "Number of professionals to create")
	seedCmd.Flags().IntVar(&seedAppointments, "appointments", 500, "Number of appointments to create")

	RootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.ProfessionalRecord{}, &models.AppointmentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate registry tables: %w", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	l.Info("Seeding professionals", zap.Int("count", seedProfessionals))
	professionals := make([]models.ProfessionalRecord, 0, seedProfessionals)
	for i := 0; i < seedProfessionals; i++ {
		professionals = append(professionals, models.ProfessionalRecord{
			ID:           uuid.NewString(),
			Name:         gofakeit.Name(),
			Specialty:    seedSpecialties[gofakeit.Number(0, len(seedSpecialties)-1)],
			Registration: fmt.Sprintf("CRM-%d", gofakeit.Number(10000, 99999)),
			// A small share of inactive professionals exercises the
			// inactive-professional conflict pass.
			Inactive: gofakeit.Number(0, 9) == 0,
		})
	}
	if err := db.CreateInBatches(&professionals, 100).Error; err != nil {
		return fmt.Errorf("failed to seed professionals: %w", err)
	}

	l.Info("Seeding appointments", zap.Int("count", seedAppointments))
	appointments := make([]models.AppointmentRecord, 0, seedAppointments)
	for i := 0; i < seedAppointments; i++ {
		prof := professionals[gofakeit.Number(0, len(professionals)-1)]
		date := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0))

		appointments = append(appointments, models.AppointmentRecord{
			ID:             uuid.NewString(),
			Client:         gofakeit.Name(),
			ProfessionalID: prof.ID,
			Date:           date.Format("2006-01-02"),
			Time:           fmt.Sprintf("%02d:00", gofakeit.Number(8, 17)),
			Type:           seedAppointmentTypes[gofakeit.Number(0, len(seedAppointmentTypes)-1)],
		})
	}
	if err := db.CreateInBatches(&appointments, 100).Error; err != nil {
		return fmt.Errorf("failed to seed appointments: %w", err)
	}

	l.Info("Seed complete",
		zap.Int("professionals", len(professionals)),
		zap.Int("appointments", len(appointments)),
	)

	return nil
}
