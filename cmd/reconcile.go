package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"schedule-reconciler/core/config"
	"schedule-reconciler/core/database"
	"schedule-reconciler/core/logger"
	"schedule-reconciler/core/reconcile"
	"schedule-reconciler/core/storage"
	"schedule-reconciler/feature/schedule"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile schedule command
	scheduleObject string
	exportObject   string
	applySchedule  bool
	dryRunSchedule bool
	yesConfirm     bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile imported schedules against the registries",
	Long: `Reconcile imported schedules to correct misspelled names and detect
scheduling conflicts. Supports an optional apply step that commits new
professionals and uploads the processed schedule.`,
}

// scheduleReconcileCmd runs a schedule reconciliation with optional apply.
var scheduleReconcileCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Reconcile an imported schedule (report + optionally apply)",
	Long: `Reconcile an imported schedule from the storage bucket against the
professional and appointment registries.

Reports suggested changes, conflicts, validation errors and auto-corrections.
Optionally apply the result: commit new professionals and upload the
processed schedule.

Examples:
  # Report only
  reconcile schedule --object import-week-37.json

  # Apply (with interactive confirmation)
  reconcile schedule --object import-week-37.json --apply

  # Apply with auto-confirm (non-interactive)
  reconcile schedule --object import-week-37.json --apply --yes

  # Apply to a custom export object
  reconcile schedule --object import.json --apply --export processed.json`,
	RunE: runScheduleReconcile,
}

func init() {
	reconcileCmd.AddCommand(scheduleReconcileCmd)

	scheduleReconcileCmd.Flags().StringVar(&scheduleObject, "object", "", "Schedule object name in the bucket (required)")
	scheduleReconcileCmd.Flags().StringVar(&exportObject, "export", "", "Object name for the processed schedule (default <object>.processed.json)")
	scheduleReconcileCmd.Flags().BoolVar(&applySchedule, "apply", false, "Apply the result (create professionals, upload processed schedule)")
	scheduleReconcileCmd.Flags().BoolVar(&dryRunSchedule, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	scheduleReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the apply step (non-interactive)")
	_ = scheduleReconcileCmd.MarkFlagRequired("object")

	RootCmd.AddCommand(reconcileCmd)
}

func runScheduleReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting schedule reconciliation", zap.String("object", scheduleObject))

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	// A CLI run is one-shot: no registry caching.
	svc := schedule.NewService(client, cfg.Storage.Bucket, l, db, 0)

	// Step 0: Check the registry tables before touching anything.
	if err := svc.Validate(ctx); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	// Step 1: Reconcile (always runs, never mutates)
	result, err := svc.ReconcileObject(ctx, scheduleObject)
	if err != nil {
		return fmt.Errorf("failed to reconcile schedule: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, result)

	// Step 3: Check if apply is requested
	if !applySchedule {
		l.Info("No apply requested. Use --apply to commit the result.")
		return nil
	}

	// Conflicts always block the apply step.
	if result.Summary.Conflicts > 0 {
		return fmt.Errorf("schedule has %d unresolved conflicts; resolve them before applying", result.Summary.Conflicts)
	}

	if dryRunSchedule {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if len(result.ProcessedData.NewProfessionals) == 0 && result.Summary.AutoCorrections == 0 {
		l.Info("Nothing to commit; uploading processed schedule as-is.")
	}

	// Step 4: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	export := exportObject
	if export == "" {
		export = scheduleObject + ".processed.json"
	}

	l.Info("Applying result...")
	if err := svc.Apply(ctx, result, export); err != nil {
		return fmt.Errorf("failed to apply result: %w", err)
	}

	l.Info("Successfully applied result",
		zap.Int("new_professionals", len(result.ProcessedData.NewProfessionals)),
		zap.String("export", export),
	)

	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, result *reconcile.Result) {
	s := result.Summary

	l.Info("Reconciliation report",
		zap.Int("slots", len(result.ProcessedData.Schedule)),
		zap.Int("suggested_changes", s.SuggestedChanges),
		zap.Int("conflicts", s.Conflicts),
		zap.Int("validation_errors", s.ValidationErrors),
		zap.Int("auto_corrections", s.AutoCorrections),
	)

	// Show sample of suggested changes (max 5 for logger)
	if len(result.SuggestedChanges) > 0 {
		maxShow := 5
		if len(result.SuggestedChanges) < maxShow {
			maxShow = len(result.SuggestedChanges)
		}
		for i := 0; i < maxShow; i++ {
			change := result.SuggestedChanges[i]
			l.Info("Suggested change",
				zap.String("type", string(change.Type)),
				zap.String("location", change.Location),
				zap.String("description", change.Description),
			)
		}
		if len(result.SuggestedChanges) > maxShow {
			l.Info("Additional changes not shown", zap.Int("count", len(result.SuggestedChanges)-maxShow))
		}
	}

	for _, conflict := range result.Conflicts {
		l.Warn("Conflict detected",
			zap.String("type", string(conflict.Type)),
			zap.String("professional", conflict.Professional),
			zap.String("rooms", conflict.Rooms),
			zap.String("date", conflict.Date),
			zap.String("time", conflict.Time),
			zap.Strings("slot_ids", conflict.SlotIDs),
		)
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm the apply step: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
