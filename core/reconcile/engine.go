package reconcile

// Engine runs a single reconciliation pass over an imported schedule. It
// holds only per-run state: construct a fresh Engine per run and do not share
// one across concurrent runs.
type Engine struct {
	schedule         []Slot
	professionals    []Professional
	appointments     []Appointment
	newProfessionals []Professional

	suggestedChanges []ChangeRecord
	conflicts        []Conflict
	validationErrors []ValidationError
	autoCorrections  []AutoCorrection
}

// New creates an engine for one reconciliation run.
func New() *Engine {
	return &Engine{}
}

// Run reconciles the imported schedule against the professional and
// appointment registries and returns the aggregated result.
//
// The engine deep-copies the schedule and professional registry into an owned
// working set before any mutation; the caller's slices are never modified.
// The mutated working copy is returned as Result.ProcessedData, the pre-run
// snapshot as Result.OriginalData. Appointments are read-only throughout.
//
// Passes run in fixed order: name reconciliation, professional
// double-booking, existing-appointment collision, duplicate room booking,
// inactive professional. Data-quality issues accumulate in the result and
// never interrupt the run.
func (e *Engine) Run(imported ImportedData, professionals []Professional, appointments []Appointment) *Result {
	e.schedule = cloneSlots(imported.Schedule)
	e.professionals = cloneProfessionals(professionals)
	e.appointments = appointments
	e.newProfessionals = cloneProfessionals(imported.NewProfessionals)

	e.suggestedChanges = []ChangeRecord{}
	e.conflicts = []Conflict{}
	e.validationErrors = []ValidationError{}
	e.autoCorrections = []AutoCorrection{}

	original := ImportedData{
		Schedule:            cloneSlots(imported.Schedule),
		NewProfessionals:    cloneProfessionals(imported.NewProfessionals),
		UpdatedAppointments: cloneAppointments(imported.UpdatedAppointments),
	}

	e.reconcileNames()
	e.detectDoubleBookings()
	e.detectAppointmentCollisions()
	e.detectRoomConflicts()
	e.detectInactiveProfessionals()

	return &Result{
		SuggestedChanges: e.suggestedChanges,
		Conflicts:        e.conflicts,
		ValidationErrors: e.validationErrors,
		AutoCorrections:  e.autoCorrections,
		ProcessedData: ImportedData{
			Schedule:            e.schedule,
			NewProfessionals:    e.newProfessionals,
			UpdatedAppointments: cloneAppointments(imported.UpdatedAppointments),
		},
		OriginalData: original,
		Summary: Summary{
			SuggestedChanges: len(e.suggestedChanges),
			Conflicts:        len(e.conflicts),
			ValidationErrors: len(e.validationErrors),
			AutoCorrections:  len(e.autoCorrections),
		},
	}
}

// The record types below hold no reference fields, so a slice copy is a deep
// copy.

func cloneSlots(in []Slot) []Slot {
	out := make([]Slot, len(in))
	copy(out, in)
	return out
}

func cloneProfessionals(in []Professional) []Professional {
	out := make([]Professional, len(in))
	copy(out, in)
	return out
}

func cloneAppointments(in []Appointment) []Appointment {
	out := make([]Appointment, len(in))
	copy(out, in)
	return out
}
