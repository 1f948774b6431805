package reconcile

import "fmt"

// Slot represents one cell of the imported room schedule: a potential
// appointment at a room/day/time. Slots with IsOccupied=false are skipped by
// every pass.
type Slot struct {
	// ID is the unique identifier for the slot, stable across a run.
	ID string `json:"id"`

	// RoomName is the room this slot belongs to.
	RoomName string `json:"room_name"`

	// DayOfWeek is the weekday label of the slot (e.g., "monday").
	DayOfWeek string `json:"day_of_week"`

	// Time is the slot time in HH:MM.
	Time string `json:"time"`

	// AppointmentDate is the concrete date of the slot in YYYY-MM-DD.
	AppointmentDate string `json:"appointment_date"`

	// IsOccupied marks whether the imported schedule has a booking here.
	IsOccupied bool `json:"is_occupied"`

	// PatientName is the imported patient name, possibly misspelled.
	PatientName string `json:"patient_name,omitempty"`

	// ProfessionalName is the imported professional name, possibly misspelled.
	ProfessionalName string `json:"professional_name,omitempty"`

	// ProfessionalID is set or rewritten by name reconciliation.
	ProfessionalID string `json:"professional_id,omitempty"`

	// LinkedAppointmentID, when set, marks this slot as an update to an
	// existing appointment; that appointment is excluded from collision checks.
	LinkedAppointmentID string `json:"linked_appointment_id,omitempty"`

	// HasScheduleConflict is set by the conflict detection passes.
	HasScheduleConflict bool `json:"has_schedule_conflict"`

	// HasValidationError is set by the inactive-professional pass.
	HasValidationError bool `json:"has_validation_error"`
}

// Location renders the human-readable position of the slot for change records.
func (s *Slot) Location() string {
	return fmt.Sprintf("%s - %s %s", s.RoomName, s.DayOfWeek, s.Time)
}

// Professional is one entry of the professional registry.
type Professional struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	Registration string `json:"registration"`
	Inactive     bool   `json:"inactive"`
}

// Appointment is one entry of the pre-existing appointment registry.
// The registry is read-only to the engine.
type Appointment struct {
	ID             string `json:"id"`
	Client         string `json:"client"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Type           string `json:"type"`
}

// ChangeType classifies a suggested change.
type ChangeType string

const (
	// ChangePatientCorrection is an auto-applied patient name correction.
	ChangePatientCorrection ChangeType = "patient_correction"
	// ChangePatientNotFound marks a patient name with no registry match.
	ChangePatientNotFound ChangeType = "patient_not_found"
	// ChangeProfessionalCorrection is an auto-applied professional correction.
	ChangeProfessionalCorrection ChangeType = "professional_correction"
	// ChangeNewProfessional marks a synthetic professional to be created.
	ChangeNewProfessional ChangeType = "new_professional"
	// ChangeDoubleBooking marks a professional double-booking conflict.
	ChangeDoubleBooking ChangeType = "double_booking"
	// ChangeAppointmentCollision marks a collision with an existing appointment.
	ChangeAppointmentCollision ChangeType = "appointment_collision"
	// ChangeRoomConflict marks a duplicate room booking.
	ChangeRoomConflict ChangeType = "room_conflict"
	// ChangeInactiveProfessional marks a slot assigned to an inactive professional.
	ChangeInactiveProfessional ChangeType = "inactive_professional"
)

// ChangeRecord is one human-readable proposal in the change-set. The full
// list is presented for approval before anything is committed.
type ChangeRecord struct {
	Type        ChangeType `json:"type"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	SlotID      string     `json:"slot_id"`
}

// ConflictType classifies a scheduling collision.
type ConflictType string

const (
	// ConflictProfessionalDoubleBooked indicates a professional is booked in
	// more than one slot at the same date and time.
	ConflictProfessionalDoubleBooked ConflictType = "professional_double_booked"
	// ConflictExistingAppointment indicates a slot collides with a
	// pre-existing registry appointment.
	ConflictExistingAppointment ConflictType = "existing_appointment"
	// ConflictDuplicateRoomBooking indicates a room is booked twice at the
	// same day and time.
	ConflictDuplicateRoomBooking ConflictType = "duplicate_room_booking"
	// ConflictInactiveProfessional indicates the slot's professional is
	// flagged inactive in the registry.
	ConflictInactiveProfessional ConflictType = "inactive_professional"
)

// Conflict details a scheduling collision that callers present to users.
// Conflicts are never auto-resolved.
type Conflict struct {
	Type ConflictType `json:"type"`

	// Professional is the display name of the implicated professional.
	Professional string `json:"professional,omitempty"`

	// Rooms is the comma-joined list of rooms involved.
	Rooms string `json:"rooms,omitempty"`

	// Patients is the comma-joined list of patient names involved.
	Patients string `json:"patients,omitempty"`

	// Professionals is the comma-joined list of professional names involved
	// (duplicate room bookings only).
	Professionals string `json:"professionals,omitempty"`

	Day  string `json:"day,omitempty"`
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// SlotIDs lists every slot implicated in this conflict.
	SlotIDs []string `json:"slot_ids"`

	// AppointmentIDs lists colliding registry appointments
	// (existing-appointment collisions only).
	AppointmentIDs []string `json:"appointment_ids,omitempty"`

	// Clients is the comma-joined client names of colliding appointments.
	Clients string `json:"clients,omitempty"`

	// AppointmentTypes is the comma-joined types of colliding appointments.
	AppointmentTypes string `json:"appointment_types,omitempty"`
}

// EntityType distinguishes patient and professional records in corrections
// and validation errors.
type EntityType string

const (
	EntityPatient      EntityType = "patient"
	EntityProfessional EntityType = "professional"
)

// AutoCorrection records a name change applied automatically because match
// confidence was high enough to skip human review.
type AutoCorrection struct {
	Type      EntityType `json:"type"`
	Original  string     `json:"original"`
	Corrected string     `json:"corrected"`
	Location  string     `json:"location"`
	SlotID    string     `json:"slot_id"`
}

// ValidationError records a data-quality issue that could not be
// auto-corrected. It is surfaced in the result, never thrown.
type ValidationError struct {
	Type     EntityType `json:"type"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
	SlotID   string     `json:"slot_id"`

	// Action describes the auto-remediation taken, if any.
	Action string `json:"action,omitempty"`
}

// ImportedData bundles the imported schedule with the per-run outputs that
// travel with it: professionals synthesized during reconciliation and
// appointments updated in place.
type ImportedData struct {
	Schedule            []Slot         `json:"schedule"`
	NewProfessionals    []Professional `json:"new_professionals"`
	UpdatedAppointments []Appointment  `json:"updated_appointments"`
}

// Summary provides aggregate counts for report rendering.
type Summary struct {
	SuggestedChanges int `json:"suggested_changes"`
	Conflicts        int `json:"conflicts"`
	ValidationErrors int `json:"validation_errors"`
	AutoCorrections  int `json:"auto_corrections"`
}

// Result is the immutable outcome of one reconciliation run.
type Result struct {
	// SuggestedChanges is the change-set presented for approval.
	SuggestedChanges []ChangeRecord `json:"suggested_changes"`

	// Conflicts lists every detected scheduling collision.
	Conflicts []Conflict `json:"conflicts"`

	// ValidationErrors lists unmatched names and inactive assignments.
	ValidationErrors []ValidationError `json:"validation_errors"`

	// AutoCorrections lists every name correction applied this run.
	AutoCorrections []AutoCorrection `json:"auto_corrections"`

	// ProcessedData is the mutated working copy: corrected schedule plus
	// professionals created during the run. Committing it is the caller's
	// decision.
	ProcessedData ImportedData `json:"processed_data"`

	// OriginalData is the pre-run snapshot of the imported data, kept for
	// diffing or rollback by the caller.
	OriginalData ImportedData `json:"original_data"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}
