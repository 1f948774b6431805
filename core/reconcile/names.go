package reconcile

import (
	"fmt"

	"github.com/google/uuid"
)

// importedSpecialty flags professionals synthesized from imported data so
// they can be told apart from curated registry entries.
const importedSpecialty = "Imported"

// reconcileNames runs the name reconciliation pass over every occupied slot,
// independently for the patient and professional fields. Registry lookups are
// built once, before the slot loop, and are not affected by slot mutation.
func (e *Engine) reconcileNames() {
	patientSet := make(map[string]struct{})
	registeredPatients := make([]string, 0, len(e.appointments))
	for _, appt := range e.appointments {
		name := normalizeName(appt.Client)
		if name == "" {
			continue
		}
		if _, seen := patientSet[name]; seen {
			continue
		}
		patientSet[name] = struct{}{}
		registeredPatients = append(registeredPatients, name)
	}

	// Index-aligned with e.professionals so a matched name resolves back to
	// its canonical registry record.
	registeredProfessionals := make([]string, len(e.professionals))
	for i, p := range e.professionals {
		registeredProfessionals[i] = normalizeName(p.Name)
	}

	for i := range e.schedule {
		slot := &e.schedule[i]
		if !slot.IsOccupied {
			continue
		}
		if slot.PatientName != "" {
			e.reconcilePatient(slot, patientSet, registeredPatients)
		}
		if slot.ProfessionalName != "" {
			e.reconcileProfessional(slot, registeredProfessionals)
		}
	}
}

// reconcilePatient validates a slot's patient name against the deduplicated
// client names of the appointment registry. Matches rewrite the slot to the
// registry's original-case spelling; misses are surfaced for review with the
// name left untouched.
func (e *Engine) reconcilePatient(slot *Slot, registered map[string]struct{}, names []string) {
	name := normalizeName(slot.PatientName)
	if _, ok := registered[name]; ok {
		return
	}

	match, ok := FindClosestMatch(name, names)
	if !ok {
		e.validationErrors = append(e.validationErrors, ValidationError{
			Type:     EntityPatient,
			Name:     slot.PatientName,
			Location: slot.Location(),
			SlotID:   slot.ID,
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type:        ChangePatientNotFound,
			Description: fmt.Sprintf("patient %q has no appointment registry match and needs review", slot.PatientName),
			Location:    slot.Location(),
			SlotID:      slot.ID,
		})
		return
	}

	for _, appt := range e.appointments {
		if normalizeName(appt.Client) != match {
			continue
		}
		original := slot.PatientName
		slot.PatientName = appt.Client
		e.autoCorrections = append(e.autoCorrections, AutoCorrection{
			Type:      EntityPatient,
			Original:  original,
			Corrected: appt.Client,
			Location:  slot.Location(),
			SlotID:    slot.ID,
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type:        ChangePatientCorrection,
			Description: fmt.Sprintf("patient %q corrected to %q", original, appt.Client),
			Location:    slot.Location(),
			SlotID:      slot.ID,
		})
		return
	}
}

// reconcileProfessional validates a slot's professional name against the
// registry. Unmatched names get a synthetic professional created once per
// normalized spelling per run; later slots with the same spelling reuse its id.
func (e *Engine) reconcileProfessional(slot *Slot, registered []string) {
	name := normalizeName(slot.ProfessionalName)

	// Registered spellings still need the registry id resolved so the
	// conflict passes can key on it.
	for i, entry := range registered {
		if entry == name {
			slot.ProfessionalID = e.professionals[i].ID
			return
		}
	}

	for _, p := range e.newProfessionals {
		if normalizeName(p.Name) == name {
			slot.ProfessionalID = p.ID
			return
		}
	}

	if match, ok := FindClosestMatch(name, registered); ok {
		for i := range e.professionals {
			if registered[i] != match {
				continue
			}
			original := slot.ProfessionalName
			slot.ProfessionalName = e.professionals[i].Name
			slot.ProfessionalID = e.professionals[i].ID
			e.autoCorrections = append(e.autoCorrections, AutoCorrection{
				Type:      EntityProfessional,
				Original:  original,
				Corrected: e.professionals[i].Name,
				Location:  slot.Location(),
				SlotID:    slot.ID,
			})
			e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
				Type:        ChangeProfessionalCorrection,
				Description: fmt.Sprintf("professional %q corrected to %q", original, e.professionals[i].Name),
				Location:    slot.Location(),
				SlotID:      slot.ID,
			})
			return
		}
		return
	}

	created := Professional{
		ID:        uuid.NewString(),
		Name:      slot.ProfessionalName,
		Specialty: importedSpecialty,
		Inactive:  false,
	}
	e.newProfessionals = append(e.newProfessionals, created)
	slot.ProfessionalID = created.ID

	e.validationErrors = append(e.validationErrors, ValidationError{
		Type:     EntityProfessional,
		Name:     slot.ProfessionalName,
		Location: slot.Location(),
		SlotID:   slot.ID,
		Action:   "new professional will be created",
	})
	e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
		Type:        ChangeNewProfessional,
		Description: fmt.Sprintf("professional %q not in registry; a new record will be created", slot.ProfessionalName),
		Location:    slot.Location(),
		SlotID:      slot.ID,
	})
}
