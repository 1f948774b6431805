package reconcile

import (
	"fmt"
	"strings"
)

// detectDoubleBookings groups occupied slots that carry a professional id by
// (professional, date, time). Any group with more than one member is a
// conflict; every member slot is flagged.
func (e *Engine) detectDoubleBookings() {
	type bookingKey struct {
		professionalID string
		date           string
		time           string
	}

	groups := make(map[bookingKey][]int)
	var order []bookingKey
	for i := range e.schedule {
		slot := &e.schedule[i]
		if !slot.IsOccupied || slot.ProfessionalID == "" {
			continue
		}
		k := bookingKey{slot.ProfessionalID, slot.AppointmentDate, slot.Time}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	for _, k := range order {
		members := groups[k]
		if len(members) < 2 {
			continue
		}

		first := &e.schedule[members[0]]
		rooms := make([]string, 0, len(members))
		slotIDs := make([]string, 0, len(members))
		for _, i := range members {
			slot := &e.schedule[i]
			slot.HasScheduleConflict = true
			rooms = append(rooms, slot.RoomName)
			slotIDs = append(slotIDs, slot.ID)
		}

		e.conflicts = append(e.conflicts, Conflict{
			Type:         ConflictProfessionalDoubleBooked,
			Professional: first.ProfessionalName,
			Rooms:        strings.Join(rooms, ", "),
			Day:          first.DayOfWeek,
			Date:         k.date,
			Time:         k.time,
			SlotIDs:      slotIDs,
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type: ChangeDoubleBooking,
			Description: fmt.Sprintf("professional %q booked in rooms %s on %s at %s",
				first.ProfessionalName, strings.Join(rooms, ", "), k.date, k.time),
			Location: first.Location(),
			SlotID:   first.ID,
		})
	}
}

// detectAppointmentCollisions checks every occupied slot with a professional
// id against the pre-existing appointment registry. The appointment a slot is
// explicitly linked to (update-in-place) never collides with it.
func (e *Engine) detectAppointmentCollisions() {
	for i := range e.schedule {
		slot := &e.schedule[i]
		if !slot.IsOccupied || slot.ProfessionalID == "" {
			continue
		}

		var ids, clients, types []string
		for _, appt := range e.appointments {
			if appt.ProfessionalID != slot.ProfessionalID ||
				appt.Date != slot.AppointmentDate ||
				appt.Time != slot.Time {
				continue
			}
			if appt.ID == slot.LinkedAppointmentID {
				continue
			}
			ids = append(ids, appt.ID)
			clients = append(clients, appt.Client)
			types = append(types, appt.Type)
		}
		if len(ids) == 0 {
			continue
		}

		slot.HasScheduleConflict = true
		e.conflicts = append(e.conflicts, Conflict{
			Type:             ConflictExistingAppointment,
			Professional:     slot.ProfessionalName,
			Rooms:            slot.RoomName,
			Day:              slot.DayOfWeek,
			Date:             slot.AppointmentDate,
			Time:             slot.Time,
			SlotIDs:          []string{slot.ID},
			AppointmentIDs:   ids,
			Clients:          strings.Join(clients, ", "),
			AppointmentTypes: strings.Join(types, ", "),
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type: ChangeAppointmentCollision,
			Description: fmt.Sprintf("slot collides with existing appointment(s) %s for %q on %s at %s",
				strings.Join(ids, ", "), slot.ProfessionalName, slot.AppointmentDate, slot.Time),
			Location: slot.Location(),
			SlotID:   slot.ID,
		})
	}
}

// detectRoomConflicts groups occupied slots by (room, day, time). Any group
// with more than one member is a duplicate room booking.
func (e *Engine) detectRoomConflicts() {
	type roomKey struct {
		room string
		day  string
		time string
	}

	groups := make(map[roomKey][]int)
	var order []roomKey
	for i := range e.schedule {
		slot := &e.schedule[i]
		if !slot.IsOccupied {
			continue
		}
		k := roomKey{slot.RoomName, slot.DayOfWeek, slot.Time}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	for _, k := range order {
		members := groups[k]
		if len(members) < 2 {
			continue
		}

		first := &e.schedule[members[0]]
		slotIDs := make([]string, 0, len(members))
		var patients, professionals []string
		for _, i := range members {
			slot := &e.schedule[i]
			slot.HasScheduleConflict = true
			slotIDs = append(slotIDs, slot.ID)
			if slot.PatientName != "" {
				patients = append(patients, slot.PatientName)
			}
			if slot.ProfessionalName != "" {
				professionals = append(professionals, slot.ProfessionalName)
			}
		}

		e.conflicts = append(e.conflicts, Conflict{
			Type:          ConflictDuplicateRoomBooking,
			Rooms:         k.room,
			Day:           k.day,
			Time:          k.time,
			Patients:      strings.Join(patients, ", "),
			Professionals: strings.Join(professionals, ", "),
			SlotIDs:       slotIDs,
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type: ChangeRoomConflict,
			Description: fmt.Sprintf("room %q booked %d times on %s at %s",
				k.room, len(members), k.day, k.time),
			Location: first.Location(),
			SlotID:   first.ID,
		})
	}
}

// detectInactiveProfessionals flags occupied slots whose professional id
// resolves to a registry record marked inactive. This pass sets
// HasValidationError, not HasScheduleConflict.
func (e *Engine) detectInactiveProfessionals() {
	byID := make(map[string]*Professional, len(e.professionals))
	for i := range e.professionals {
		byID[e.professionals[i].ID] = &e.professionals[i]
	}

	for i := range e.schedule {
		slot := &e.schedule[i]
		if !slot.IsOccupied || slot.ProfessionalID == "" {
			continue
		}
		prof, ok := byID[slot.ProfessionalID]
		if !ok || !prof.Inactive {
			continue
		}

		slot.HasValidationError = true
		e.conflicts = append(e.conflicts, Conflict{
			Type:         ConflictInactiveProfessional,
			Professional: prof.Name,
			Rooms:        slot.RoomName,
			Day:          slot.DayOfWeek,
			Date:         slot.AppointmentDate,
			Time:         slot.Time,
			SlotIDs:      []string{slot.ID},
		})
		e.suggestedChanges = append(e.suggestedChanges, ChangeRecord{
			Type:        ChangeInactiveProfessional,
			Description: fmt.Sprintf("professional %q is inactive and cannot take new bookings", prof.Name),
			Location:    slot.Location(),
			SlotID:      slot.ID,
		})
	}
}
