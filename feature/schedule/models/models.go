// Package models contains the database records backing the schedule registries.
package models

import "schedule-reconciler/core/reconcile"

// ProfessionalRecord maps the clinic's professionals table.
type ProfessionalRecord struct {
	ID           string `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name"`
	Specialty    string `gorm:"column:specialty"`
	Registration string `gorm:"column:registration"`
	Inactive     bool   `gorm:"column:inactive"`
}

// TableName overrides the default gorm table name.
func (ProfessionalRecord) TableName() string {
	return "professionals"
}

// ToDomain converts the record to the engine's registry entry.
func (r ProfessionalRecord) ToDomain() reconcile.Professional {
	return reconcile.Professional{
		ID:           r.ID,
		Name:         r.Name,
		Specialty:    r.Specialty,
		Registration: r.Registration,
		Inactive:     r.Inactive,
	}
}

// FromDomain builds a record from an engine professional. Used when
// committing professionals synthesized during a run.
func FromDomain(p reconcile.Professional) ProfessionalRecord {
	return ProfessionalRecord{
		ID:           p.ID,
		Name:         p.Name,
		Specialty:    p.Specialty,
		Registration: p.Registration,
		Inactive:     p.Inactive,
	}
}

// AppointmentRecord maps the clinic's appointments table.
type AppointmentRecord struct {
	ID             string `gorm:"column:id;primaryKey"`
	Client         string `gorm:"column:client"`
	ProfessionalID string `gorm:"column:professional_id"`
	Date           string `gorm:"column:date"`
	Time           string `gorm:"column:time"`
	Type           string `gorm:"column:type"`
}

// TableName overrides the default gorm table name.
func (AppointmentRecord) TableName() string {
	return "appointments"
}

// ToDomain converts the record to the engine's registry entry.
func (r AppointmentRecord) ToDomain() reconcile.Appointment {
	return reconcile.Appointment{
		ID:             r.ID,
		Client:         r.Client,
		ProfessionalID: r.ProfessionalID,
		Date:           r.Date,
		Time:           r.Time,
		Type:           r.Type,
	}
}
