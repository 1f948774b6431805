// Package database handles registry database connections and schema
// inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) and
// SQLite (local/test) connections from the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection based on the configured
// driver. The connection is agnostic to the registry schema itself; the
// schema inspector is what verifies the host tables look as expected.
//
// # Schema Inspection
//
// GetTableColumns retrieves column definitions for a table, which the
// schedule feature uses to verify the professional and appointment registry
// tables expose the fields the reconciliation contract requires.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "professionals")
package database
