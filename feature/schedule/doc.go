// Package schedule implements the schedule import and reconciliation feature.
//
// It ties the core/reconcile engine to the clinic's infrastructure by
// reconciling two sources of truth against an imported room schedule:
//  1. Database: The professionals and appointments registries.
//  2. Storage (S3/MinIO): The imported schedule JSON objects.
//
// # Flow
//
// An imported schedule is fetched from the bucket (or posted inline), the
// registries are loaded (with a cached snapshot between runs), and the
// engine produces a result: suggested changes, conflicts, validation errors
// and auto-corrections, plus the corrected schedule. Applying a result
// creates the professionals synthesized during the run and uploads the
// processed schedule back to the bucket. Results with conflicts cannot be
// applied.
//
// # Components
//
//   - Registry: Loads and caches the professional/appointment registries.
//   - Service: Orchestrates fetch, reconcile, apply and schema validation.
//   - Handler: Exposes HTTP endpoints for reconcile, apply and validate.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /schedule/reconcile : Run a pass and return the full result.
//   - POST /schedule/apply     : Run a pass and commit it (blocked by conflicts).
//   - GET  /schedule/validate  : Check the registry tables' shape.
package schedule
