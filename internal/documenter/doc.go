// Package documenter orchestrates one documentation job: it introspects a
// target PostgreSQL database, reports per-table progress, asks the language
// model for a friendly name and for documentation, and stores the summary.
//
// GenerateDocumentation is the entry point used by the CLI and by background
// tasks. It never returns an error: a failed job is logged and reported as a
// nil *Result. Generate exposes the same flow with the error for callers that
// need to inspect it.
package documenter
