// Package domain contains the core entities of schemadoc: the flat table and
// column descriptions read from a target database, the documentation summary
// that is persisted once a job succeeds, and the identifier helper used to
// name those summaries. It is independent of any specific infrastructure.
package domain
