// Package store defines interfaces for data persistence operations.
// These interfaces keep the documenter independent of the database that
// holds generated summaries.
package store
