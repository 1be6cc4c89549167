// Package task runs documentation jobs in the background.
//
// Handlers enqueue Tasks on a bounded TaskQueue; a WorkerPool drains the
// queue with a fixed number of goroutines and records each task's status in a
// TaskStore so clients can poll it.
package task
