// Package mocks provides hand-written test doubles for the interfaces that the
// documenter, task and api packages depend on.
//
// Every mock follows the same shape: optional function fields override
// behaviour, plain fields hold default responses, and a Calls struct records
// invocations for verification. Mocks that share a *CallLog append the names
// of their calls to it so tests can assert cross-collaborator ordering.
package mocks
