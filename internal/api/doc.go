/*
Package api implements the HTTP surface of schemadoc.

Clients queue documentation jobs for a connection, poll their progress from
the Redis counters, read the last persisted summary and inspect task status.
Every /api route requires a bearer token; /health and /metrics are public.
*/
package api
