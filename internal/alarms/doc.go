// Package alarms implements the alarm registry and trigger matching.
//
// [Registry] is the authoritative, concurrency-safe collection of scheduled
// alarms. All mutations (create, toggle, delete) run under an exclusive lock
// for the full read-modify-write-persist sequence, so readers never observe
// a partially updated collection and the persisted mirror never runs ahead
// of memory. Reads ([Registry.List], [Registry.FindDue]) take the shared
// lock and return independent copies.
//
// Persistence is synchronous but best effort: a failed write is logged and
// the in-memory state stays authoritative for the running process.
package alarms
