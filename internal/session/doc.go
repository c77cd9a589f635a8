// Package session implements the per-presentation context store. A Manager
// coordinates bounded slide history, TTL-based expiry, and per-key locking
// on top of a pluggable Store backend (in-memory for single instances,
// Redis for multi-instance deployments).
package session
