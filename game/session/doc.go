// Package session manages game session lifecycle: creation, lookup,
// expiration, and optional file-backed persistence so a session survives a
// server restart.
package session
