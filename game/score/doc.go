// Package score provides best-time persistence and leaderboard submission for
// the Green Wave game.
//
// The Keeper sits between the simulation and an injected Store. Both the
// store and the leaderboard Submitter are allowed to fail or be entirely
// absent; the package swallows every such failure so the simulation loop
// never observes it. Best times are a plain level-name to seconds mapping,
// serialized as a single JSON object file by FileStore.
package score
