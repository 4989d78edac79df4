// Package service defines the game's business logic layer. GameService sits
// between the transports (REST, WebSocket, MCP) and the simulation engine,
// owning session lookup, frame stepping, best-time recording, and leaderboard
// submission.
package service
