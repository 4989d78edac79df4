// Package mcp provides the Model Context Protocol transport for Green Wave.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the game server, so the MCP layer carries no game state of its own beyond a
// per-session virtual clock. Agents cannot run a real-time frame loop, so the
// drive tool expands a pedal-hold duration into a stream of fixed-rate tick
// requests (20 Hz) with synthetic timestamps, stopping early when the attempt
// reaches a terminal state.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - snapshot - current simulation state with per-light phase timings
//   - drive - hold throttle/brake for N seconds of simulated time
//   - restart_level, start_level, next_level
//   - list_levels, submit_run
//   - game_instructions - full rules and agent strategy notes
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
