// Package websocket provides the WebSocket transport for Green Wave.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// connections. Clients are viewers: they attach to a session via query
// parameter (?session=abc1) and receive a JSON Message with the full
// presentation snapshot after every state change. Driving input goes over
// REST; the read side of a connection only keeps it alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a state-changing operation
//	hub.BroadcastSnapshot(sessionID, snapshot)
//
// The hub's session map is confined to the Run goroutine; registration,
// unregistration, and broadcasts all travel through channels, so any number
// of clients and broadcasters can operate concurrently.
package websocket
