// Package api provides the HTTP REST surface for Green Wave.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/snapshot - Current presentation state
//   - POST /api/sessions/{id}/tick - Advance one frame
//   - POST /api/sessions/{id}/restart - Restart current level
//   - POST /api/sessions/{id}/start-level - Jump to a level (0 starts a run)
//   - POST /api/sessions/{id}/next-level - Advance after a win
//   - POST /api/sessions/{id}/submit - Submit a completed run
//
// Catalog and Scores:
//   - GET /api/levels - List levels with best times
//   - GET /api/best-times - All recorded best times
//   - GET /api/health - Health check
//
// WebSocket:
//   - GET /ws?session={id} - Attach a live viewer to a session
//
// A tick is sent as POST with a JSON body:
//
//	{
//	  "timestamp": 1234.05,  // monotonic seconds; the server derives dt
//	  "throttle": true,
//	  "brake": false
//	}
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// State-changing operations broadcast the resulting snapshot to all
// WebSocket viewers of the session.
package api
