package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/greenwave-game/greenwave/game/engine"
	"github.com/greenwave-game/greenwave/game/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// driveTickRate is the fixed cadence the drive tool simulates frames at.
// 20 Hz keeps every synthetic delta well under the frame-skip threshold.
const driveTickRate = 0.05

// Client is a thin MCP client that proxies to the REST API. Agents have no
// real-time frame loop, so the drive tool synthesizes a fixed-rate stream of
// tick requests from a per-session virtual clock.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer

	// Virtual clock per session, advanced by the drive tool
	clockMu sync.Mutex
	clocks  map[string]float64
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clocks: make(map[string]float64),
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Green Wave",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Green Wave - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Drive a car down a straight road, cross every traffic light while it is
passable, and reach the finish line. Smooth driving earns more stars.

AVAILABLE TOOLS:
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- snapshot: Get the current simulation state
- drive: Hold the pedals for a duration of simulated time - requires intent explanation
- restart_level: Restart the current level
- start_level: Jump to a level by index (0 starts a fresh run)
- next_level: Advance after winning a level
- list_levels: List the level catalog with best times
- submit_run: Submit a completed run to the leaderboard
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the drive tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with an optional player name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the session (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "snapshot",
		Description: "Get the current simulation state: speed, position, lights, and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSnapshot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "drive",
		Description: "Hold the pedals for a duration of simulated time. The simulation runs at a fixed 20 Hz; a terminal state (win or loss) ends the drive early.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"duration": map[string]interface{}{
					"type":        "number",
					"description": "Seconds of simulated time to drive for (max 60)",
				},
				"throttle": map[string]interface{}{
					"type":        "boolean",
					"description": "Hold the throttle pedal",
				},
				"brake": map[string]interface{}{
					"type":        "boolean",
					"description": "Hold the brake pedal",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this drive (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "duration"},
		},
	}, c.handleDrive)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_level",
		Description: "Restart the current level from its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestartLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_level",
		Description: "Jump to a level by index. Index 0 begins a fresh run.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"level_index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based level index",
				},
			},
			Required: []string{"session_id", "level_index"},
		},
	}, c.handleStartLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Advance to the next level after winning the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List the level catalog with light counts and best times",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_run",
		Description: "Submit a completed run to the leaderboard",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Leaderboard name (max 24 characters, no control characters)",
				},
			},
			Required: []string{"session_id", "username"},
		},
	}, c.handleSubmitRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// nextTimestamp advances a session's virtual clock by one fixed-rate frame
func (c *Client) nextTimestamp(sessionID string) float64 {
	c.clockMu.Lock()
	defer c.clockMu.Unlock()
	c.clocks[sessionID] += driveTickRate
	return c.clocks[sessionID]
}

// resetClock makes the next drive start from a fresh baseline frame
func (c *Client) resetClock(sessionID string) {
	c.clockMu.Lock()
	defer c.clockMu.Unlock()
	delete(c.clocks, sessionID)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerName, _ := args["player_name"].(string)

	body := map[string]string{}
	if playerName != "" {
		body["player_name"] = playerName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\n\n%s", session.ID, formatSnapshot(session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level := ""
		if s.Snapshot != nil {
			level = s.Snapshot.LevelName
		}
		result += fmt.Sprintf("- %s (Level: %s, Created: %s)\n",
			s.ID, level, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nPlayer: %s\nCreated: %s\n\n%s",
		session.ID, session.PlayerName, session.CreatedAt.Format("15:04:05"),
		formatSnapshot(session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snapshot engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/snapshot", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
}

func (c *Client) handleDrive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	duration, _ := args["duration"].(float64)
	throttle, _ := args["throttle"].(bool)
	brake, _ := args["brake"].(bool)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	if duration <= 0 {
		return mcp.NewToolResultError("duration must be positive"), nil
	}
	if duration > 60 {
		duration = 60
	}

	ticks := int(duration/driveTickRate + 0.5)
	if ticks < 1 {
		ticks = 1
	}

	var last service.TickOutcome
	simulated := 0
	// One extra iteration allows for the baseline frame after a clock reset,
	// which consumes no simulated time
	for i := 0; i <= ticks && simulated < ticks; i++ {
		body := service.TickRequest{
			Timestamp: c.nextTimestamp(sessionID),
			Throttle:  throttle,
			Brake:     brake,
		}

		var outcome service.TickOutcome
		if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tick", sessionID), body, &outcome); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if outcome.Skipped {
			continue
		}
		simulated++
		last = outcome

		if outcome.Status != engine.StatusPlaying {
			break
		}
	}

	return mcp.NewToolResultText(formatTickOutcome(&last)), nil
}

func (c *Client) handleRestartLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c.resetClock(sessionID)

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStartLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	levelIndex := 0
	if idx, ok := args["level_index"].(float64); ok {
		levelIndex = int(idx)
	}

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	body := map[string]int{"level_index": levelIndex}
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start-level", sessionID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c.resetClock(sessionID)

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/next-level", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c.resetClock(sessionID)

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int                  `json:"count"`
		Levels []*service.LevelInfo `json:"levels"`
	}

	err := c.apiCall("GET", "/api/levels", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Level Catalog (%d levels):\n\n", response.Count)
	for _, lvl := range response.Levels {
		best := "none"
		if lvl.BestTime > 0 {
			best = fmt.Sprintf("%.2fs", lvl.BestTime)
		}
		result += fmt.Sprintf("%d. %s\n   %s\n   Lights: %d, Finish: %.0f, Start speed: %.0f km/h, Best: %s\n\n",
			lvl.Index, lvl.Name, lvl.Description, lvl.LightCount, lvl.FinishPosition, lvl.StartSpeed, best)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSubmitRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	username, _ := args["username"].(string)

	var outcome service.SubmitOutcome
	body := map[string]string{"username": username}
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/submit", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := "declined"
	if outcome.Accepted {
		status = "accepted"
	}
	result := fmt.Sprintf("Leaderboard submission %s.\n\n%s", status, formatRunSummary(outcome.Summary))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Green Wave - Complete Instructions

GAME OBJECTIVE:
Drive down a straight road, cross every traffic light legally, and pass the
finish line. Finish every level to complete the run; smooth driving earns
more stars.

CONTROLS:
Two pedals, sampled every frame:
- throttle: accelerate (20 km/h per second, capped at 120 km/h)
- brake: decelerate (35 km/h per second, floored at 0)
- neither, or both: the car coasts and friction bleeds 6 km/h per second

LIGHT PHASES (each light cycles independently):
- red: NOT passable - crossing fails the attempt
- yellow_pre_green: passable - fixed 1.0s warning before green
- green: passable
- blinking_yellow: passable - fixed 1.5s tail after green, then red

Lights differ in green/red durations and phase offsets. A light's cycle is
red -> yellow_pre_green -> green -> blinking_yellow -> red, repeating forever.

FAILURE CONDITIONS:
- Crossing a light while it is red
- Coming to a complete stop without the throttle held

Both end the attempt immediately. Use restart_level and try again; failed
attempts do not erase run progress.

SCORING:
Every throttle or brake frame adds that frame's speed change to a smoothness
penalty. At the finish, stars = penalty normalized per 100 road units:
- under 20: 3 stars
- under 50: 2 stars
- otherwise: 1 star
Coasting is free - the less you touch the pedals, the better the score.

STRATEGY FOR AGENTS:
1. Take a snapshot first. Each light reports its phase, time until the next
   phase change, and that phase's duration - plan your speed so you arrive
   while the light is passable.
2. Drive in short bursts (1-3 seconds), then re-check the snapshot. A single
   long blind drive is how you hit a red light.
3. Prefer easing off (coast) over braking: both slow you down, but only the
   brake pedal costs smoothness.
4. Never coast to a standstill - a stopped car with no throttle loses.
   If your speed is dropping near zero, hold the throttle.
5. timing math: distance to a light divided by (speed * 3) gives seconds
   until you reach it (positions are speed * 3 units per second).

RUN STRUCTURE:
- start_level 0 begins a fresh run; winning the last level completes it
- Each level win records a finish time; beating your best time is reported
- After completing a run, submit_run posts your total to the leaderboard

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously, each with a unique 4-character ID
- Sessions maintain independent state and survive server restarts

Good luck catching the green wave!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSnapshot(s *engine.Snapshot) string {
	if s == nil {
		return "(no snapshot)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level %d/%d: %s\n", s.LevelIndex+1, s.LevelCount, s.LevelName)
	fmt.Fprintf(&b, "Status: %s", s.Status)
	if s.LossReason != "" {
		fmt.Fprintf(&b, " (%s)", s.LossReason)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Time: %.2fs  Speed: %.1f km/h  Position: %.0f/%.0f\n",
		s.ElapsedTime, s.Speed, s.Position, s.FinishPosition)
	fmt.Fprintf(&b, "Lights passed: %d/%d\n", s.LightsPassed, len(s.Lights))

	for i, l := range s.Lights {
		marker := " "
		if l.Passed {
			marker = "x"
		}
		fmt.Fprintf(&b, "  [%s] light %d at %.0f: %s (%.1fs of %.1fs left)\n",
			marker, i+1, l.Position, l.Phase, l.TimeUntilChange, l.PhaseDuration)
	}

	if s.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Message)
	}
	return b.String()
}

func formatTickOutcome(o *service.TickOutcome) string {
	if o == nil || o.Snapshot == nil {
		return "(no simulation progress)"
	}

	result := formatSnapshot(o.Snapshot)

	if o.Result != nil {
		stars := strings.Repeat("*", o.Result.Stars)
		result += fmt.Sprintf("\nLevel complete: %.2fs, %s (smoothness %.1f)\n",
			o.Result.FinishTime, stars, o.Result.Smoothness)
		if o.NewBest {
			result += fmt.Sprintf("New best time: %.2fs\n", o.BestTime)
		} else if o.BestTime > 0 {
			result += fmt.Sprintf("Best time: %.2fs\n", o.BestTime)
		}
	}
	if o.RunComplete {
		result += "\nRUN COMPLETE!\n" + formatRunSummary(o.Summary)
	}
	return result
}

func formatRunSummary(s *engine.RunSummary) string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total time: %.2fs\n", s.TotalTime)
	fmt.Fprintf(&b, "Average stars: %.1f (%s)\n", s.AverageStars, strings.Repeat("*", s.StarGlyphs))
	for _, lvl := range s.Levels {
		fmt.Fprintf(&b, "  %d. %s: %.2fs %s\n",
			lvl.LevelIndex+1, lvl.LevelName, lvl.FinishTime, strings.Repeat("*", lvl.Stars))
	}
	return b.String()
}
