// Package engine provides the core simulation for the Green Wave driving game.
//
// The engine package implements the deterministic game mechanics:
//   - Cyclic traffic-light phase computation
//   - Car physics with throttle, brake and friction coasting
//   - Per-tick crossing rules and win/loss evaluation
//   - Smoothness-based star scoring and run aggregation
//   - Frame-delta bounding with large-delta skip
//
// Core Types:
//
// The Engine interface defines the main contract for simulation operations,
// implemented by SimEngine. AttemptState represents the state of one
// play-through of a level, while LevelConfig defines the authored light layout
// loaded from JSON files.
//
// Usage:
//
//	lvl, err := engine.LoadLevelConfig("configs/warmup.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sim, err := engine.NewEngine([]*engine.LevelConfig{lvl}, engine.DefaultPhysicsParams())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Advance one frame
//	res := sim.Tick(engine.TickInput{Throttle: true}, 1.0/60)
//	snap := res.Snapshot
//
// Game Rules:
//
// The player controls only the car's speed and must pass every traffic light
// while it is not red, without ever coasting or braking to a dead stop, then
// cross the finish line. Fewer deliberate speed changes earn more stars.
//
// The engine is single-threaded by design: exactly one simulation step runs
// per rendered frame and all mutable state is owned by the caller.
package engine
