// Command analyze prints quick, human-readable heuristics about level files
// in the project's configs directory. The analyze subcommand summarizes light
// cycle timings and the windows a full-throttle driver would hit; the
// simulate subcommand replays a scripted pedal sequence through the engine
// and reports the outcome.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/greenwave-game/greenwave/game/engine"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Inspect and dry-run Green Wave level files",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Summarize light timings for level files",
				ArgsUsage: "[level.json ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "configs",
						Value: "configs",
						Usage: "Directory holding level JSON files",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:      "simulate",
				Usage:     "Replay a scripted pedal sequence through a level",
				ArgsUsage: "level.json",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "script",
						Value: "t:10",
						Usage: "Comma-separated segments: t:<sec> throttle, b:<sec> brake, c:<sec> coast",
					},
					&cli.FloatFlag{
						Name:  "dt",
						Value: 0.05,
						Usage: "Frame delta in seconds",
					},
				},
				Action: runSimulate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	params := engine.DefaultPhysicsParams()

	files := cmd.Args().Slice()
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(cmd.String("configs"), "*.json"))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if filepath.Base(m) != "catalog.json" {
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no level files found")
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzeLevel(file, params); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
	return nil
}

func analyzeLevel(path string, params engine.PhysicsParams) error {
	lvl, err := engine.LoadLevelConfig(path)
	if err != nil {
		return err
	}
	if err := engine.ValidateLevelConfig(lvl, params); err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", lvl.Name)
	fmt.Printf("Start Speed: %.0f km/h\n", lvl.StartSpeed)
	fmt.Printf("Finish: %.0f\n", lvl.FinishPosition)
	fmt.Printf("Lights: %d\n", len(lvl.Lights))

	earliest := engine.EarliestFinishTime(lvl, params)
	fmt.Printf("Earliest possible finish (ignoring lights): %.2fs\n", earliest)

	// For each light, report the cycle and where a full-throttle arrival lands
	arrival := fullThrottleArrivals(lvl, params)
	for i, light := range lvl.Lights {
		cycle := light.CycleDuration()
		passable := cycle - light.RedDuration
		fmt.Printf("\nLight %d at %.0f:\n", i+1, light.Position)
		fmt.Printf("  Cycle: %.1fs (red %.1f, pre-green %.1f, green %.1f, blinking %.1f)\n",
			cycle, light.RedDuration, engine.YellowBeforeGreen, light.GreenDuration, engine.YellowAfterGreen)
		fmt.Printf("  Passable share: %.0f%%\n", passable/cycle*100)

		t, ok := arrival[i]
		if !ok {
			fmt.Printf("  Full-throttle arrival: never (light beyond finish?)\n")
			continue
		}
		phase := engine.PhaseAt(light, t)
		verdict := "PASSES"
		if !phase.Passable() {
			verdict = "RUNS THE RED"
		}
		fmt.Printf("  Full-throttle arrival: %.2fs during %s -> %s\n", t, phase, verdict)
	}
	return nil
}

// fullThrottleArrivals integrates a throttle-only run and records when the
// car's front edge first passes each light.
func fullThrottleArrivals(lvl *engine.LevelConfig, params engine.PhysicsParams) map[int]float64 {
	arrivals := make(map[int]float64)

	const dt = 0.01
	speed := lvl.StartSpeed
	position := 0.0
	elapsed := 0.0
	next := 0

	for next < len(lvl.Lights) && position <= lvl.FinishPosition {
		elapsed += dt
		speed += params.Accel * dt
		if speed > params.MaxSpeed {
			speed = params.MaxSpeed
		}
		position += speed * params.PixelsPerKMH * dt

		for next < len(lvl.Lights) && position+params.CarHalfLength > lvl.Lights[next].Position {
			arrivals[next] = elapsed
			next++
		}
	}
	return arrivals
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("simulate takes exactly one level file")
	}

	params := engine.DefaultPhysicsParams()
	lvl, err := engine.LoadLevelConfig(cmd.Args().First())
	if err != nil {
		return err
	}
	if err := engine.ValidateLevelConfig(lvl, params); err != nil {
		return err
	}

	script, err := parseScript(cmd.String("script"))
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine([]*engine.LevelConfig{lvl}, params)
	if err != nil {
		return err
	}

	dt := cmd.Float("dt")
	if dt <= 0 {
		return fmt.Errorf("dt must be positive")
	}

	fmt.Printf("Simulating %s (dt=%.3fs, script=%s)\n\n", lvl.Name, dt, cmd.String("script"))

	var res *engine.TickResult
	for _, seg := range script {
		ticks := int(seg.duration/dt + 0.5)
		if ticks < 1 {
			ticks = 1
		}
		for i := 0; i < ticks; i++ {
			res = eng.Tick(seg.input, dt)
			if res.Status != engine.StatusPlaying {
				break
			}
		}
		snap := res.Snapshot
		fmt.Printf("after %-8s t=%6.2fs speed=%6.1f pos=%7.1f lights=%d status=%s\n",
			seg.label, snap.ElapsedTime, snap.Speed, snap.Position, snap.LightsPassed, snap.Status)
		if res.Status != engine.StatusPlaying {
			break
		}
	}

	snap := eng.Snapshot()
	fmt.Printf("\nFinal: %s", snap.Status)
	if snap.LossReason != "" {
		fmt.Printf(" (%s)", snap.LossReason)
	}
	fmt.Println()
	if res != nil && res.Result != nil {
		fmt.Printf("Finish time: %.2fs, stars: %d, smoothness: %.1f\n",
			res.Result.FinishTime, res.Result.Stars, res.Result.Smoothness)
	}
	return nil
}

type scriptSegment struct {
	label    string
	input    engine.TickInput
	duration float64
}

// parseScript turns "t:2.5,c:1,b:0.5" into pedal segments
func parseScript(s string) ([]scriptSegment, error) {
	parts := strings.Split(s, ",")
	segments := make([]scriptSegment, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("bad script segment %q (want pedal:seconds)", part)
		}

		duration, err := strconv.ParseFloat(kv[1], 64)
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("bad duration in segment %q", part)
		}

		var input engine.TickInput
		switch kv[0] {
		case "t":
			input.Throttle = true
		case "b":
			input.Brake = true
		case "c":
			// coast
		default:
			return nil, fmt.Errorf("unknown pedal %q in segment %q (want t, b, or c)", kv[0], part)
		}

		segments = append(segments, scriptSegment{label: part, input: input, duration: duration})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("script is empty")
	}
	return segments, nil
}
