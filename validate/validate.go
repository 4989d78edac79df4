// Command validate provides a small CLI that validates level JSON files in
// the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Physics-level constraints (start speed, light durations, ascending positions)
//   - That no light sits under the car at the starting position
//   - Light timing: each light's passable share of its cycle
//   - catalog.json: every referenced level file exists and parses
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenwave-game/greenwave/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevel loads and validates a single level JSON file. It performs
// structural checks through the engine's validator plus timing analysis the
// engine does not enforce.
func validateLevel(filePath string, params engine.PhysicsParams) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	lvl, err := engine.LoadLevelConfig(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load: %v", err))
		return result
	}

	if err := engine.ValidateLevelConfig(lvl, params); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// A light inside the car's initial footprint is crossed on the very first
	// tick, before the player can react
	for i, light := range lvl.Lights {
		if light.Position <= params.CarHalfLength {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Light %d at %.0f sits under the car at the start (car front begins at %.0f)",
					i+1, light.Position, params.CarHalfLength))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", lvl.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Start speed: %.0f km/h, Finish: %.0f", lvl.StartSpeed, lvl.FinishPosition))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Lights: %d", len(lvl.Lights)))

		for i, light := range lvl.Lights {
			cycle := light.CycleDuration()
			passable := cycle - light.RedDuration
			result.Errors = append(result.Errors,
				fmt.Sprintf("✓ Light %d at %.0f: cycle %.1fs, passable %.1fs (%.0f%%)",
					i+1, light.Position, cycle, passable, passable/cycle*100))
		}

		earliest := engine.EarliestFinishTime(lvl, params)
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Earliest possible finish (ignoring lights): %.2fs", earliest))
	}

	return result
}

// validateCatalog checks that catalog.json parses and that every level it
// references exists alongside it.
func validateCatalog(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var catalog struct {
		Levels []string `json:"levels"`
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(catalog.Levels) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Catalog lists no levels")
		return result
	}

	dir := filepath.Dir(filePath)
	for _, name := range catalog.Levels {
		filename := name
		if !strings.HasSuffix(filename, ".json") {
			filename += ".json"
		}
		if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Referenced level file missing: %s", filename))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Levels: %d", len(catalog.Levels)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Order: %s", strings.Join(catalog.Levels, " -> ")))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}

	params := engine.DefaultPhysicsParams()

	allValid := true
	for _, file := range files {
		var result ValidationResult
		if filepath.Base(file) == "catalog.json" {
			result = validateCatalog(file)
		} else {
			result = validateLevel(file, params)
		}

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All levels are valid!")
	} else {
		fmt.Println("❌ Some levels have errors")
		os.Exit(1)
	}
}
