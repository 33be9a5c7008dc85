package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config holds every tunable of the simulation. A sensitivity of zero means
// the rule still runs every tick but commits headings equal to the current
// ones, so it has no observable effect.
type Config struct {
	// World dimensions. The world is a rectangle centered on the origin,
	// so valid X is [-worldWidth/2, worldWidth/2] and likewise for Y.
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// AgentSize offsets the neighbor distance checks: two boids "touch"
	// before their centers do.
	AgentSize float64 `json:"agentSize"`

	// Population, fixed for the whole run.
	NumBoids int `json:"numBoids"`

	// Speed is the per-tick displacement magnitude.
	Speed float64 `json:"speed"`

	// Per-rule neighbor thresholds and blending strengths.
	SeparationDistance    float64 `json:"separationDistance"`
	SeparationSensitivity float64 `json:"separationSensitivity"`
	AlignmentDistance     float64 `json:"alignmentDistance"`
	AlignmentSensitivity  float64 `json:"alignmentSensitivity"`
	CohesionDistance      float64 `json:"cohesionDistance"`
	CohesionSensitivity   float64 `json:"cohesionSensitivity"`

	// TickDelayMs paces headless runs between ticks. It does not account
	// for computation time, so wall-clock drift accumulates; the renderer
	// ignores it and paces with its own frame clock.
	TickDelayMs int `json:"tickDelayMs"`

	// Workers sets the fan-out of each rule's read pass. Values below 2
	// keep the read pass on the calling goroutine. The result is identical
	// either way; this is purely a throughput knob for large populations.
	Workers int `json:"workers"`
}

// DefaultConfig returns the built-in simulation parameters, the same
// values shipped in config.json.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:            960,
		WorldHeight:           540, // 960 * 9 / 16
		AgentSize:             15,
		NumBoids:              30,
		Speed:                 3.0,
		SeparationDistance:    50,
		SeparationSensitivity: 0.1,
		AlignmentDistance:     70,
		AlignmentSensitivity:  0.0,
		CohesionDistance:      100,
		CohesionSensitivity:   0.0,
		TickDelayMs:           20,
		Workers:               0,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	f, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	// 3. Validate
	var v interface{}
	if err := json.NewDecoder(f).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into the struct. The file was already decoded once for
	// validation, but re-reading the bytes is simpler than seeking back.
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
