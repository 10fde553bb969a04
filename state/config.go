package state

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// ScenarioCfg describes one simulation run: the topology, the path-vector
// origin prefixes, and the run parameters. Edges are written as
// comma-separated strings, "u, v" or "u, v, cost".
type ScenarioCfg struct {
	Name      string              `yaml:",omitempty"`
	Edges     []string            `yaml:"edges"`
	Prefixes  map[NodeId][]Prefix `yaml:"prefixes,omitempty"`
	MaxRounds int                 `yaml:"maxRounds,omitempty"`
	Pace      string              `yaml:"pace,omitempty"` // per-round display delay, e.g. "200ms"
}

// DefaultMaxRounds matches the round budget of the original lab runs.
const DefaultMaxRounds = 50

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*ScenarioCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ScenarioCfg
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if err := ScenarioValidator(&cfg); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &cfg, nil
}

// ParseEdge parses one edge string of the form "u, v" or "u, v, cost".
func ParseEdge(s string) (Edge, error) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || len(parts) > 3 {
		return Edge{}, fmt.Errorf("edge %q: want \"u, v\" or \"u, v, cost\"", s)
	}
	e := Edge{A: NodeId(parts[0]), B: NodeId(parts[1])}
	if len(parts) == 3 {
		cost, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil || cost == 0 {
			return Edge{}, fmt.Errorf("edge %q: cost must be a positive integer", s)
		}
		e.Cost = Cost(cost)
	}
	return e, nil
}

// Topology builds the validated graph described by the scenario's edge list.
func (c *ScenarioCfg) Topology() (*Topology, error) {
	edges := make([]Edge, 0, len(c.Edges))
	for _, line := range c.Edges {
		e, err := ParseEdge(line)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return NewTopology(edges)
}

// PaceDuration parses the optional per-round pacing delay.
func (c *ScenarioCfg) PaceDuration() (time.Duration, error) {
	if c.Pace == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Pace)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("pace %q is not a valid non-negative duration", c.Pace)
	}
	return d, nil
}
