package state

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var namePattern = regexp.MustCompile("^[0-9a-zA-Z._-]+$")

// NameValidator checks that a node or prefix identifier is well-formed.
func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%q is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(%q) = %d > 100 is too long", s, len(s))
	}
	return nil
}

// ScenarioValidator checks a scenario before any round runs. Violations here
// are fatal; nothing is simulated on a malformed scenario.
func ScenarioValidator(cfg *ScenarioCfg) error {
	if len(cfg.Edges) == 0 {
		return fmt.Errorf("scenario has no edges")
	}
	if cfg.MaxRounds <= 0 {
		return fmt.Errorf("maxRounds must be positive, got %d", cfg.MaxRounds)
	}
	if _, err := cfg.PaceDuration(); err != nil {
		return err
	}

	nodes := make([]NodeId, 0)
	for _, line := range cfg.Edges {
		e, err := ParseEdge(line)
		if err != nil {
			return err
		}
		for _, n := range []NodeId{e.A, e.B} {
			if err := NameValidator(string(n)); err != nil {
				return err
			}
			if !slices.Contains(nodes, n) {
				nodes = append(nodes, n)
			}
		}
	}

	for origin, prefixes := range cfg.Prefixes {
		if !slices.Contains(nodes, origin) {
			return fmt.Errorf("prefix origin %s is not a topology node", origin)
		}
		seen := make([]Prefix, 0, len(prefixes))
		for _, p := range prefixes {
			if err := NameValidator(string(p)); err != nil {
				return err
			}
			if slices.Contains(seen, p) {
				return fmt.Errorf("origin %s lists prefix %s twice", origin, p)
			}
			seen = append(seen, p)
		}
	}

	// the same prefix may not be originated by two nodes; the simulation has
	// no MED-style arbitration between origins
	owners := make(map[Prefix]NodeId)
	for origin, prefixes := range cfg.Prefixes {
		for _, p := range prefixes {
			if other, dup := owners[p]; dup {
				pair := []string{string(origin), string(other)}
				slices.Sort(pair)
				return fmt.Errorf("prefix %s originated by both %s", p, strings.Join(pair, " and "))
			}
			owners[p] = origin
		}
	}
	return nil
}
