package cetsp

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options configures one Optimize call: the timelimit and optimality gap
// that gate termination, the named strategies resolved through the
// strategyRegistry, and the oracle backends (§4.4, §6).
type Options struct {
	// Timelimit bounds wall-clock search time; zero means no limit beyond
	// the frontier running dry.
	Timelimit time.Duration `yaml:"timelimit"`

	// RootStrategy, BranchStrategy, SearchStrategy, and Rules name entries
	// of the closed, enumerated strategy sets (§4.4). Rules is evaluated
	// in order; a child must pass every named rule to be pushed.
	RootStrategy   string   `yaml:"root_strategy"`
	BranchStrategy string   `yaml:"branch_strategy"`
	SearchStrategy string   `yaml:"search_strategy"`
	Rules          []string `yaml:"rules"`

	// NumThreads is the number of worker goroutines the engine dispatches
	// node expansion across (§4.6).
	NumThreads int `yaml:"num_threads"`

	// Simplify additionally gates PartialSolution.Simplify: it only runs
	// when both this is true and the branch strategy reports Simplifies()
	// (§9 Open Question (a)).
	Simplify bool `yaml:"simplify"`

	// FeasibilityTol is the disk-containment tolerance passed to the SOCP
	// oracle and PartialSolution.IsFeasible.
	FeasibilityTol float64 `yaml:"feasibility_tol"`

	// OptimalityGap terminates the search once (UB-LB)/UB <= OptimalityGap.
	OptimalityGap float64 `yaml:"optimality_gap"`

	// Seed drives the Random root/branch/search strategies; the heuristic's
	// restarts are seeded from their restart index, not from Seed.
	// Determinism at num_threads=1 depends on holding this fixed (§8).
	Seed int64 `yaml:"seed"`

	// Heuristic configures the primal heuristic that seeds the initial
	// incumbent (§4.2).
	Heuristic HeuristicOptions `yaml:"-"`

	// SOCPOracle and TSPOracle override the default in-process oracles.
	// Left nil, Optimize wires NewReferenceSOCPOracle and
	// NewTwoOptTSPOracle (§4.1, §4.3).
	SOCPOracle SOCPOracle `yaml:"-"`
	TSPOracle  TSPOracle  `yaml:"-"`

	// Callback, if set, is invoked once per node popped from the frontier,
	// after evaluation and before branching (§4.7).
	Callback Callback `yaml:"-"`
}

// DefaultOptions returns the engine defaults: a 60s timelimit, the
// ConvexHull root, the ChFarthestCircleSimplifying branch (so Simplify has
// an effect out of the box), DfsBfs search, the GlobalConvexHullRule
// pruning rule, 8 worker threads, simplify enabled, a feasibility
// tolerance of 1e-3 and an optimality gap of 1e-2 (§6 Options table; the
// strategy-name defaults are an Open Question resolution recorded in
// DESIGN.md since the table itself left them unspecified).
func DefaultOptions() Options {
	return Options{
		Timelimit:      60 * time.Second,
		RootStrategy:   "ConvexHull",
		BranchStrategy: "ChFarthestCircleSimplifying",
		SearchStrategy: "DfsBfs",
		Rules:          []string{"GlobalConvexHullRule"},
		NumThreads:     8,
		Simplify:       true,
		FeasibilityTol: 0.001,
		OptimalityGap:  0.01,
		Seed:           1,
		Heuristic:      DefaultHeuristicOptions(),
	}
}

// LoadOptionsYAML reads Options from a YAML file, starting from
// DefaultOptions so a file may override only the fields it sets.
func LoadOptionsYAML(path string) (Options, error) {
	opts := DefaultOptions()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("cetsp: reading options file %q: %w", path, err)
	}

	// timelimit is exposed as a plain string (e.g. "60s") in YAML; decode
	// into a shadow struct and reparse it, since yaml.v3 does not know
	// about time.Duration's MarshalYAML.
	var shadow struct {
		Timelimit      string   `yaml:"timelimit"`
		RootStrategy   string   `yaml:"root_strategy"`
		BranchStrategy string   `yaml:"branch_strategy"`
		SearchStrategy string   `yaml:"search_strategy"`
		Rules          []string `yaml:"rules"`
		NumThreads     int      `yaml:"num_threads"`
		Simplify       *bool    `yaml:"simplify"`
		FeasibilityTol float64  `yaml:"feasibility_tol"`
		OptimalityGap  float64  `yaml:"optimality_gap"`
		Seed           int64    `yaml:"seed"`
	}
	if err := yaml.Unmarshal(raw, &shadow); err != nil {
		return Options{}, fmt.Errorf("cetsp: parsing options file %q: %w", path, err)
	}

	if shadow.Timelimit != "" {
		d, err := time.ParseDuration(shadow.Timelimit)
		if err != nil {
			return Options{}, fmt.Errorf("cetsp: invalid timelimit %q: %w", shadow.Timelimit, err)
		}
		opts.Timelimit = d
	}
	if shadow.RootStrategy != "" {
		opts.RootStrategy = shadow.RootStrategy
	}
	if shadow.BranchStrategy != "" {
		opts.BranchStrategy = shadow.BranchStrategy
	}
	if shadow.SearchStrategy != "" {
		opts.SearchStrategy = shadow.SearchStrategy
	}
	if len(shadow.Rules) > 0 {
		opts.Rules = shadow.Rules
	}
	if shadow.NumThreads > 0 {
		opts.NumThreads = shadow.NumThreads
	}
	if shadow.Simplify != nil {
		opts.Simplify = *shadow.Simplify
	}
	if shadow.FeasibilityTol > 0 {
		opts.FeasibilityTol = shadow.FeasibilityTol
	}
	if shadow.OptimalityGap > 0 {
		opts.OptimalityGap = shadow.OptimalityGap
	}
	if shadow.Seed != 0 {
		opts.Seed = shadow.Seed
	}

	return opts, nil
}
