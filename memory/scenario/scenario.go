package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/blockmem/memory/alloc"
)

// Scenario is a named sequence of steps and the allocator it runs against.
type Scenario struct {
	Name string `yaml:"name"`

	// Capacity of the allocator; 0 means the caller's default.
	Capacity int `yaml:"capacity"`

	// LenientFree ignores frees of unknown or already-free addresses.
	LenientFree bool `yaml:"lenientFree"`

	Steps []Step `yaml:"steps"`
}

// Demo returns the classic demonstration sequence on 128 units: first-fit
// 30, next-fit 50, best-fit 20, print, free the block at 0, print.
func Demo() Scenario {
	return Scenario{
		Name:     "demo",
		Capacity: alloc.DefaultCapacity,
		Steps: []Step{
			Alloc(alloc.FirstFit, 30),
			Alloc(alloc.NextFit, 50),
			Alloc(alloc.BestFit, 20),
			Print(),
			Free(0),
			Print(),
		},
	}
}

// Validate checks the capacity and every step.
func (sc Scenario) Validate() error {
	if sc.Capacity < 0 {
		return fmt.Errorf("%w: %d", alloc.ErrInvalidCapacity, sc.Capacity)
	}
	var errs []error
	for i, s := range sc.Steps {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads and validates a YAML scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a YAML scenario. Unknown fields are rejected.
//
//	name: fragmentation
//	capacity: 128
//	steps:
//	  - first=30
//	  - {op: alloc, strategy: best, size: 20}
//	  - free=0
//	  - print
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("unmarshaling scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// stepFields is the mapping form of a step in YAML.
type stepFields struct {
	Op       string `yaml:"op"`
	Strategy string `yaml:"strategy"`
	Size     int    `yaml:"size"`
	Start    int    `yaml:"start"`
}

// UnmarshalYAML accepts either the inline form ("best=20") or a mapping
// with op, strategy, size and start keys.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		step, err := ParseStep(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = step
		return nil
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			switch key := node.Content[i]; key.Value {
			case "op", "strategy", "size", "start":
			default:
				return fmt.Errorf("line %d: field %s not found in step", key.Line, key.Value)
			}
		}
	}

	var f stepFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	step := Step{Op: Op(strings.ToLower(f.Op)), Size: f.Size, Start: f.Start}
	if step.Op == OpAlloc {
		st, err := alloc.ParseStrategy(f.Strategy)
		if err != nil {
			return fmt.Errorf("line %d: %w: %w", node.Line, ErrBadStep, err)
		}
		step.Strategy = st
	}
	*s = step
	return nil
}
