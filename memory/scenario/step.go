package scenario

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/joshuapare/blockmem/memory/alloc"
)

// Op names a scenario operation.
type Op string

const (
	OpAlloc Op = "alloc"
	OpFree  Op = "free"
	OpPrint Op = "print"
	OpStats Op = "stats"
	OpReset Op = "reset"
)

// ErrBadStep indicates a step that cannot be parsed or validated.
var ErrBadStep = errors.New("scenario: bad step")

// Step is one operation replayed against an allocator.
type Step struct {
	Op       Op
	Strategy alloc.Strategy // OpAlloc only
	Size     int            // OpAlloc only
	Start    int            // OpFree only
}

// Alloc returns an allocation step.
func Alloc(s alloc.Strategy, size int) Step { return Step{Op: OpAlloc, Strategy: s, Size: size} }

// Free returns a deallocation step.
func Free(start int) Step { return Step{Op: OpFree, Start: start} }

// Print returns a step that hands the current snapshot to the runner's printer.
func Print() Step { return Step{Op: OpPrint} }

func (s Step) String() string {
	switch s.Op {
	case OpAlloc:
		return fmt.Sprintf("%s=%d", s.Strategy, s.Size)
	case OpFree:
		return fmt.Sprintf("free=%d", s.Start)
	default:
		return string(s.Op)
	}
}

// Validate checks that the step's fields make sense for its Op.
func (s Step) Validate() error {
	switch s.Op {
	case OpAlloc:
		if !slices.Contains(alloc.Strategies, s.Strategy) {
			return fmt.Errorf("%w: %s: %w", ErrBadStep, s, alloc.ErrUnknownStrategy)
		}
		if s.Size <= 0 {
			return fmt.Errorf("%w: %s: size must be positive", ErrBadStep, s)
		}
	case OpFree:
		if s.Start < 0 {
			return fmt.Errorf("%w: %s: start must not be negative", ErrBadStep, s)
		}
	case OpPrint, OpStats, OpReset:
	default:
		return fmt.Errorf("%w: unknown op %q", ErrBadStep, s.Op)
	}
	return nil
}

// ParseStep parses the inline form used on the command line:
//
//	first=30  next=50  best=20  free=0  print  stats  reset
func ParseStep(text string) (Step, error) {
	text = strings.TrimSpace(text)
	name, arg, hasArg := strings.Cut(text, "=")
	name = strings.ToLower(strings.TrimSpace(name))

	var step Step
	switch Op(name) {
	case OpPrint, OpStats, OpReset:
		if hasArg {
			return Step{}, fmt.Errorf("%w: %q takes no argument", ErrBadStep, name)
		}
		step = Step{Op: Op(name)}
	case OpFree:
		n, err := parseArg(text, arg, hasArg)
		if err != nil {
			return Step{}, err
		}
		step = Free(n)
	default:
		s, err := alloc.ParseStrategy(name)
		if err != nil {
			return Step{}, fmt.Errorf("%w: %q", ErrBadStep, text)
		}
		n, err := parseArg(text, arg, hasArg)
		if err != nil {
			return Step{}, err
		}
		step = Alloc(s, n)
	}
	if err := step.Validate(); err != nil {
		return Step{}, err
	}
	return step, nil
}

// ParseSteps parses each argument with ParseStep.
func ParseSteps(texts []string) ([]Step, error) {
	steps := make([]Step, 0, len(texts))
	for i, t := range texts {
		s, err := ParseStep(t)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func parseArg(text, arg string, hasArg bool) (int, error) {
	if !hasArg {
		return 0, fmt.Errorf("%w: %q needs =<units>", ErrBadStep, text)
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadStep, text, err)
	}
	return n, nil
}
