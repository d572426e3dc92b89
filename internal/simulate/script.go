// Package simulate runs scripted carousel sessions headlessly.
//
// A script is a list of steps, one per line:
//
//	next | prev              click the arrows
//	goto N                   GoTo(N)
//	finish                   end the transform transition of the active card
//	advance D                move the virtual clock by D (e.g. 100ms)
//	flush                    run deferred callbacks
//	resize N                 replace the slides with N numbered slides and refresh
//	attr k=v | attr k        set or remove an attribute
//	scratch N [P]            complete a scratch gesture on card N, P percent revealed
//	destroy | refresh        lifecycle
//
// Blank lines and lines starting with '#' are ignored.
package simulate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

// Op identifies a simulator step.
type Op string

// Step operations.
const (
	OpNext    Op = "next"
	OpPrev    Op = "prev"
	OpGoto    Op = "goto"
	OpFinish  Op = "finish"
	OpAdvance Op = "advance"
	OpFlush   Op = "flush"
	OpResize  Op = "resize"
	OpAttr    Op = "attr"
	OpScratch Op = "scratch"
	OpDestroy Op = "destroy"
	OpRefresh Op = "refresh"
)

// Step is one parsed script line.
type Step struct {
	Op   Op
	Line int
	Text string

	// Index is the goto target, the resize length or the scratched card
	Index int

	// Duration is the advance amount
	Duration time.Duration

	// Attr and Value are the attribute step operands; Remove is set for "attr k"
	Attr   domain.Attribute
	Value  string
	Remove bool

	// Percent is the optional scratch percentage
	Percent *float64
}

// ParseScript reads steps from r.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := ParseStep(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		step.Line = line
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// ParseSteps parses one step per element, as given on the command line.
func ParseSteps(lines []string) ([]Step, error) {
	return ParseScript(strings.NewReader(strings.Join(lines, "\n")))
}

// ParseStep parses a single step.
func ParseStep(text string) (Step, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Step{}, domain.NewValidationError("step", text, "empty step")
	}

	step := Step{Op: Op(strings.ToLower(fields[0])), Text: strings.Join(fields, " ")}
	args := fields[1:]

	switch step.Op {
	case OpNext, OpPrev, OpFinish, OpFlush, OpDestroy, OpRefresh:
		if len(args) != 0 {
			return Step{}, domain.NewValidationError("step", text, "takes no arguments")
		}

	case OpGoto, OpResize:
		if len(args) != 1 {
			return Step{}, domain.NewValidationError("step", text, "expects one integer")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Step{}, domain.NewValidationError("step", text, "expects one integer")
		}
		if step.Op == OpResize && n < 0 {
			return Step{}, domain.NewValidationError("step", text, "length must not be negative")
		}
		step.Index = n

	case OpAdvance:
		if len(args) != 1 {
			return Step{}, domain.NewValidationError("step", text, "expects a duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil || d < 0 {
			return Step{}, domain.NewValidationError("step", text, "expects a non-negative duration")
		}
		step.Duration = d

	case OpAttr:
		if len(args) != 1 {
			return Step{}, domain.NewValidationError("step", text, "expects k=v or k")
		}
		name, value, hasValue := strings.Cut(args[0], "=")
		if name == "" {
			return Step{}, domain.NewValidationError("step", text, "attribute name is empty")
		}
		step.Attr = domain.Attribute(name)
		step.Value = value
		step.Remove = !hasValue

	case OpScratch:
		if len(args) < 1 || len(args) > 2 {
			return Step{}, domain.NewValidationError("step", text, "expects a card index and an optional percent")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return Step{}, domain.NewValidationError("step", text, "card index must be a non-negative integer")
		}
		step.Index = n
		if len(args) == 2 {
			p, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return Step{}, domain.NewValidationError("step", text, "percent must be a number")
			}
			step.Percent = &p
		}

	default:
		return Step{}, domain.NewValidationError("step", text, "unknown step")
	}

	return step, nil
}
