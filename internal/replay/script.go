// Package replay drives a sketch session from a text script of pointer and
// key events, so sessions can be reproduced without a window.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

// LineError is a failure tied to a script line
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Op is a script command
type Op int

const (
	OpMode Op = iota
	OpKey
	OpDown
	OpMove
	OpUp
	OpAngle
	OpRadius
	OpTick
	OpUndo
)

// Command is one parsed script line
type Command struct {
	Line  int
	Op    Op
	Mode  session.Mode
	Key   string
	Pixel geometry.Pixel
	Drag  bool    // Button held during a move
	Value float64 // Angle or radius
	Count int     // Tick repetitions
}

// Parse reads a script. Blank lines and # comments are skipped; parsing
// stops at the first bad line.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

func parseCommand(fields []string) (Command, error) {
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "mode":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: mode NAME", ErrBadArguments)
		}
		m, err := session.ParseMode(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
		}
		return Command{Op: OpMode, Mode: m}, nil

	case "key":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: key NAME", ErrBadArguments)
		}
		return Command{Op: OpKey, Key: args[0]}, nil

	case "down", "up", "move":
		cmd := Command{Op: OpDown}
		if name == "up" {
			cmd.Op = OpUp
		}
		if name == "move" {
			cmd.Op = OpMove
			if len(args) == 3 && strings.EqualFold(args[2], "drag") {
				cmd.Drag = true
				args = args[:2]
			}
		}
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: %s X Y", ErrBadArguments, name)
		}
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return Command{}, fmt.Errorf("%w: pixel %s %s", ErrBadArguments, args[0], args[1])
		}
		cmd.Pixel = geometry.NewPixel(x, y)
		return cmd, nil

	case "angle", "radius":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s VALUE", ErrBadArguments, name)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s", ErrBadArguments, args[0])
		}
		if name == "angle" {
			return Command{Op: OpAngle, Value: v}, nil
		}
		return Command{Op: OpRadius, Value: v}, nil

	case "tick":
		cmd := Command{Op: OpTick, Count: 1}
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%w: tick [N]", ErrBadArguments)
		}
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return Command{}, fmt.Errorf("%w: tick count %s", ErrBadArguments, args[0])
			}
			cmd.Count = n
		}
		return cmd, nil

	case "undo":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: undo takes no arguments", ErrBadArguments)
		}
		return Command{Op: OpUndo}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
}
