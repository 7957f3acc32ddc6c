package circarr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"xorkevin.dev/circarr/util/ringbuf"
	"xorkevin.dev/kerrors"
	"xorkevin.dev/klog"
)

// Script operation names
const (
	OpAppend = "append"
	OpRotate = "rotate"
	OpGet    = "get"
	OpPrint  = "print"
	OpLen    = "len"
)

type (
	// Op is a single script operation
	Op struct {
		Name string
		Item string
		N    int
		Line int
	}
)

func errOp(line int, msg string, err error) error {
	return kerrors.WithKind(err, ErrInvalidOp, fmt.Sprintf("Line %d: %s", line, msg))
}

func parseOp(line int, s string) (*Op, error) {
	name, rest, _ := strings.Cut(s, " ")
	rest = strings.TrimSpace(rest)
	op := &Op{
		Name: name,
		Line: line,
	}
	switch name {
	case OpAppend:
		if rest == "" {
			return nil, errOp(line, "Missing item to append", nil)
		}
		op.Item = rest
	case OpRotate, OpGet:
		if rest == "" {
			return nil, errOp(line, "Missing integer argument to "+name, nil)
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, errOp(line, "Invalid integer argument to "+name, err)
		}
		op.N = n
	case OpPrint, OpLen:
		if rest != "" {
			return nil, errOp(line, "Unexpected argument to "+name, nil)
		}
	default:
		return nil, errOp(line, "Unknown operation "+name, nil)
	}
	return op, nil
}

// ParseScript parses one operation per line. Blank lines and lines starting
// with # are skipped.
func ParseScript(r io.Reader) ([]Op, error) {
	var ops []Op
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		t := strings.TrimSpace(s.Text())
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		op, err := parseOp(line, t)
		if err != nil {
			return nil, err
		}
		ops = append(ops, *op)
	}
	if err := s.Err(); err != nil {
		return nil, kerrors.WithMsg(err, "Failed to read script")
	}
	return ops, nil
}

type (
	// Interp runs script operations against a ring of strings
	Interp struct {
		log    *klog.LevelLogger
		ring   *ringbuf.Ring[string]
		out    io.Writer
		format string
	}
)

// NewInterp creates a new [*Interp] that writes results to out
func NewInterp(l klog.Logger, out io.Writer, format string) *Interp {
	return &Interp{
		log:    klog.NewLevelLogger(klog.Sub(l, "script", nil)),
		ring:   ringbuf.New[string](),
		out:    out,
		format: format,
	}
}

func (s *Interp) exec(ctx context.Context, op Op) error {
	switch op.Name {
	case OpAppend:
		s.ring.Append(op.Item)
	case OpRotate:
		s.ring.Rotate(op.N)
	case OpGet:
		m, ok := s.ring.Get(op.N)
		if err := WriteItem(s.out, s.format, m, ok); err != nil {
			return err
		}
	case OpLen:
		if _, err := fmt.Fprintln(s.out, s.ring.Len()); err != nil {
			return kerrors.WithMsg(err, "Failed to write length")
		}
	case OpPrint:
		if err := WriteRing(s.out, s.format, s.ring); err != nil {
			return err
		}
	default:
		return errOp(op.Line, "Unknown operation "+op.Name, nil)
	}
	s.log.Debug(ctx, "Ran op", klog.Fields{
		"circ.op":   op.Name,
		"circ.line": op.Line,
		"circ.len":  s.ring.Len(),
	})
	return nil
}

// Run runs ops in order, stopping at the first error
func (s *Interp) Run(ctx context.Context, ops []Op) error {
	for _, i := range ops {
		if err := s.exec(ctx, i); err != nil {
			return err
		}
	}
	s.log.Info(ctx, "Ran script", klog.Fields{
		"circ.ops": len(ops),
		"circ.len": s.ring.Len(),
	})
	return nil
}

// RunScript parses and runs a script
func (s *Interp) RunScript(ctx context.Context, r io.Reader) error {
	ops, err := ParseScript(r)
	if err != nil {
		return err
	}
	return s.Run(ctx, ops)
}
