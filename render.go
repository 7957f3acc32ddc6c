package circarr

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"xorkevin.dev/circarr/util/kjson"
	"xorkevin.dev/circarr/util/ringbuf"
	"xorkevin.dev/kerrors"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// absentItem is printed for a lookup past the end of the ring
const absentItem = "None"

func parseFormat(s string) (string, error) {
	switch s {
	case formatText, formatJSON, formatYAML:
		return s, nil
	case "":
		return formatText, nil
	default:
		return "", kerrors.WithKind(nil, ErrInvalidFormat, "Unknown format: "+s)
	}
}

// WriteRing writes the items of a ring in logical order. The text format
// writes one item per line.
func WriteRing[T any](w io.Writer, format string, r *ringbuf.Ring[T]) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case formatJSON:
		b, err := kjson.Marshal(r.Slice())
		if err != nil {
			return kerrors.WithMsg(err, "Failed to encode items")
		}
		if _, err := w.Write(b); err != nil {
			return kerrors.WithMsg(err, "Failed to write items")
		}
	case formatYAML:
		e := yaml.NewEncoder(w)
		if err := e.Encode(r.Slice()); err != nil {
			return kerrors.WithMsg(err, "Failed to encode items")
		}
		if err := e.Close(); err != nil {
			return kerrors.WithMsg(err, "Failed to write items")
		}
	default:
		for m := range r.All() {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return kerrors.WithMsg(err, "Failed to write items")
			}
		}
	}
	return nil
}

// WriteItem writes a single looked up item. An absent item is written as
// None in the text format and null otherwise.
func WriteItem[T any](w io.Writer, format string, m T, ok bool) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	var v *T
	if ok {
		v = &m
	}
	switch f {
	case formatJSON:
		b, err := kjson.Marshal(v)
		if err != nil {
			return kerrors.WithMsg(err, "Failed to encode item")
		}
		if _, err := w.Write(b); err != nil {
			return kerrors.WithMsg(err, "Failed to write item")
		}
	case formatYAML:
		e := yaml.NewEncoder(w)
		if err := e.Encode(v); err != nil {
			return kerrors.WithMsg(err, "Failed to encode item")
		}
		if err := e.Close(); err != nil {
			return kerrors.WithMsg(err, "Failed to write item")
		}
	default:
		var err error
		if ok {
			_, err = fmt.Fprintln(w, m)
		} else {
			_, err = fmt.Fprintln(w, absentItem)
		}
		if err != nil {
			return kerrors.WithMsg(err, "Failed to write item")
		}
	}
	return nil
}
