// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects the pin PP of a part to the pin CP of its host chip.
//
type Connection struct {
	PP string
	CP string
}

// BusPinName returns the name of the i-th pin of bus name.
//
func BusPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// ParseIOSpec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIOSpec(names string) ([]string, error) {
	var out []string
	for _, item := range splitList(names) {
		name, lo, hi, err := parsePin(item)
		if err != nil {
			return nil, parseError(names, err)
		}
		switch {
		case lo < 0:
			out = append(out, name)
		case hi >= 0:
			return nil, parseError(names, errors.Errorf("unexpected range in bus declaration %q", item))
		case lo == 0:
			return nil, parseError(names, errors.Errorf("invalid bus size in %q", item))
		default:
			for i := 0; i < lo; i++ {
				out = append(out, BusPinName(name, i))
			}
		}
	}
	return out, nil
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2" into a []Connection{{PP: "partPin1", CP: "chipPin1"}, {PP:
// "partPin2", CP: "chipPin2"}}.
//
// Both sides may use bus indices ("a[3]") or inclusive ranges ("a[0..3]").
// Ranges must have the same width on both sides, or the right hand side must
// be a single pin, in which case it is connected to every pin of the range.
// A bare bus name on the left side ("in=x") is expanded once the part's pins
// are known: it maps in[i] to x[i] for every pin of the bus, or every pin of
// the bus to x if x is a constant.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	for _, item := range splitList(c) {
		eq := strings.IndexRune(item, '=')
		if eq < 0 {
			return nil, parseError(c, errors.Errorf("missing '=' in %q", item))
		}
		lhs, err := expandPins(strings.TrimSpace(item[:eq]))
		if err != nil {
			return nil, parseError(c, err)
		}
		rhs, err := expandPins(strings.TrimSpace(item[eq+1:]))
		if err != nil {
			return nil, parseError(c, err)
		}
		switch {
		case len(lhs) == len(rhs):
			for i := range lhs {
				conns = append(conns, Connection{PP: lhs[i], CP: rhs[i]})
			}
		case len(rhs) == 1:
			for i := range lhs {
				conns = append(conns, Connection{PP: lhs[i], CP: rhs[0]})
			}
		default:
			return nil, parseError(c, errors.Errorf("pin count mismatch in %q", item))
		}
	}
	return conns, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandPins expands "a", "a[3]" or "a[0..3]" into individual pin names.
//
func expandPins(s string) ([]string, error) {
	name, lo, hi, err := parsePin(s)
	if err != nil {
		return nil, err
	}
	switch {
	case lo < 0:
		return []string{name}, nil
	case hi < 0:
		return []string{BusPinName(name, lo)}, nil
	case hi < lo:
		return nil, errors.Errorf("invalid range in %q", s)
	}
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, BusPinName(name, i))
	}
	return out, nil
}

// parsePin splits "name", "name[lo]" or "name[lo..hi]". lo and hi are -1 when
// absent.
//
func parsePin(s string) (name string, lo, hi int, err error) {
	lo, hi = -1, -1
	i := strings.IndexRune(s, '[')
	if i < 0 {
		name = s
	} else {
		name = s[:i]
		if !strings.HasSuffix(s, "]") {
			return "", 0, 0, errors.Errorf("missing close bracket in %q", s)
		}
		idx := s[i+1 : len(s)-1]
		if r := strings.Index(idx, ".."); r >= 0 {
			if lo, err = strconv.Atoi(idx[:r]); err != nil {
				return "", 0, 0, errors.Errorf("invalid range start in %q", s)
			}
			if hi, err = strconv.Atoi(idx[r+2:]); err != nil || hi < 0 {
				return "", 0, 0, errors.Errorf("invalid range end in %q", s)
			}
		} else if lo, err = strconv.Atoi(idx); err != nil {
			return "", 0, 0, errors.Errorf("invalid index in %q", s)
		}
		if lo < 0 {
			return "", 0, 0, errors.Errorf("negative index in %q", s)
		}
	}
	if !isIdent(name) {
		return "", 0, 0, errors.Errorf("invalid pin name %q", name)
	}
	return name, lo, hi, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func parseError(in string, err error) error {
	return errors.Wrapf(err, "in %q", in)
}
