package nasa

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Upstream documents are probed through gjson paths: a missing parent yields a
// non-existent Result, so every accessor here degrades to nil instead of failing.

// optString returns scalars as strings; objects, arrays and null become nil.
func optString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String:
		v := r.Str
		return &v
	case gjson.Number, gjson.True, gjson.False:
		v := r.String()
		return &v
	default:
		return nil
	}
}

// optInt accepts JSON numbers and numeric strings.
func optInt(r gjson.Result) *int64 {
	switch r.Type {
	case gjson.Number:
		v := r.Int()
		return &v
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(r.Str), 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// optNumber returns JSON numbers only.
func optNumber(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Num
	return &v
}

// optFloat parses upstream numeric strings. Falsy values (absent, null, false, "", 0)
// yield nil rather than zero; a non-numeric string is an error.
func optFloat(r gjson.Result) (*float64, error) {
	switch r.Type {
	case gjson.Number:
		if r.Num == 0 {
			return nil, nil
		}
		v := r.Num
		return &v, nil
	case gjson.String:
		text := strings.TrimSpace(r.Str)
		if text == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse number %q", text)
		}
		return &v, nil
	default:
		return nil, nil
	}
}

// firstNonEmpty probes keys in order and returns the first non-empty scalar.
func firstNonEmpty(obj gjson.Result, keys ...string) *string {
	for _, key := range keys {
		if v := optString(obj.Get(key)); v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

// arrayOf returns the elements of r, or nil when r is not an array.
// gjson's Array() wraps scalars in a one-element slice, which is never wanted here.
func arrayOf(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
