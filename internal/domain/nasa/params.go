package nasa

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// maxSafeInt is the largest integer a float64 carries exactly.
const maxSafeInt = 1 << 53

// Count is an integer tool parameter such as limit or page.
// Clients that serialize every number as a float send 2.0 for 2; any JSON number with an
// integral value decodes.
type Count int

// CountOf returns a pointer to v, for building inputs in code.
func CountOf(v int) *Count {
	c := Count(v)
	return &c
}

func (c *Count) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	switch {
	case r.Type == gjson.Null:
		return nil
	case r.Type != gjson.Number:
		return errors.Newf("expected an integer, got %s", strings.TrimSpace(string(data)))
	case r.Num != math.Trunc(r.Num) || math.Abs(r.Num) > maxSafeInt:
		return errors.Newf("expected an integer, got %s", r.Raw)
	}
	*c = Count(r.Num)
	return nil
}

// Year is a year filter given either as "2020" or 2020.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		*y = Year(r.Str)
		return nil
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) || math.Abs(r.Num) > maxSafeInt {
			return errors.Newf("expected a year, got %s", r.Raw)
		}
		*y = Year(strconv.FormatInt(int64(r.Num), 10))
		return nil
	default:
		return errors.Newf("expected a year, got %s", strings.TrimSpace(string(data)))
	}
}

func (y Year) String() string { return strings.TrimSpace(string(y)) }
