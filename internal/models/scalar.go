package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the numeric prefix of a loosely formatted value such as "3.5/4.0" or "20%".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Scalar holds a loosely typed document value that may be stored either as a
// JSON number or as a string (GPA, weightage, credit hours).
type Scalar struct {
	raw    string
	number bool
	set    bool
}

// NumberScalar builds a numeric scalar.
func NumberScalar(v float64) Scalar {
	return Scalar{raw: strconv.FormatFloat(v, 'f', -1, 64), number: true, set: true}
}

// StringScalar builds a string scalar.
func StringScalar(v string) Scalar {
	return Scalar{raw: v, set: true}
}

// UnmarshalJSON accepts numbers, strings and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = Scalar{}
		return nil
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar{raw: str, set: true}
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("scalar: unsupported value %s", data)
	}
	*s = Scalar{raw: string(data), number: true, set: true}
	return nil
}

// MarshalJSON writes the value back in its original JSON kind.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	if s.number {
		return []byte(s.raw), nil
	}
	return json.Marshal(s.raw)
}

// IsSet reports whether the field was present.
func (s Scalar) IsSet() bool {
	return s.set
}

// String returns the value as stored.
func (s Scalar) String() string {
	return s.raw
}

// Float parses the leading number of the value and ignores any trailing text.
// ok is false for absent values, values without a numeric prefix, NaN or infinity.
func (s Scalar) Float() (float64, bool) {
	if !s.set {
		return 0, false
	}
	prefix := leadingNumber.FindString(strings.TrimSpace(s.raw))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
