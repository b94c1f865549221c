package data

import (
	"bytes"
	"encoding/json"
	"math"
)

// Payload is a decoded JSON object whose member values are kept raw, so the
// validators can tell a missing field from a null one, and a null one from a
// value of the wrong JSON type.
type Payload map[string]json.RawMessage

var jsonNull = []byte("null")

// Null reports whether key is absent or explicitly null.
func (p Payload) Null(key string) bool {
	raw, ok := p[key]
	return !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// String returns the value of key if it is a JSON string.
func (p Payload) String(key string) (string, bool) {
	var s string
	if !p.decode(key, &s) {
		return "", false
	}
	return s, true
}

// Bool returns the value of key if it is a JSON boolean.
func (p Payload) Bool(key string) (bool, bool) {
	var b bool
	if !p.decode(key, &b) {
		return false, false
	}
	return b, true
}

// Int returns the value of key if it is a JSON number holding a whole value
// that fits in an int. However it is written, 18, 18.0 and 1.8e1 all count.
func (p Payload) Int(key string) (int, bool) {
	var f float64
	if !p.decode(key, &f) {
		return 0, false
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Falsy reports whether key is absent, null, false, 0 or the empty string.
func (p Payload) Falsy(key string) bool {
	if p.Null(key) {
		return true
	}
	if b, ok := p.Bool(key); ok {
		return !b
	}
	if s, ok := p.String(key); ok {
		return s == ""
	}
	var f float64
	return p.decode(key, &f) && f == 0
}

// Strings returns the value of key if it is a JSON array of strings.
func (p Payload) Strings(key string) ([]string, bool) {
	var ss []string
	if !p.decode(key, &ss) {
		return nil, false
	}
	return ss, true
}

// decode unmarshals the value of key into dst. Absent and null values never
// decode, since encoding/json would silently leave dst untouched.
func (p Payload) decode(key string, dst any) bool {
	if p.Null(key) {
		return false
	}
	return json.Unmarshal(p[key], dst) == nil
}
