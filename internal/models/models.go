package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Optional marks whether a JSON field was present in the payload.
// A present field may still carry an explicit null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and true only when the field was present and not null.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	if p, ok := any(&o.Value).(*int64); ok {
		return unmarshalWholeNumber(data, p)
	}
	return json.Unmarshal(data, &o.Value)
}

// unmarshalWholeNumber accepts integers and floats without a fractional
// part, such as 12.0 or 1e2.
func unmarshalWholeNumber(data []byte, dst *int64) error {
	err := json.Unmarshal(data, dst)
	if err == nil {
		return nil
	}
	f, perr := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if perr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return err
	}
	*dst = int64(f)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
