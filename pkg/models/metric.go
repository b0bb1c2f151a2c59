// Package models defines the core data types for the screener:
// tri-state metrics, raw vendor statement tables, and the derived
// per-company metrics record.
package models

import (
	"encoding/json"
	"math"
)

// Metric is an explicit tri-state numeric result: a finite value, or
// unavailable. Calculators return Metric instead of raising on missing
// or zero-denominator inputs so a single sparse ticker never aborts a
// batch. An available Metric is always finite (never NaN or Inf).
type Metric struct {
	Value float64
	Valid bool
}

// Unavailable is the zero Metric, provided for readability at call sites.
var Unavailable = Metric{}

// Avail wraps a float64 as an available Metric. Non-finite inputs
// (NaN, +/-Inf) collapse to unavailable rather than leaking through
// downstream arithmetic.
func Avail(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// Or returns the value if available, otherwise def.
func (m Metric) Or(def float64) float64 {
	if m.Valid {
		return m.Value
	}
	return def
}

// MarshalJSON encodes unavailable as null, matching the wire contract
// that every derived field is "number or null", never an error object.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null (or a non-finite literal slipping through a
// lenient parser) as unavailable.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Avail(v)
	return nil
}
