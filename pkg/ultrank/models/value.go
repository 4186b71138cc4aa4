// Package models defines data structures for survey profile aggregation.
package models

// Value is an optional numeric cell. Cells that are empty or fail numeric
// coercion are carried as undefined values rather than a sentinel float.
type Value struct {
	// F is the numeric value. Only meaningful when OK is true.
	F float64 `json:"f"`
	// OK reports whether the value is defined.
	OK bool `json:"ok"`
}

// Some returns a defined Value.
func Some(f float64) Value {
	return Value{F: f, OK: true}
}

// None returns an undefined Value.
func None() Value {
	return Value{}
}
