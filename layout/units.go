package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths.
//
// The canvas is rasterized at one dot per unit, so the native unit of the
// layout is the pixel. Font sizes cross the boundary to the font system in
// points, hence the px<->pt conversion constants below.

// Unit represents the original unit of a length value as written in a theme file.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, treated as pixels
	UnitPX               // pixels
	UnitPT               // points
)

// Conversion constants between pt and px (72 pt per 25.4 canvas units).
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPX converts this length to pixels. Bare numbers pass through unchanged.
func (l Length) ToPX() float64 {
	if l.Unit == UnitPT {
		return l.Value * PtToPx
	}
	return l.Value
}

// ToPT converts this length to points.
func (l Length) ToPT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.Value * PxToPt
}

// ParseLength parses a theme length string ("12", "12px", "9pt") preserving its unit.
// Malformed input yields a zero Length with UnitNone.
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
