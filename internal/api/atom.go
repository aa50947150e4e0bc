package api

import (
	"fmt"
	"math"
	"strconv"
)

// AtomType is the type of a message element.
type AtomType int

const (
	// Number is a numeric atom, ints are numbers too.
	Number AtomType = iota
	// Symbol is a textual atom.
	Symbol
)

// Atom is a single element of a message.
type Atom struct {
	Type   AtomType
	Number float64
	Symbol string
}

// FloatAtom creates a numeric atom.
func FloatAtom(f float64) Atom {
	return Atom{Type: Number, Number: f}
}

// IntAtom creates a numeric atom from an int.
func IntAtom(i int) Atom {
	return Atom{Type: Number, Number: float64(i)}
}

// BoolAtom creates a numeric atom with 1 for true and 0 for false.
func BoolAtom(b bool) Atom {
	if b {
		return IntAtom(1)
	}
	return IntAtom(0)
}

// SymbolAtom creates a symbol atom.
func SymbolAtom(s string) Atom {
	return Atom{Type: Symbol, Symbol: s}
}

// ParseAtom parses a numeric atom if possible, otherwise a symbol.
func ParseAtom(s string) Atom {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatAtom(f)
	}
	return SymbolAtom(s)
}

// IsInt returns true if the atom is a number without a fractional part.
func (a Atom) IsInt() bool {
	return a.Type == Number && a.Number == math.Trunc(a.Number) && !math.IsInf(a.Number, 0)
}

func (a Atom) String() string {
	switch a.Type {
	case Symbol:
		return a.Symbol
	case Number:
		return strconv.FormatFloat(a.Number, 'g', -1, 64)
	default:
		return fmt.Sprintf("atom(%d)", a.Type)
	}
}

// Atoms converts the numbers to atoms.
func Atoms(ff ...float64) []Atom {
	atoms := make([]Atom, len(ff))
	for i, f := range ff {
		atoms[i] = FloatAtom(f)
	}
	return atoms
}
