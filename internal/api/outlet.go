package api

import (
	"fmt"
	"strings"
)

const (
	// MainOutlet carries the results, labels, regression vectors and errors.
	MainOutlet = iota
	// StatusOutlet carries the operation status and the class probabilities.
	StatusOutlet
	// InfoOutlet carries the attribute values and the object info.
	InfoOutlet
	NumOutlets
)

// Output is a message emitted on one of the outlets.
type Output struct {
	Outlet   int
	Selector string
	Atoms    []Atom
}

// NewOutput creates a new output for the given outlet.
func NewOutput(outlet int, selector string, atoms ...Atom) Output {
	return Output{
		Outlet:   outlet,
		Selector: selector,
		Atoms:    atoms,
	}
}

// Floats returns the numeric atoms of the output.
func (o Output) Floats() []float64 {
	ff := make([]float64, 0, len(o.Atoms))
	for _, a := range o.Atoms {
		if a.Type == Number {
			ff = append(ff, a.Number)
		}
	}
	return ff
}

func (o Output) String() string {
	s := make([]string, 0, len(o.Atoms)+1)
	if o.Selector != "" {
		s = append(s, o.Selector)
	}
	for _, a := range o.Atoms {
		s = append(s, a.String())
	}
	return fmt.Sprintf("%d: %s", o.Outlet, strings.Join(s, " "))
}

// Outlet receives the outputs of an object.
type Outlet interface {
	Emit(output Output)
}

// OutletFunc is a function acting as an Outlet.
type OutletFunc func(output Output)

// Emit calls the function with the output.
func (f OutletFunc) Emit(output Output) {
	f(output)
}

// Recorder is an Outlet keeping all emitted outputs in order.
type Recorder struct {
	Outputs []Output
}

// NewRecorder creates a new empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Outputs: make([]Output, 0)}
}

// Emit records the output.
func (r *Recorder) Emit(output Output) {
	r.Outputs = append(r.Outputs, output)
}

// Outlet returns the outputs emitted on the given outlet.
func (r *Recorder) Outlet(outlet int) []Output {
	outputs := make([]Output, 0)
	for _, o := range r.Outputs {
		if o.Outlet == outlet {
			outputs = append(outputs, o)
		}
	}
	return outputs
}

// Last returns the last output for the given selector and a flag whether it was found.
func (r *Recorder) Last(selector string) (Output, bool) {
	for i := len(r.Outputs) - 1; i >= 0; i-- {
		if r.Outputs[i].Selector == selector {
			return r.Outputs[i], true
		}
	}
	return Output{}, false
}

// Reset discards the recorded outputs.
func (r *Recorder) Reset() {
	r.Outputs = make([]Output, 0)
}
