package api

import (
	"fmt"
	"strings"
)

// Message is an inbound message, a selector followed by its arguments.
type Message struct {
	Selector string
	Args     []Atom
}

// NewMessage creates a new message.
func NewMessage(selector string, args ...Atom) Message {
	return Message{
		Selector: selector,
		Args:     args,
	}
}

// ParseMessage parses a whitespace separated line into a message.
// A trailing ';' is ignored.
func ParseMessage(line string) (Message, error) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{}, fmt.Errorf("cannot parse empty message: '%s'", line)
	}
	args := make([]Atom, len(fields)-1)
	for i, f := range fields[1:] {
		args[i] = ParseAtom(f)
	}
	return NewMessage(fields[0], args...), nil
}

// Floats returns the arguments as numbers.
func (m Message) Floats() ([]float64, error) {
	ff := make([]float64, len(m.Args))
	for i, a := range m.Args {
		if a.Type != Number {
			return nil, fmt.Errorf("argument '%s' at %d is not a number", a, i)
		}
		ff[i] = a.Number
	}
	return ff, nil
}

func (m Message) String() string {
	s := make([]string, 0, len(m.Args)+1)
	s = append(s, m.Selector)
	for _, a := range m.Args {
		s = append(s, a.String())
	}
	return strings.Join(s, " ")
}
