package api

import (
	"fmt"
)

// Validator is a validation function that checks the atom for the given type.
type Validator func(Atom) error

// Validate validates the message arguments with the given validators, one per argument.
func (m Message) Validate(args ...Validator) error {
	if len(m.Args) < len(args) {
		return fmt.Errorf("'%s' expects %d arguments but got %d", m.Selector, len(args), len(m.Args))
	}
	for i, arg := range args {
		err := arg(m.Args[i])
		if err != nil {
			return fmt.Errorf("error for argument '%s' at %d: %w", m.Args[i], i, err)
		}
	}
	return nil
}

// NotEmpty is a predefined Validator that checks if the argument is an empty symbol.
func NotEmpty(a Atom) error {
	if a.Type == Symbol && a.Symbol == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// OneOf is a predefined Validator checking that the value is on of the provided arguments.
// it passes the reference to the value to the given interface argument.
func OneOf(v *string, args ...string) Validator {
	return func(a Atom) error {
		s := a.String()
		var isOneOf bool
		for _, arg := range args {
			if arg == s {
				isOneOf = true
			}
		}
		if !isOneOf {
			return fmt.Errorf("must be one of %v", args)
		}
		if v != nil {
			*v = s
		}
		return nil
	}
}

// Int is a predefined Validator checking that the argument is an int.
// it passes the reference to the value to the given interface argument.
func Int(d *int) Validator {
	return func(a Atom) error {
		if !a.IsInt() {
			return fmt.Errorf("must be an integer")
		}
		*d = int(a.Number)
		return nil
	}
}

// Float is a predefined Validator checking that the argument is a number.
// it passes the reference to the value to the given interface argument.
func Float(f *float64) Validator {
	return func(a Atom) error {
		if a.Type != Number {
			return fmt.Errorf("must be a number")
		}
		*f = a.Number
		return nil
	}
}

// Bool is a predefined Validator checking that the argument is 0 or 1.
// it passes the reference to the value to the given interface argument.
func Bool(b *bool) Validator {
	return func(a Atom) error {
		if !a.IsInt() || (a.Number != 0 && a.Number != 1) {
			return fmt.Errorf("must be 0 or 1")
		}
		*b = a.Number == 1
		return nil
	}
}

// Text is a predefined Validator for any non-empty argument.
// it passes the reference to the value to the given interface argument.
func Text(s *string) Validator {
	return func(a Atom) error {
		if err := NotEmpty(a); err != nil {
			return err
		}
		*s = a.String()
		return nil
	}
}
