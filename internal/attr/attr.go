// Package attr keeps the named attributes of an object with their typed accessors.
package attr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/model"
)

// ErrUnknownAttribute is returned for attributes not in the registry.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Type is the value type of an attribute.
type Type int

const (
	Int Type = iota
	Float
	Bool
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Attribute is a named value of the object with its getter and setter.
// The setter is expected to leave the value untouched if it returns an error.
type Attribute struct {
	Name string
	Type Type
	Doc  string
	get  func() api.Atom
	set  func(api.Atom) error
}

// IntAttribute creates an int attribute.
func IntAttribute(name, doc string, get func() int, set func(int) error) Attribute {
	return Attribute{
		Name: name,
		Type: Int,
		Doc:  doc,
		get: func() api.Atom {
			return api.IntAtom(get())
		},
		set: func(a api.Atom) error {
			var i int
			if err := api.Int(&i)(a); err != nil {
				return fmt.Errorf("%s: %s: %w", name, err.Error(), model.ErrInvalidValue)
			}
			return set(i)
		},
	}
}

// FloatAttribute creates a float attribute.
func FloatAttribute(name, doc string, get func() float64, set func(float64) error) Attribute {
	return Attribute{
		Name: name,
		Type: Float,
		Doc:  doc,
		get: func() api.Atom {
			return api.FloatAtom(get())
		},
		set: func(a api.Atom) error {
			var f float64
			if err := api.Float(&f)(a); err != nil {
				return fmt.Errorf("%s: %s: %w", name, err.Error(), model.ErrInvalidValue)
			}
			return set(f)
		},
	}
}

// BoolAttribute creates a bool attribute, exchanged as 0 or 1.
func BoolAttribute(name, doc string, get func() bool, set func(bool) error) Attribute {
	return Attribute{
		Name: name,
		Type: Bool,
		Doc:  doc,
		get: func() api.Atom {
			return api.BoolAtom(get())
		},
		set: func(a api.Atom) error {
			var b bool
			if err := api.Bool(&b)(a); err != nil {
				return fmt.Errorf("%s: %s: %w", name, err.Error(), model.ErrInvalidValue)
			}
			return set(b)
		},
	}
}

// Registry holds the attributes of an object in registration order.
type Registry struct {
	attributes map[string]Attribute
	order      []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		attributes: make(map[string]Attribute),
		order:      make([]string, 0),
	}
}

// Add adds the attributes to the registry.
// A later attribute replaces an earlier one with the same name.
func (r *Registry) Add(attributes ...Attribute) *Registry {
	for _, a := range attributes {
		if _, ok := r.attributes[a.Name]; !ok {
			r.order = append(r.order, a.Name)
		}
		r.attributes[a.Name] = a
	}
	return r
}

// Has returns true if the attribute exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.attributes[name]
	return ok
}

// Names returns the attribute names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Attribute returns the attribute for the given name.
func (r *Registry) Attribute(name string) (Attribute, error) {
	a, ok := r.attributes[name]
	if !ok {
		return Attribute{}, fmt.Errorf("'%s': %w", name, ErrUnknownAttribute)
	}
	return a, nil
}

// Get returns the current value of the attribute.
func (r *Registry) Get(name string) (api.Atom, error) {
	a, err := r.Attribute(name)
	if err != nil {
		return api.Atom{}, err
	}
	return a.get(), nil
}

// Set sets the value of the attribute.
func (r *Registry) Set(name string, value api.Atom) error {
	a, err := r.Attribute(name)
	if err != nil {
		return err
	}
	return a.set(value)
}

// Apply sets all the given values, as decoded from a configuration file.
// Attributes are applied in name order and the first failure stops the process.
func (r *Registry) Apply(values map[string]interface{}) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		atom, err := toAtom(values[name])
		if err != nil {
			return fmt.Errorf("could not apply '%s': %w", name, err)
		}
		if err := r.Set(name, atom); err != nil {
			return fmt.Errorf("could not apply '%s': %w", name, err)
		}
	}
	return nil
}

func toAtom(v interface{}) (api.Atom, error) {
	switch value := v.(type) {
	case int:
		return api.IntAtom(value), nil
	case int64:
		return api.IntAtom(int(value)), nil
	case float64:
		return api.FloatAtom(value), nil
	case bool:
		return api.BoolAtom(value), nil
	case string:
		return api.ParseAtom(value), nil
	default:
		return api.Atom{}, fmt.Errorf("unsupported value type %T: %w", v, model.ErrInvalidValue)
	}
}
