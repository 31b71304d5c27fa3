package tilemap

import (
	"fmt"
	"strconv"
)

// Kind is the declared type of a property. Unknown Tiled types (color, file,
// object, class) are kept verbatim and match no accessor.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
)

// Property is one typed key/value pair. Raw holds the value as written in the file.
type Property struct {
	Name string
	Kind Kind
	Raw  string
}

func (p Property) check(want Kind) error {
	if p.Kind != want {
		return &PropertyError{Name: p.Name, Want: want, Got: p.Kind}
	}
	if p.Raw == "" {
		return &PropertyError{Name: p.Name, Want: want, Got: p.Kind, Err: fmt.Errorf("empty value: %w", ErrTypeMismatch)}
	}
	return nil
}

// AsInt returns the value of an int property.
func (p Property) AsInt() (int, error) {
	if err := p.check(KindInt); err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(p.Raw)
	if err != nil {
		return 0, &PropertyError{Name: p.Name, Want: KindInt, Got: p.Kind, Err: err}
	}
	return v, nil
}

// AsFloat returns the value of a float property.
func (p Property) AsFloat() (float64, error) {
	if err := p.check(KindFloat); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(p.Raw, 64)
	if err != nil {
		return 0, &PropertyError{Name: p.Name, Want: KindFloat, Got: p.Kind, Err: err}
	}
	return v, nil
}

// AsString returns the value of a string property.
func (p Property) AsString() (string, error) {
	if err := p.check(KindString); err != nil {
		return "", err
	}
	return p.Raw, nil
}

// AsBool returns the value of a bool property.
func (p Property) AsBool() (bool, error) {
	if err := p.check(KindBool); err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(p.Raw)
	if err != nil {
		return false, &PropertyError{Name: p.Name, Want: KindBool, Got: p.Kind, Err: err}
	}
	return v, nil
}

// PropertyStore is an ordered bag of properties. Names need not be unique.
type PropertyStore struct {
	props []Property
}

// Add appends a property without checking for duplicates.
func (s *PropertyStore) Add(name string, kind Kind, raw string) {
	s.props = append(s.props, Property{Name: name, Kind: kind, Raw: raw})
}

// Get returns the first property called name.
func (s *PropertyStore) Get(name string) (Property, bool) {
	for _, p := range s.props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// GetAll returns every property called name, in insertion order.
func (s *PropertyStore) GetAll(name string) []Property {
	var out []Property
	for _, p := range s.props {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out
}

// All returns every property in insertion order.
func (s *PropertyStore) All() []Property {
	return s.props
}

func (s *PropertyStore) Len() int {
	return len(s.props)
}

func (s *PropertyStore) lookup(name string) (Property, error) {
	p, ok := s.Get(name)
	if !ok {
		return Property{}, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
	}
	return p, nil
}

// GetInt is shorthand for Get(name) followed by AsInt.
func (s *PropertyStore) GetInt(name string) (int, error) {
	p, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return p.AsInt()
}

func (s *PropertyStore) GetFloat(name string) (float64, error) {
	p, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return p.AsFloat()
}

func (s *PropertyStore) GetString(name string) (string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	return p.AsString()
}

func (s *PropertyStore) GetBool(name string) (bool, error) {
	p, err := s.lookup(name)
	if err != nil {
		return false, err
	}
	return p.AsBool()
}
