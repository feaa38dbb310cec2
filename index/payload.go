package index

import "slices"

// Value is the content of one facet in a Payload: either a single scalar
// value or an ordered list of values.
type Value struct {
	list   bool
	values []string
}

// Scalar returns a single-valued Value.
func Scalar(v string) Value {
	return Value{values: []string{v}}
}

// List returns a multi-valued Value holding vs in order.
func List(vs ...string) Value {
	return Value{list: true, values: slices.Clone(vs)}
}

// IsList reports whether v holds a list rather than a scalar.
func (v Value) IsList() bool {
	return v.list
}

// Values returns the values in insertion order. A scalar yields one element.
func (v Value) Values() []string {
	return slices.Clone(v.values)
}

// First returns the scalar value, or the first list element.
func (v Value) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// appendValue promotes a scalar to a list and appends value.
func (v Value) appendValue(value string) Value {
	values := make([]string, len(v.values), len(v.values)+1)
	copy(values, v.values)
	return Value{list: true, values: append(values, value)}
}

// Payload maps facet fields to the values a tagging run writes into
// matching documents. Facets keep the order they were first added in and
// values keep insertion order; duplicates are kept.
//
// The zero Payload is empty and ready to use. A Payload is not safe for
// concurrent mutation.
type Payload struct {
	facets []string
	values map[string]Value
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{}
}

// Add merges value into facet. The first value of a facet is stored as a
// scalar; a second value promotes it to a list; later values are appended.
func (p *Payload) Add(facet, value string) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	current, ok := p.values[facet]
	if !ok {
		p.facets = append(p.facets, facet)
		p.values[facet] = Scalar(value)
		return
	}
	p.values[facet] = current.appendValue(value)
}

// Get returns the value stored for facet.
func (p *Payload) Get(facet string) (Value, bool) {
	v, ok := p.values[facet]
	return v, ok
}

// Facets returns the facet fields in the order they were first added.
func (p *Payload) Facets() []string {
	return slices.Clone(p.facets)
}

// Len returns the number of facets.
func (p *Payload) Len() int {
	return len(p.facets)
}

// Clone returns an independent copy of p.
func (p *Payload) Clone() *Payload {
	if p == nil {
		return NewPayload()
	}
	c := &Payload{facets: slices.Clone(p.facets)}
	if p.values != nil {
		c.values = make(map[string]Value, len(p.values))
		for facet, v := range p.values {
			c.values[facet] = Value{list: v.list, values: slices.Clone(v.values)}
		}
	}
	return c
}
