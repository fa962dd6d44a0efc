package cmd

import (
	"slices"

	"github.com/mwantia/cmdargs/data"
)

// Result maps every declared argument name to its resolved value.
// It is owned by the caller; the typed helpers remove the entry they return.
type Result map[string]data.Value

// Take removes and returns the value stored under name.
func (r Result) Take(name string) (data.Value, bool) {
	v, ok := r[name]
	delete(r, name)
	return v, ok
}

// Names returns the argument names in sorted order.
func (r Result) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r Result) Text(name string) (string, error) {
	v, _ := r.Take(name)
	return v.AsText()
}

func (r Result) Unsigned(name string) (uint64, error) {
	v, _ := r.Take(name)
	return v.AsUnsigned()
}

func (r Result) Signed(name string) (int64, error) {
	v, _ := r.Take(name)
	return v.AsSigned()
}

func (r Result) Float(name string) (float64, error) {
	v, _ := r.Take(name)
	return v.AsFloat()
}

func (r Result) TextSequence(name string) ([]string, error) {
	v, _ := r.Take(name)
	return v.AsTextSequence()
}

func (r Result) UnsignedSequence(name string) ([]uint64, error) {
	v, _ := r.Take(name)
	return v.AsUnsignedSequence()
}

func (r Result) SignedSequence(name string) ([]int64, error) {
	v, _ := r.Take(name)
	return v.AsSignedSequence()
}

func (r Result) FloatSequence(name string) ([]float64, error) {
	v, _ := r.Take(name)
	return v.AsFloatSequence()
}
