package vartable

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/carbocation/pfx"
)

// Wildcard selects every header-declared field of a category.
const Wildcard = "*"

var (
	ErrUnknownValueType = errors.New("unknown VCF header type")
	ErrUnknownNumber    = errors.New("unknown VCF header number")
	ErrUnknownField     = errors.New("field is not declared in the VCF header")
)

// ValueType is the declared Type= of an INFO or FORMAT field.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInteger
	TypeFloat
	TypeFlag
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeFlag:
		return "Flag"

	default:
		return "Illegal selection"
	}
}

// ParseValueType maps a header Type= string onto a ValueType. Character is
// not supported.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "String":
		return TypeString, nil
	case "Integer":
		return TypeInteger, nil
	case "Float":
		return TypeFloat, nil
	case "Flag":
		return TypeFlag, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownValueType, s)
}

// ResolveArity returns how many scalar values a field with header Number code
// number carries for a record with altCount alternate alleles in a file with
// sampleCount samples. Variable length fields (".") are carried as a single
// comma-joined value.
func ResolveArity(number string, altCount, sampleCount int) (int, error) {
	switch number {
	case "A":
		return altCount, nil
	case "R":
		return altCount + 1, nil
	case "G":
		return sampleCount, nil
	case ".":
		return 1, nil
	}

	if n, err := strconv.Atoi(number); err == nil && n >= 0 {
		return n, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownNumber, number)
}

// FieldSchema is one resolved INFO or FORMAT field. Count is resolved against
// a single alternate allele; use CountFor when the alt count matters.
type FieldSchema struct {
	Name      string
	Category  Category
	Number    string
	ValueType ValueType
	Count     int
}

// CountFor recomputes the arity for a record with altCount alternate alleles.
// Only A and R depend on it.
func (f FieldSchema) CountFor(altCount, sampleCount int) int {
	switch f.Number {
	case "A", "R":
		n, _ := ResolveArity(f.Number, altCount, sampleCount)
		return n
	}
	return f.Count
}

// KeySelection names the INFO, FILTER and FORMAT fields to project. A list
// containing Wildcard selects every field of that category.
type KeySelection struct {
	Info   []string
	Filter []string
	Format []string
}

// Schema is the immutable, file-level result of schema resolution. It is
// built once before any worker starts and only read afterwards.
type Schema struct {
	Info    []FieldSchema
	Filter  []string
	Format  []FieldSchema
	Samples []string
}

// ResolveSchema expands wildcard selections against h and resolves the value
// type and arity of every selected INFO and FORMAT field.
func ResolveSchema(h *Header, keys KeySelection) (*Schema, error) {
	s := &Schema{
		Samples: append([]string(nil), h.SampleNames...),
	}

	// FILTER keys are membership flags and need no declaration
	s.Filter = append(s.Filter, expandKeys(h, CategoryFilter, keys.Filter)...)

	var err error
	if s.Info, err = resolveFields(h, CategoryInfo, keys.Info); err != nil {
		return nil, pfx.Err(err)
	}
	if s.Format, err = resolveFields(h, CategoryFormat, keys.Format); err != nil {
		return nil, pfx.Err(err)
	}

	return s, nil
}

func resolveFields(h *Header, c Category, selected []string) ([]FieldSchema, error) {
	var out []FieldSchema
	nSamples := len(h.SampleNames)

	for _, k := range expandKeys(h, c, selected) {
		hf, ok := h.Lookup(c, k)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrUnknownField, c, k)
		}

		vt, err := ParseValueType(hf.Type)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", c, k, err)
		}

		count, err := ResolveArity(hf.Number, 1, nSamples)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", c, k, err)
		}

		out = append(out, FieldSchema{
			Name:      k,
			Category:  c,
			Number:    hf.Number,
			ValueType: vt,
			Count:     count,
		})
	}

	return out, nil
}

func expandKeys(h *Header, c Category, selected []string) []string {
	for _, k := range selected {
		if k == Wildcard {
			all := make([]string, 0, len(h.Fields(c)))
			for _, f := range h.Fields(c) {
				all = append(all, f.ID)
			}
			return all
		}
	}
	return selected
}

func (s *Schema) hasFormat(name string) bool {
	for _, f := range s.Format {
		if f.Name == name {
			return true
		}
	}
	return false
}
