package vartable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Standard column names present in every table.
const (
	ColChrom       = "chrom"
	ColStartPos    = "start_pos"
	ColEndPos      = "end_pos"
	ColID          = "id"
	ColRef         = "ref"
	ColAlt         = "alt"
	ColVariantType = "variant_type"
	ColQuality     = "quality"
)

// FieldGT is the FORMAT key handled by the zygosity classifier instead of the
// generic projection.
const FieldGT = "GT"

const defaultFilter = "PASS"

var standardColumns = []columnSpec{
	{ColChrom, ColumnString},
	{ColStartPos, ColumnInteger},
	{ColEndPos, ColumnInteger},
	{ColID, ColumnString},
	{ColRef, ColumnString},
	{ColAlt, ColumnString},
	{ColVariantType, ColumnInteger},
	{ColQuality, ColumnFloat},
}

func filterColumn(key string) string { return "FILTER_" + key }

func infoColumn(key string) string { return "INFO_" + key }

func formatColumn(sample, key string) string { return sample + "_" + key }

func zygosityColumn(sample string) string { return sample + "_zyg" }

func genotypeColumn(sample string) string { return sample + "_GT" }

// fieldColumns lists the columns a field projects to under prefix.
func fieldColumns(prefix string, f FieldSchema) []columnSpec {
	ct := columnTypeOf(f.ValueType)

	switch {
	case f.ValueType == TypeFlag:
		return []columnSpec{{prefix, ColumnBool}}
	case f.Number == "A":
		return []columnSpec{{prefix, ct}}
	case f.Number == "R":
		return []columnSpec{{prefix + "_REF", ct}, {prefix + "_ALT", ct}}
	case f.Number == ".":
		return []columnSpec{{prefix, ColumnString}}
	case f.Count == 1:
		return []columnSpec{{prefix, ct}}
	}

	out := make([]columnSpec, f.Count)
	for i := range out {
		out[i] = columnSpec{prefix + "_" + strconv.Itoa(i), ct}
	}
	return out
}

// newLayout fixes the column set of every table built against s.
func newLayout(s *Schema) []columnSpec {
	layout := append([]columnSpec(nil), standardColumns...)

	for _, k := range s.Filter {
		layout = append(layout, columnSpec{filterColumn(k), ColumnBool})
	}

	for _, f := range s.Info {
		layout = append(layout, fieldColumns(infoColumn(f.Name), f)...)
	}

	for _, f := range s.Format {
		for _, sample := range s.Samples {
			if f.Name == FieldGT {
				layout = append(layout,
					columnSpec{zygosityColumn(sample), ColumnInteger},
					columnSpec{genotypeColumn(sample), ColumnString},
				)
				continue
			}
			layout = append(layout, fieldColumns(formatColumn(sample, f.Name), f)...)
		}
	}

	return layout
}

// decomposer turns records into table rows for one schema. It holds no
// per-record state and may be shared read-only.
type decomposer struct {
	schema             *Schema
	layout             []columnSpec
	knownFalsePositive bool
}

func newDecomposer(s *Schema, knownFalsePositive bool) *decomposer {
	return &decomposer{
		schema:             s,
		layout:             newLayout(s),
		knownFalsePositive: knownFalsePositive,
	}
}

func (d *decomposer) newTable() *Table {
	return newTable(d.layout)
}

// appendRecord adds one row per alternate allele of rec to t, in alt order.
func (d *decomposer) appendRecord(t *Table, rec *Record) error {
	for altIdx := range rec.Alts {
		row, err := d.row(rec, altIdx)
		if err != nil {
			return pfx.Err(fmt.Errorf("%s:%d alt %d: %w", rec.Chrom, rec.Start+1, altIdx+1, err))
		}
		t.appendRow(row)
	}
	return nil
}

func (d *decomposer) row(rec *Record, altIdx int) ([]interface{}, error) {
	row := make([]interface{}, 0, len(d.layout))
	alt := rec.Alts[altIdx]

	var id, quality interface{}
	if rec.ID != "" && rec.ID != MissingValue {
		id = rec.ID
	}
	if rec.Quality != nil {
		quality = *rec.Quality
	}

	row = append(row,
		rec.Chrom,
		rec.Start,
		rec.End,
		id,
		rec.Ref,
		alt,
		int64(DetectVariantType(rec.Ref, alt)),
		quality,
	)

	// FILTER: membership of each selected key
	filter := rec.Filter
	if filter == "" || filter == MissingValue {
		filter = defaultFilter
	}
	filters := make(map[string]struct{})
	for _, f := range strings.Split(filter, ";") {
		filters[f] = struct{}{}
	}
	for _, k := range d.schema.Filter {
		_, ok := filters[k]
		row = append(row, ok)
	}

	// INFO
	for _, f := range d.schema.Info {
		raw, present := rec.Info[f.Name]
		vals, err := projectField(f, raw, present, altIdx, rec.NAlts(), len(d.schema.Samples))
		if err != nil {
			return nil, fmt.Errorf("INFO %s: %w", f.Name, err)
		}
		row = append(row, vals...)
	}

	// FORMAT, with GT routed through the zygosity classifier
	for _, f := range d.schema.Format {
		for si := range d.schema.Samples {
			var call *Call
			if si < len(rec.Samples) {
				call = &rec.Samples[si]
			}

			if f.Name == FieldGT {
				gt := [2]int{-1, -1}
				if call != nil {
					gt = call.Genotype
				}
				split, zyg := ClassifyGenotype(gt, altIdx+1, d.knownFalsePositive)
				row = append(row, int64(zyg), FormatGenotype(split))
				continue
			}

			var raw []string
			var present bool
			if call != nil {
				raw, present = call.Fields[f.Name]
			}
			vals, err := projectField(f, raw, present, altIdx, rec.NAlts(), len(d.schema.Samples))
			if err != nil {
				return nil, fmt.Errorf("FORMAT %s of sample %s: %w", f.Name, d.schema.Samples[si], err)
			}
			row = append(row, vals...)
		}
	}

	return row, nil
}

// projectField selects and coerces the values of one field for the row of
// the altIdx-th alternate allele. An absent field reads as a list of missing
// values of its resolved length, and a raw list too short for the index
// being read yields null, so the row keeps its shape.
func projectField(f FieldSchema, raw []string, present bool, altIdx, altCount, sampleCount int) ([]interface{}, error) {
	if f.ValueType == TypeFlag {
		return []interface{}{present}, nil
	}

	if !present {
		raw = make([]string, f.CountFor(altCount, sampleCount))
		for i := range raw {
			raw[i] = MissingValue
		}
	}

	get := func(i int) (interface{}, error) {
		if i >= len(raw) {
			return nil, nil
		}
		return coerce(f.ValueType, raw[i])
	}

	var idx []int
	switch {
	case f.Number == "A":
		idx = []int{altIdx}
	case f.Number == "R":
		idx = []int{0, altIdx + 1}
	case f.Number == ".":
		return []interface{}{joinValues(raw)}, nil
	default:
		idx = make([]int, f.Count)
		for i := range idx {
			idx[i] = i
		}
	}

	out := make([]interface{}, len(idx))
	for j, i := range idx {
		v, err := get(i)
		if err != nil {
			return nil, err
		}
		out[j] = v
	}
	return out, nil
}

// Decompose splits every record into one row per alternate allele and
// returns them as a table laid out for s.
func Decompose(s *Schema, knownFalsePositive bool, records ...*Record) (*Table, error) {
	d := newDecomposer(s, knownFalsePositive)
	t := d.newTable()
	for _, rec := range records {
		if err := d.appendRecord(t, rec); err != nil {
			return nil, pfx.Err(err)
		}
	}
	return t, nil
}
