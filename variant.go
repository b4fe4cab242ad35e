package vartable

// Variant is one decomposed row rebuilt into a structured view: a single
// alternate allele at one locus, with its INFO values and per-sample data.
type Variant struct {
	Chrom   string
	Pos     int64 // 0-based start
	ID      string
	Ref     string
	Allele  string
	Quality *float64

	// Filter lists the selected FILTER keys set on the row. A nil Filter
	// means no filters were recorded.
	Filter []string

	// Info holds single valued fields directly and multi valued fields as
	// an ordered []interface{}.
	Info map[string]interface{}

	// Format lists the FORMAT keys, sorted, in the order each Samples entry
	// is laid out.
	Format []string

	Type     VariantType
	Samples  [][]interface{}
	Zygosity []Zygosity

	VCF  string
	BAMs []string
	Tag  string
}

// materialize reads row idx of t back through the layout rules of s.
func materialize(t *Table, s *Schema, formatKeys []string, idx int) *Variant {
	v := &Variant{
		Chrom:  stringCell(t.Value(idx, ColChrom)),
		Pos:    intCell(t.Value(idx, ColStartPos)),
		ID:     stringCell(t.Value(idx, ColID)),
		Ref:    stringCell(t.Value(idx, ColRef)),
		Allele: stringCell(t.Value(idx, ColAlt)),
		Type:   VariantType(intCell(t.Value(idx, ColVariantType))),
		Format: formatKeys,
		Info:   make(map[string]interface{}, len(s.Info)),
	}
	if q, ok := t.Value(idx, ColQuality).(float64); ok {
		v.Quality = &q
	}

	for _, k := range s.Filter {
		if set, _ := t.Value(idx, filterColumn(k)).(bool); set {
			v.Filter = append(v.Filter, k)
		}
	}

	for _, f := range s.Info {
		cols := fieldColumns(infoColumn(f.Name), f)
		switch len(cols) {
		case 0:
		case 1:
			v.Info[f.Name] = t.Value(idx, cols[0].Name)
		default:
			vals := make([]interface{}, len(cols))
			for i, c := range cols {
				vals[i] = t.Value(idx, c.Name)
			}
			v.Info[f.Name] = vals
		}
	}

	fields := make(map[string]FieldSchema, len(s.Format))
	for _, f := range s.Format {
		fields[f.Name] = f
	}
	hasGT := s.hasFormat(FieldGT)

	for _, sample := range s.Samples {
		var call []interface{}
		for _, k := range formatKeys {
			if k == FieldGT {
				call = append(call, t.Value(idx, genotypeColumn(sample)))
				continue
			}
			for _, c := range fieldColumns(formatColumn(sample, k), fields[k]) {
				call = append(call, t.Value(idx, c.Name))
			}
		}
		v.Samples = append(v.Samples, call)

		zyg := None
		if hasGT {
			zyg = Zygosity(intCell(t.Value(idx, zygosityColumn(sample))))
		}
		v.Zygosity = append(v.Zygosity, zyg)
	}

	return v
}

func stringCell(v interface{}) string {
	s, _ := v.(string)
	return s
}

func intCell(v interface{}) int64 {
	i, _ := v.(int64)
	return i
}
