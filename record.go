package vartable

// Record is one locus as delivered by a RecordSource, before decomposition.
// Values are kept as the raw strings found in the file; a "." scalar is a
// missing value. Records are owned by the worker that read them.
type Record struct {
	Chrom   string
	Start   int64 // 0-based, inclusive
	End     int64 // 0-based, exclusive
	ID      string
	Ref     string
	Alts    []string
	Quality *float64
	Filter  string // empty when the FILTER column is "."

	// Info maps each INFO key present on the record to its comma separated
	// values. A present Flag maps to a nil slice.
	Info map[string][]string

	// Samples follows the header's sample order
	Samples []Call
}

// Call is the FORMAT data of one sample at one record.
type Call struct {
	Genotype [2]int
	Phased   bool
	Fields   map[string][]string
}

// NAlts is the number of alternate alleles, and so the number of rows the
// record decomposes into.
func (r *Record) NAlts() int {
	return len(r.Alts)
}
