package vartable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// VariantReader reads VCF data lines into Records.
type VariantReader struct {
	// VariantsSeen counts data lines read, including those outside the
	// requested regions.
	VariantsSeen uint64

	buf     *bufio.Reader
	header  *Header
	regions []Region
	err     error
}

var _ RecordReader = (*VariantReader)(nil)

func (vr *VariantReader) Error() error {
	return vr.err
}

// Read returns the next record within the reader's regions, or nil at the
// end of the file or on error.
func (vr *VariantReader) Read() *Record {
	if vr.err != nil {
		return nil
	}

	for {
		line, err := readLine(vr.buf)
		if err == io.EOF {
			return nil
		} else if err != nil {
			vr.err = pfx.Err(err)
			return nil
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vr.VariantsSeen++

		rec, err := parseRecord(line, len(vr.header.SampleNames))
		if err != nil {
			vr.err = pfx.Err(fmt.Errorf("data line %d: %w", vr.VariantsSeen, err))
			return nil
		}

		if !inRegions(vr.regions, rec) {
			continue
		}

		return rec
	}
}

// parseRecord does not depend on the header beyond the sample count, so
// header and data may disagree on INFO keys without failing here.
func parseRecord(line string, nSamples int) (*Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < len(vcfColumns) {
		return nil, fmt.Errorf("%d columns; expected at least %d", len(cols), len(vcfColumns))
	}

	pos, err := strconv.ParseInt(cols[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("POS %q: %w", cols[1], err)
	}

	rec := &Record{
		Chrom: cols[0],
		Start: pos - 1,
		ID:    cols[2],
		Ref:   cols[3],
		Info:  parseInfo(cols[7]),
	}
	rec.End = rec.Start + int64(len(rec.Ref))

	if cols[4] != MissingValue {
		rec.Alts = strings.Split(cols[4], ",")
	}

	if cols[5] != MissingValue {
		q, err := strconv.ParseFloat(cols[5], 64)
		if err != nil {
			return nil, fmt.Errorf("QUAL %q: %w", cols[5], err)
		}
		rec.Quality = &q
	}

	if cols[6] != MissingValue {
		rec.Filter = cols[6]
	}

	// END overrides the span implied by REF, as for symbolic alleles
	if end, ok := rec.Info["END"]; ok && len(end) == 1 {
		if e, err := strconv.ParseInt(end[0], 10, 64); err == nil {
			rec.End = e
		}
	}

	if nSamples == 0 {
		return rec, nil
	}

	if len(cols) != len(vcfColumns)+1+nSamples {
		return nil, fmt.Errorf("%d sample columns; header declares %d", len(cols)-len(vcfColumns)-1, nSamples)
	}

	formatKeys := strings.Split(cols[len(vcfColumns)], ":")
	rec.Samples = make([]Call, nSamples)
	for i, raw := range cols[len(vcfColumns)+1:] {
		rec.Samples[i] = parseCall(formatKeys, raw)
	}

	return rec, nil
}

func parseInfo(s string) map[string][]string {
	info := make(map[string][]string)
	if s == MissingValue || s == "" {
		return info
	}

	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		if eq := strings.IndexByte(kv, '='); eq >= 0 {
			info[kv[:eq]] = strings.Split(kv[eq+1:], ",")
		} else {
			// Flag
			info[kv] = nil
		}
	}

	return info
}

// parseCall reads one sample column. Trailing fields may be dropped, per
// VCF; dropped fields are absent from Fields.
func parseCall(keys []string, raw string) Call {
	c := Call{
		Genotype: [2]int{-1, -1},
		Fields:   make(map[string][]string, len(keys)),
	}

	values := strings.Split(raw, ":")
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		if k == FieldGT {
			c.Genotype, c.Phased = ParseGenotype(values[i])
		}
		c.Fields[k] = strings.Split(values[i], ",")
	}

	return c
}
