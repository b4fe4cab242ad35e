package vartable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadRegion = errors.New("malformed region")

// Region is a 1-based, inclusive genomic interval. End == 0 leaves the
// interval open to the end of the chromosome.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

func (g Region) String() string {
	switch {
	case g.Start <= 1 && g.End == 0:
		return g.Chrom
	case g.End == 0:
		return fmt.Sprintf("%s:%d", g.Chrom, g.Start)
	}
	return fmt.Sprintf("%s:%d-%d", g.Chrom, g.Start, g.End)
}

// ParseRegions reads "chr:start-end[,chr:start-end...]". Each region may
// also be a bare chromosome or "chr:start".
func ParseRegions(s string) ([]Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []Region
	for _, part := range strings.Split(s, ",") {
		g, err := parseRegion(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func parseRegion(s string) (Region, error) {
	colon := strings.LastIndexByte(s, ':')
	if colon < 0 {
		if s == "" {
			return Region{}, fmt.Errorf("%w: empty region", ErrBadRegion)
		}
		return Region{Chrom: s, Start: 1}, nil
	}

	g := Region{Chrom: s[:colon]}
	if g.Chrom == "" {
		return Region{}, fmt.Errorf("%w: %q has no chromosome", ErrBadRegion, s)
	}

	bounds := s[colon+1:]
	start, end := bounds, ""
	if dash := strings.IndexByte(bounds, '-'); dash >= 0 {
		start, end = bounds[:dash], bounds[dash+1:]
	}

	var err error
	if g.Start, err = strconv.ParseInt(start, 10, 64); err != nil || g.Start < 1 {
		return Region{}, fmt.Errorf("%w: %q has start %q", ErrBadRegion, s, start)
	}
	if end != "" {
		if g.End, err = strconv.ParseInt(end, 10, 64); err != nil || g.End < g.Start {
			return Region{}, fmt.Errorf("%w: %q has end %q", ErrBadRegion, s, end)
		}
	}

	return g, nil
}

// Overlaps reports whether the 0-based, half-open interval [start, end) on
// chrom intersects g.
func (g Region) Overlaps(chrom string, start, end int64) bool {
	if !SameChromosome(g.Chrom, chrom) {
		return false
	}
	if end <= start {
		// Zero length records still occupy their position
		end = start + 1
	}
	if g.End != 0 && start >= g.End {
		return false
	}
	return end > g.Start-1
}

func inRegions(regions []Region, rec *Record) bool {
	if len(regions) == 0 {
		return true
	}
	for _, g := range regions {
		if g.Overlaps(rec.Chrom, rec.Start, rec.End) {
			return true
		}
	}
	return false
}
