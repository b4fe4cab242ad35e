package vartable

import "strings"

// Chromosome takes a contig name as it may appear in a VCF or a region
// string and returns its standard form without the "chr" prefix, so that
// "chr1" and "1" or "chrM" and "MT" compare equal.
func Chromosome(chr string) string {
	c := chr
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}

	switch strings.ToUpper(c) {
	case "M", "MT":
		return "MT"
	case "X":
		return "X"
	case "Y":
		return "Y"
	}

	return c
}

// SameChromosome compares contig names in standard form.
func SameChromosome(a, b string) bool {
	return a == b || Chromosome(a) == Chromosome(b)
}
