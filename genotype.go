package vartable

import (
	"strconv"
	"strings"
)

// ParseGenotype reads a GT value such as "0/1", "1|2" or "./." into a diploid
// pair of allele indices. Missing alleles are -1. Only diploid calls are
// modelled: a haploid call g becomes (g, -1) and any alleles beyond the
// second are ignored.
func ParseGenotype(s string) (gt [2]int, phased bool) {
	gt = [2]int{-1, -1}
	if s == "" {
		return gt, false
	}

	phased = strings.Contains(s, "|")
	alleles := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == '/' })

	for i := 0; i < len(alleles) && i < 2; i++ {
		if alleles[i] == "." {
			continue
		}
		// -- if error, probably an unknown character; leave -1
		if a, err := strconv.Atoi(alleles[i]); err == nil {
			gt[i] = a
		}
	}

	return gt, phased
}

// FormatGenotype renders a pair the way the <sample>_GT column stores it.
func FormatGenotype(gt [2]int) string {
	return strconv.Itoa(gt[0]) + "/" + strconv.Itoa(gt[1])
}
