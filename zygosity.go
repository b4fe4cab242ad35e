package vartable

// Zygosity of one sample relative to the alternate allele of a decomposed row
type Zygosity int

const (
	None Zygosity = iota - 1
	NoVariant
	Homozygous
	Heterozygous
)

func (z Zygosity) String() string {
	switch z {
	case None:
		return "NONE"
	case NoVariant:
		return "NO_VARIANT"
	case Homozygous:
		return "HOMOZYGOUS"
	case Heterozygous:
		return "HETEROZYGOUS"

	default:
		return "Illegal selection"
	}
}

// IsValid reports whether value is one of the declared zygosities.
func IsValid(value int) bool {
	return value >= int(None) && value <= int(Heterozygous)
}

// ClassifyGenotype classifies a diploid call against the altID-th (1-based)
// alternate allele. Each allele index is first rewritten relative to altID:
// altID becomes 1, the reference stays 0 and anything else (another
// alternate or a no-call) becomes -1. If either side becomes -1, both do.
// The rewritten pair is returned alongside the zygosity.
//
// A 1/2 call therefore reports NONE on both of its split rows.
func ClassifyGenotype(gt [2]int, altID int, knownFalsePositive bool) ([2]int, Zygosity) {
	split := [2]int{splitAllele(gt[0], altID), splitAllele(gt[1], altID)}
	if split[0] == -1 || split[1] == -1 {
		split = [2]int{-1, -1}
	}

	// Known false positive call sets never carry a variant
	if knownFalsePositive {
		return split, NoVariant
	}

	switch {
	case split[0] == -1:
		return split, None
	case split[0] == split[1]:
		if split[0] == 0 {
			return split, NoVariant
		}
		return split, Homozygous
	default:
		return split, Heterozygous
	}
}

func splitAllele(allele, altID int) int {
	if allele == altID {
		return 1
	} else if allele != 0 {
		return -1
	}
	return 0
}
