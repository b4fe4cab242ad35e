package vartable

// VariantType classifies a single ref/alt pair by length
type VariantType int

const (
	SNP VariantType = iota
	Insertion
	Deletion
)

func (v VariantType) String() string {
	switch v {
	case SNP:
		return "SNP"
	case Insertion:
		return "INSERTION"
	case Deletion:
		return "DELETION"

	default:
		return "Illegal selection"
	}
}

// DetectVariantType compares allele lengths only; equal-length MNPs are
// reported as SNP.
func DetectVariantType(ref, alt string) VariantType {
	switch {
	case len(ref) == len(alt):
		return SNP
	case len(ref) < len(alt):
		return Insertion
	default:
		return Deletion
	}
}
