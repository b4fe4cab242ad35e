package vartable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGenotypeTruthTable(t *testing.T) {
	cases := []struct {
		gt        [2]int
		wantSplit [2]int
		want      Zygosity
	}{
		{[2]int{0, 0}, [2]int{0, 0}, NoVariant},
		{[2]int{0, 1}, [2]int{0, 1}, Heterozygous},
		{[2]int{1, 0}, [2]int{1, 0}, Heterozygous},
		{[2]int{1, 1}, [2]int{1, 1}, Homozygous},
		{[2]int{-1, 0}, [2]int{-1, -1}, None},
		{[2]int{-1, -1}, [2]int{-1, -1}, None},
		{[2]int{2, 1}, [2]int{-1, -1}, None},
		{[2]int{2, 2}, [2]int{-1, -1}, None},
	}

	for _, c := range cases {
		split, zyg := ClassifyGenotype(c.gt, 1, false)
		assert.Equal(t, c.want, zyg, "%v", c.gt)
		assert.Equal(t, c.wantSplit, split, "%v", c.gt)
	}
}

func TestClassifyGenotypeSecondAllele(t *testing.T) {
	split, zyg := ClassifyGenotype([2]int{0, 2}, 2, false)
	assert.Equal(t, Heterozygous, zyg)
	assert.Equal(t, [2]int{0, 1}, split)

	split, zyg = ClassifyGenotype([2]int{2, 2}, 2, false)
	assert.Equal(t, Homozygous, zyg)
	assert.Equal(t, [2]int{1, 1}, split)

	// 1/2 is reported against neither split allele
	_, zyg = ClassifyGenotype([2]int{1, 2}, 2, false)
	assert.Equal(t, None, zyg)
}

func TestClassifyGenotypeKnownFalsePositive(t *testing.T) {
	for _, gt := range [][2]int{{0, 0}, {0, 1}, {1, 1}, {-1, -1}, {2, 1}} {
		_, zyg := ClassifyGenotype(gt, 1, true)
		assert.Equal(t, NoVariant, zyg, "%v", gt)
	}
}

func TestZygosityValues(t *testing.T) {
	assert.Equal(t, -1, int(None))
	assert.Equal(t, 0, int(NoVariant))
	assert.Equal(t, 1, int(Homozygous))
	assert.Equal(t, 2, int(Heterozygous))

	assert.True(t, IsValid(-1))
	assert.True(t, IsValid(2))
	assert.False(t, IsValid(3))
	assert.Equal(t, "HETEROZYGOUS", Heterozygous.String())
}

func TestParseGenotype(t *testing.T) {
	cases := []struct {
		in     string
		gt     [2]int
		phased bool
	}{
		{"0/1", [2]int{0, 1}, false},
		{"1|2", [2]int{1, 2}, true},
		{"./.", [2]int{-1, -1}, false},
		{".|1", [2]int{-1, 1}, true},
		{"1", [2]int{1, -1}, false},
		{".", [2]int{-1, -1}, false},
		{"", [2]int{-1, -1}, false},
		{"0/1/2", [2]int{0, 1}, false},
	}

	for _, c := range cases {
		gt, phased := ParseGenotype(c.in)
		assert.Equal(t, c.gt, gt, c.in)
		assert.Equal(t, c.phased, phased, c.in)
	}

	assert.Equal(t, "-1/-1", FormatGenotype([2]int{-1, -1}))
	assert.Equal(t, "0/1", FormatGenotype([2]int{0, 1}))
}

func TestDetectVariantType(t *testing.T) {
	assert.Equal(t, SNP, DetectVariantType("A", "T"))
	assert.Equal(t, SNP, DetectVariantType("AC", "GT"))
	assert.Equal(t, Insertion, DetectVariantType("A", "TG"))
	assert.Equal(t, Deletion, DetectVariantType("AC", "A"))
}
