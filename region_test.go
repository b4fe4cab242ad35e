package vartable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegions(t *testing.T) {
	got, err := ParseRegions(" chr1:100-200, 2:5 ,X ")
	require.NoError(t, err)
	assert.Equal(t, []Region{
		{Chrom: "chr1", Start: 100, End: 200},
		{Chrom: "2", Start: 5},
		{Chrom: "X", Start: 1},
	}, got)

	assert.Equal(t, "chr1:100-200", got[0].String())
	assert.Equal(t, "2:5", got[1].String())
	assert.Equal(t, "X", got[2].String())

	got, err = ParseRegions("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseRegionsErrors(t *testing.T) {
	for _, s := range []string{"1:", ":5-6", "1:0-5", "1:a-5", "1:10-5", "1:5-b", "1,,2"} {
		_, err := ParseRegions(s)
		assert.ErrorIs(t, err, ErrBadRegion, s)
	}
}

func TestRegionOverlaps(t *testing.T) {
	g := Region{Chrom: "1", Start: 100, End: 200}

	assert.True(t, g.Overlaps("1", 99, 100))
	assert.True(t, g.Overlaps("chr1", 199, 200))
	assert.True(t, g.Overlaps("1", 50, 150))
	assert.False(t, g.Overlaps("1", 98, 99))
	assert.False(t, g.Overlaps("1", 200, 201))
	assert.False(t, g.Overlaps("2", 150, 151))

	open := Region{Chrom: "1", Start: 100}
	assert.True(t, open.Overlaps("1", 1e9, 1e9+1))

	// Zero length records still occupy their position
	assert.True(t, g.Overlaps("1", 150, 150))
}

func TestChromosome(t *testing.T) {
	cases := map[string]string{
		"chr1":  "1",
		"1":     "1",
		"chrX":  "X",
		"x":     "X",
		"chrM":  "MT",
		"MT":    "MT",
		"chr":   "chr",
		"Chr22": "22",
	}
	for in, want := range cases {
		assert.Equal(t, want, Chromosome(in), in)
	}

	assert.True(t, SameChromosome("chr2", "2"))
	assert.False(t, SameChromosome("chr2", "22"))
}
