package vartable

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveArity(t *testing.T) {
	cases := []struct {
		number      string
		altCount    int
		sampleCount int
		want        int
	}{
		{"A", 1, 3, 1},
		{"A", 3, 3, 3},
		{"R", 1, 3, 2},
		{"R", 3, 3, 4},
		{"G", 2, 5, 5},
		{"0", 2, 5, 0},
		{"1", 2, 5, 1},
		{"4", 2, 5, 4},
		{".", 2, 5, 1},
	}

	for _, c := range cases {
		got, err := ResolveArity(c.number, c.altCount, c.sampleCount)
		require.NoError(t, err, c.number)
		assert.Equal(t, c.want, got, "Number=%s alts=%d samples=%d", c.number, c.altCount, c.sampleCount)
	}
}

func TestResolveArityUnknown(t *testing.T) {
	for _, number := range []string{"X", "", "-1", "1.5"} {
		_, err := ResolveArity(number, 1, 1)
		assert.ErrorIs(t, err, ErrUnknownNumber, number)
	}
}

func TestParseValueType(t *testing.T) {
	for _, vt := range []ValueType{TypeString, TypeInteger, TypeFloat, TypeFlag} {
		got, err := ParseValueType(vt.String())
		require.NoError(t, err)
		assert.Equal(t, vt, got)
	}

	_, err := ParseValueType("Character")
	assert.ErrorIs(t, err, ErrUnknownValueType)
}

func TestCountForRecomputesAlleleScopedFields(t *testing.T) {
	a := FieldSchema{Number: "A", Count: 1}
	r := FieldSchema{Number: "R", Count: 2}
	fixed := FieldSchema{Number: "3", Count: 3}

	assert.Equal(t, 3, a.CountFor(3, 2))
	assert.Equal(t, 4, r.CountFor(3, 2))
	assert.Equal(t, 3, fixed.CountFor(5, 2))
}

func TestResolveSchemaWildcard(t *testing.T) {
	v, err := OpenVCF(context.Background(), writeTestVCF(t))
	require.NoError(t, err)
	defer v.Close()

	s, err := ResolveSchema(v.Header(), allKeys())
	require.NoError(t, err)

	assert.Equal(t, []string{"sample1", "sample2"}, s.Samples)
	assert.Equal(t, []string{"PASS", "LowQual"}, s.Filter)

	var info []string
	for _, f := range s.Info {
		info = append(info, f.Name)
	}
	assert.Equal(t, []string{"DP", "DP4", "AD", "DB", "ANN", "MQ2"}, info)

	counts := map[string]int{}
	for _, f := range s.Info {
		counts[f.Name] = f.Count
	}
	assert.Equal(t, map[string]int{"DP": 1, "DP4": 1, "AD": 2, "DB": 0, "ANN": 1, "MQ2": 2}, counts)

	require.Len(t, s.Format, 3)
	assert.Equal(t, "GT", s.Format[0].Name)
	assert.Equal(t, TypeFloat, s.Format[2].ValueType)
}

func TestResolveSchemaExplicitKeys(t *testing.T) {
	h := simpleHeader("s1")

	s, err := ResolveSchema(h, KeySelection{Info: []string{"DP4"}, Filter: []string{"PASS", "q10"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"PASS", "q10"}, s.Filter)
	require.Len(t, s.Info, 1)
	assert.Equal(t, "A", s.Info[0].Number)
	assert.Empty(t, s.Format)
}

func TestResolveSchemaRejectsUndeclaredField(t *testing.T) {
	_, err := ResolveSchema(simpleHeader("s1"), KeySelection{Info: []string{"NOPE"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "NOPE"), err.Error())
}

func TestResolveSchemaRejectsUnknownType(t *testing.T) {
	h := simpleHeader("s1")
	h.Infos = append(h.Infos, HeaderField{Category: CategoryInfo, ID: "CH", Number: "1", Type: "Character"})

	_, err := ResolveSchema(h, KeySelection{Info: []string{Wildcard}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrUnknownValueType.Error())
}
