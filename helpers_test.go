package vartable

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

const testVCF = `##fileformat=VCFv4.2
##FILTER=<ID=PASS,Description="All filters passed">
##FILTER=<ID=LowQual,Description="Low quality">
##INFO=<ID=DP,Number=1,Type=Integer,Description="Total Depth">
##INFO=<ID=DP4,Number=A,Type=Integer,Description="Depth per alternate allele">
##INFO=<ID=AD,Number=R,Type=Integer,Description="Allelic depths">
##INFO=<ID=DB,Number=0,Type=Flag,Description="dbSNP membership">
##INFO=<ID=ANN,Number=.,Type=String,Description="Annotations, comma separated">
##INFO=<ID=MQ2,Number=2,Type=Float,Description="Two mapping qualities">
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
##FORMAT=<ID=DP,Number=1,Type=Integer,Description="Read depth">
##FORMAT=<ID=AF,Number=A,Type=Float,Description="Allele fraction">
##contig=<ID=1,length=249250621>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	sample1	sample2
1	100	rs1	A	T,TG	50	PASS	DP=10;DP4=5,6;AD=1,5,6;DB;ANN=x,y;MQ2=1.5,2.5	GT:DP:AF	0/1:7:0.4,0.1	1/2:8:0.5,0.5
1	200	.	AC	A	.	LowQual	DP=3	GT:DP	1/1:3	./.:.
2	300	rs3	G	C	30	.	.	GT	0/0	0|1
`

// testVCFRows is the number of rows testVCF decomposes into.
const testVCFRows = 4

func writeTestVCF(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "calls.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0o644))
	return path
}

func allKeys() KeySelection {
	return KeySelection{
		Info:   []string{Wildcard},
		Filter: []string{Wildcard},
		Format: []string{Wildcard},
	}
}

func testConfig(path string) Config {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.InfoKeys = []string{Wildcard}
	cfg.FilterKeys = []string{Wildcard}
	cfg.Workers = 1
	return cfg
}

// readAll drains a fresh scan of v.
func readAll(t *testing.T, v *VCF, regions []Region) []*Record {
	t.Helper()

	vr, err := v.NewRecordReader(regions)
	require.NoError(t, err)

	var out []*Record
	for rec := vr.Read(); rec != nil; rec = vr.Read() {
		out = append(out, rec)
	}
	require.NoError(t, vr.Error())
	return out
}

// memSource is an in-memory RecordSource. Its records are shared, read-only,
// by every reader.
type memSource struct {
	header  *Header
	records []*Record
}

func (m *memSource) Header() *Header { return m.header }

func (m *memSource) Close() error { return nil }

func (m *memSource) NewRecordReader(regions []Region) (RecordReader, error) {
	return &memReader{records: m.records, regions: regions}, nil
}

func (m *memSource) opener() OpenFunc {
	return func(ctx context.Context, path string) (RecordSource, error) {
		return m, nil
	}
}

type memReader struct {
	records []*Record
	regions []Region
	next    int
}

func (r *memReader) Read() *Record {
	for r.next < len(r.records) {
		rec := r.records[r.next]
		r.next++
		if inRegions(r.regions, rec) {
			return rec
		}
	}
	return nil
}

func (r *memReader) Error() error { return nil }

// simpleHeader declares one Number=A Integer INFO field, DP4, and GT.
func simpleHeader(samples ...string) *Header {
	return &Header{
		Infos: []HeaderField{
			{Category: CategoryInfo, ID: "DP4", Number: "A", Type: "Integer"},
		},
		Formats: []HeaderField{
			{Category: CategoryFormat, ID: "GT", Number: "1", Type: "String"},
		},
		SampleNames: samples,
	}
}

// numberedRecords returns n biallelic records at increasing positions on
// chromosome 1, each with DP4 equal to its index.
func numberedRecords(n int) []*Record {
	out := make([]*Record, n)
	for i := range out {
		out[i] = &Record{
			Chrom:   "1",
			Start:   int64(i * 10),
			End:     int64(i*10 + 1),
			Ref:     "A",
			Alts:    []string{"T"},
			Info:    map[string][]string{"DP4": {strconv.Itoa(i)}},
			Samples: []Call{{Genotype: [2]int{0, 1}}},
		}
	}
	return out
}
