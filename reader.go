package vartable

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/carbocation/pfx"
)

// Reader is a VCF projected into a table with one row per alternate allele.
// Row order is not the file order: only the set of rows is guaranteed, and
// it is stable for a fixed worker count and chunk size.
type Reader struct {
	cfg    Config
	schema *Schema
	table  *Table

	formatKeys []string
}

// Open resolves the file's schema and decomposes the whole file (or its
// configured regions) in parallel. The returned Reader is read-only.
func Open(ctx context.Context, cfg Config) (*Reader, error) {
	if cfg.Open == nil {
		cfg.Open = OpenRecordSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, pfx.Err(err)
	}

	regions, err := ParseRegions(cfg.Regions)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Resolve the schema once, before any worker starts
	src, err := cfg.Open(ctx, cfg.Path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	schema, err := ResolveSchema(src.Header(), cfg.Keys())
	src.Close()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", cfg.Path, err))
	}

	if cfg.Verbose {
		log.Printf("Parsing %s with %d workers, %d records per chunk\n", cfg.Path, cfg.Workers, cfg.ChunkSize)
	}

	p := &pipeline{
		path:      cfg.Path,
		regions:   regions,
		open:      cfg.Open,
		workers:   cfg.Workers,
		chunkSize: cfg.ChunkSize,
		verbose:   cfg.Verbose,
		dec:       newDecomposer(schema, cfg.IsFalsePositive),
	}
	table, err := p.run(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := &Reader{
		cfg:    cfg,
		schema: schema,
		table:  table,
	}
	for _, f := range schema.Format {
		r.formatKeys = append(r.formatKeys, f.Name)
	}
	sort.Strings(r.formatKeys)

	if cfg.Verbose {
		log.Printf("Parsed %d variant rows from %s\n", table.Len(), cfg.Path)
	}

	return r, nil
}

// Schema is the resolved field schema shared by every row.
func (r *Reader) Schema() *Schema {
	return r.schema
}

// Table gives direct access to the assembled table, e.g. for conversion to
// Arrow. It fails with ErrNoTable on a Reader that was not built by Open.
func (r *Reader) Table() (*Table, error) {
	if r == nil || r.table == nil {
		return nil, ErrNoTable
	}
	return r.table, nil
}

// Len is the number of decomposed variants. Calling it on a Reader without
// a table is a programming error and panics.
func (r *Reader) Len() int {
	t, err := r.Table()
	if err != nil {
		panic(err)
	}
	return t.Len()
}

// Variant rebuilds the structured view of row idx.
func (r *Reader) Variant(idx int) (*Variant, error) {
	t, err := r.Table()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if idx < 0 || idx >= t.Len() {
		return nil, pfx.Err(fmt.Errorf("variant %d is out of range [0, %d)", idx, t.Len()))
	}

	v := materialize(t, r.schema, r.formatKeys, idx)
	v.VCF = r.cfg.Path
	v.BAMs = r.cfg.BAMs
	v.Tag = r.cfg.Tag

	return v, nil
}
