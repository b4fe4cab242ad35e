package vartable

import (
	"context"
	"fmt"
	"log"

	"github.com/carbocation/pfx"
	"golang.org/x/sync/errgroup"
)

// ownsRecord reports whether the record at stream index i belongs to worker
// w. Records are dealt to workers round robin in blocks of chunkSize.
func ownsRecord(i, chunkSize, workers, w int) bool {
	return (i/chunkSize)%workers == w
}

// pipeline decomposes a variant file across independent workers. Nothing in
// it is written once workers start.
type pipeline struct {
	path      string
	regions   []Region
	open      OpenFunc
	workers   int
	chunkSize int
	verbose   bool
	dec       *decomposer
}

// run starts one goroutine per worker and concatenates their tables in
// worker order. The first worker error fails the run.
func (p *pipeline) run(ctx context.Context) (*Table, error) {
	tables := make([]*Table, p.workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < p.workers; w++ {
		w := w
		g.Go(func() error {
			t, err := p.work(gctx, w)
			if err != nil {
				return pfx.Err(fmt.Errorf("worker %d: %w", w, err))
			}
			// Each worker writes only its own slot
			tables[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Concat(tables...)
}

// work scans the whole stream through a private source handle and
// decomposes the records that belong to worker w.
func (p *pipeline) work(ctx context.Context, w int) (*Table, error) {
	src, err := p.open(ctx, p.path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer src.Close()

	vr, err := src.NewRecordReader(p.regions)
	if err != nil {
		return nil, pfx.Err(err)
	}

	t := p.dec.newTable()
	buf := make([]*Record, 0, p.chunkSize)
	chunks := 0

	flush := func() error {
		for _, rec := range buf {
			if err := p.dec.appendRecord(t, rec); err != nil {
				return err
			}
		}
		buf = buf[:0]
		chunks++

		if p.verbose {
			log.Printf("Worker %d: decomposed chunk %d (%d rows so far)\n", w, chunks, t.Len())
		}

		// Stop early if another worker has failed
		return ctx.Err()
	}

	for i := 0; ; i++ {
		rec := vr.Read()
		if rec == nil {
			break
		}
		if !ownsRecord(i, p.chunkSize, p.workers, w) {
			continue
		}

		buf = append(buf, rec)
		if len(buf) == p.chunkSize {
			if err := flush(); err != nil {
				return nil, pfx.Err(err)
			}
		}
	}
	if err := vr.Error(); err != nil {
		return nil, pfx.Err(err)
	}

	if len(buf) > 0 {
		if err := flush(); err != nil {
			return nil, pfx.Err(err)
		}
	}

	return t, nil
}
