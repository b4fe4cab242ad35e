package vartable

import "context"

// RecordSource is a parsed variant file. Each worker opens its own source,
// so implementations need not be safe for concurrent use.
type RecordSource interface {
	Header() *Header

	// NewRecordReader starts a scan from the first record. Records outside
	// regions are skipped; no regions means the whole file.
	NewRecordReader(regions []Region) (RecordReader, error)

	Close() error
}

// RecordReader iterates records sequentially. Read returns nil once the
// stream is exhausted or has failed; Error distinguishes the two.
type RecordReader interface {
	Read() *Record
	Error() error
}

// OpenFunc opens an independent handle on the variant file at path.
type OpenFunc func(ctx context.Context, path string) (RecordSource, error)
