package vartable

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/cenkalti/backoff"
)

const gcsScheme = "gs://"

// gcsOpenAttempts bounds retries of transient Cloud Storage failures.
const gcsOpenAttempts = 5

// openPath opens a local or gs:// path and transparently decompresses it.
func openPath(ctx context.Context, path string) (io.ReadCloser, error) {
	var (
		raw io.ReadCloser
		err error
	)

	if strings.HasPrefix(path, gcsScheme) {
		raw, err = openGCS(ctx, path)
	} else {
		raw, err = os.Open(path)
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	br := bufio.NewReader(raw)
	magic, err := br.Peek(len(magicZStandard))
	if err != nil && err != io.EOF {
		raw.Close()
		return nil, pfx.Err(err)
	}

	dec, err := decompress(DetectCompression(magic), br)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &stackedCloser{Reader: dec, closers: []io.Closer{dec, raw}}, nil
}

type gcsObject struct {
	*storage.Reader
	client *storage.Client
}

func (g *gcsObject) Close() error {
	err := g.Reader.Close()
	if cerr := g.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGCS(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(path, gcsScheme), "/")
	if !ok || bucket == "" || object == "" {
		return nil, pfx.Err(fmt.Errorf("%q is not of the form gs://bucket/object", path))
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var r *storage.Reader
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), gcsOpenAttempts-1), ctx)
	err = backoff.Retry(func() error {
		var rerr error
		r, rerr = client.Bucket(bucket).Object(object).NewReader(ctx)
		return rerr
	}, policy)
	if err != nil {
		client.Close()
		return nil, pfx.Err(err)
	}

	return &gcsObject{Reader: r, client: client}, nil
}

// stackedCloser closes its closers in order and reports the first error.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
