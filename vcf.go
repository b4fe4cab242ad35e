package vartable

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Fixed columns of the #CHROM line, in order.
var vcfColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

const vcfFormatColumn = "FORMAT"

// VCF is a RecordSource over a plain, gzip/BGZF or zstd compressed VCF file,
// local or on Google Cloud Storage.
type VCF struct {
	FilePath string
	header   *Header

	ctx    context.Context
	stream io.ReadCloser
	buf    *bufio.Reader

	// The stream opened for the header is handed to the first reader;
	// later readers reopen the file.
	streamUsed bool
}

var _ RecordSource = (*VCF)(nil)

// OpenVCF opens the file at path and reads its header. If successful, the
// returned VCF is positioned at the first record.
func OpenVCF(ctx context.Context, path string) (*VCF, error) {
	v := &VCF{
		FilePath: path,
		ctx:      ctx,
	}

	stream, err := openPath(ctx, path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	v.stream = stream
	v.buf = bufio.NewReaderSize(stream, 1<<16)

	if v.header, err = readHeader(v.buf); err != nil {
		stream.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return v, nil
}

// OpenRecordSource adapts OpenVCF to an OpenFunc.
func OpenRecordSource(ctx context.Context, path string) (RecordSource, error) {
	return OpenVCF(ctx, path)
}

func (v *VCF) Header() *Header {
	return v.header
}

func (v *VCF) Close() error {
	if v.stream == nil {
		return nil
	}
	err := v.stream.Close()
	v.stream = nil
	return err
}

// NewRecordReader starts a new scan from the first record.
func (v *VCF) NewRecordReader(regions []Region) (RecordReader, error) {
	if v.streamUsed || v.stream == nil {
		// Rewinding a compressed stream means reopening it
		if err := v.Close(); err != nil {
			return nil, pfx.Err(err)
		}

		stream, err := openPath(v.ctx, v.FilePath)
		if err != nil {
			return nil, pfx.Err(err)
		}
		v.stream = stream
		v.buf = bufio.NewReaderSize(stream, 1<<16)

		if _, err := readHeader(v.buf); err != nil {
			return nil, pfx.Err(err)
		}
	}
	v.streamUsed = true

	return &VariantReader{
		buf:     v.buf,
		header:  v.header,
		regions: regions,
	}, nil
}

func readHeader(buf *bufio.Reader) (*Header, error) {
	h := &Header{}

	for {
		line, err := readLine(buf)
		if err == io.EOF {
			return nil, fmt.Errorf("no #CHROM header line found")
		} else if err != nil {
			return nil, err
		}

		switch {
		case strings.HasPrefix(line, "##"):
			if f, ok, err := parseMetaLine(line); err != nil {
				return nil, err
			} else if ok {
				h.add(f)
			}
		case strings.HasPrefix(line, "#CHROM"):
			if h.SampleNames, err = readSamples(line); err != nil {
				return nil, err
			}
			return h, nil
		case line == "":
			continue
		default:
			return nil, fmt.Errorf("record line found before the #CHROM header line")
		}
	}
}

// parseMetaLine reads ##INFO, ##FORMAT and ##FILTER lines. Other
// meta-information lines report ok == false.
func parseMetaLine(line string) (f HeaderField, ok bool, err error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return f, false, nil
	}

	switch line[2:eq] {
	case "INFO":
		f.Category = CategoryInfo
	case "FORMAT":
		f.Category = CategoryFormat
	case "FILTER":
		f.Category = CategoryFilter
	default:
		return f, false, nil
	}

	body := line[eq+1:]
	if !strings.HasPrefix(body, "<") || !strings.HasSuffix(body, ">") {
		return f, false, fmt.Errorf("malformed %s header line: %s", f.Category, line)
	}

	attrs := parseMetaAttributes(body[1 : len(body)-1])
	f.ID = attrs["ID"]
	f.Number = attrs["Number"]
	f.Type = attrs["Type"]
	f.Description = attrs["Description"]

	if f.ID == "" {
		return f, false, fmt.Errorf("%s header line without ID: %s", f.Category, line)
	}

	return f, true, nil
}

// parseMetaAttributes splits key=value pairs on commas outside quotes.
func parseMetaAttributes(s string) map[string]string {
	out := make(map[string]string)

	var key strings.Builder
	var val strings.Builder
	inKey, inQuote := true, false

	flush := func() {
		if key.Len() > 0 {
			out[strings.TrimSpace(key.String())] = val.String()
		}
		key.Reset()
		val.Reset()
		inKey = true
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			flush()
		case r == '=' && inKey && !inQuote:
			inKey = false
		case inKey:
			key.WriteRune(r)
		default:
			val.WriteRune(r)
		}
	}
	flush()

	return out
}

// readSamples reads the sample names off the #CHROM line.
func readSamples(line string) ([]string, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < len(vcfColumns) {
		return nil, fmt.Errorf("#CHROM line has %d columns; expected at least %d", len(cols), len(vcfColumns))
	}
	for i, want := range vcfColumns {
		if cols[i] != want {
			return nil, fmt.Errorf("#CHROM line column %d is %q; expected %q", i+1, cols[i], want)
		}
	}

	if len(cols) == len(vcfColumns) {
		return nil, nil
	}
	if cols[len(vcfColumns)] != vcfFormatColumn {
		return nil, fmt.Errorf("#CHROM line column %d is %q; expected %q", len(vcfColumns)+1, cols[len(vcfColumns)], vcfFormatColumn)
	}

	return append([]string(nil), cols[len(vcfColumns)+1:]...), nil
}

// readLine returns the next line without its line ending. The final line
// need not be newline terminated.
func readLine(buf *bufio.Reader) (string, error) {
	line, err := buf.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
