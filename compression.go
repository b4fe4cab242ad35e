package vartable

import "bytes"

// Compression indicates how (and whether) a variant file is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGZIP                 // includes BGZF
	CompressionZStandard
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "none"
	case CompressionGZIP:
		return "gzip"
	case CompressionZStandard:
		return "zstd"

	default:
		return "Illegal selection"
	}
}

var (
	magicGZIP      = []byte{0x1f, 0x8b}
	magicZStandard = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression inspects the leading bytes of a file.
func DetectCompression(magic []byte) Compression {
	switch {
	case bytes.HasPrefix(magic, magicGZIP):
		return CompressionGZIP
	case bytes.HasPrefix(magic, magicZStandard):
		return CompressionZStandard
	}
	return CompressionDisabled
}
