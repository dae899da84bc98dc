// Package compress provides the at-rest codec applied to archived file
// payloads. Checksums are always computed over the original bytes, before
// encoding.
package compress

import (
	"bytes"
	"compress/gzip"
	"io"
)

type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ForName returns the codec for a config value: "gzip" or anything else (nop).
func ForName(name string) Compress {
	if name == "gzip" {
		return GZip{}
	}
	return Nop{}
}

// GZip shrinks archive payloads before they reach the folder tree. Decode is
// only needed when serving a stored file back out.
type GZip struct{}

func (GZip) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GZip) Decode(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Nop stores payloads verbatim; the default when ARCHIVE_COMPRESS is unset.
type Nop struct{}

func (Nop) Encode(data []byte) ([]byte, error) { return data, nil }

func (Nop) Decode(data []byte) ([]byte, error) { return data, nil }
