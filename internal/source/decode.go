package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/resdir/internal/directory"
)

// MaxPayloadSize bounds the size of a JSON payload read from any source.
const MaxPayloadSize = 64 << 20

// Decode parses a JSON array of records read from r.
// name identifies the source in errors.
func Decode(name string, r io.Reader) ([]directory.Record, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPayloadSize+1))
	if err != nil {
		return nil, directory.NewLoadError(name, directory.ErrTransport, err)
	}
	if len(data) > MaxPayloadSize {
		return nil, directory.NewLoadError(name, directory.ErrMalformed,
			fmt.Errorf("payload exceeds %d bytes", MaxPayloadSize))
	}
	return DecodeBytes(name, data)
}

// DecodeBytes parses a JSON array of records.
func DecodeBytes(name string, data []byte) ([]directory.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, directory.NewLoadError(name, directory.ErrMalformed, errors.New("expected a JSON array"))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	records := []directory.Record{}
	if err := dec.Decode(&records); err != nil {
		return nil, directory.NewLoadError(name, directory.ErrMalformed, err)
	}
	if dec.More() {
		return nil, directory.NewLoadError(name, directory.ErrMalformed, errors.New("trailing data after JSON array"))
	}
	return records, nil
}
