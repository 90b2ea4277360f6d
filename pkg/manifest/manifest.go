package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Magic prefixes every embedded SYNAPSE file.
var Magic = [4]byte{'S', 'Y', 'N', 'M'}

const (
	// Version is the current manifest format version.
	Version uint16 = 1
	// MaxManifestSize is the hard ceiling on the serialized manifest block.
	MaxManifestSize = 64 << 10

	headerSize = 10
)

// Data type values stored in Manifest.DataType.
const (
	DataTypeUnknown = "unknown"
	DataTypeText    = "text/plain"
	DataTypeJSON    = "application/json"
	DataTypeBinary  = "application/octet-stream"
)

// Errors returned by encode/decode. ErrManifestTooLarge and malformed
// inputs are wrapped with detail; match with errors.Is.
var (
	ErrBadMagic         = errors.New("manifest: bad magic bytes")
	ErrTruncated        = errors.New("manifest: data too small")
	ErrManifestTooLarge = errors.New("manifest: manifest too large")
)

// Manifest is the metadata record attached to a payload. DataSize and
// DataHash are derived fields: File.Encode recomputes them from the
// payload immediately before framing, so values loaded from disk are
// never trusted for a re-encode.
type Manifest struct {
	ID       string         `json:"id"`
	Version  uint16         `json:"version"`
	Node     string         `json:"node"`
	DataType string         `json:"data_type"`
	DataSize int            `json:"data_size"`
	DataHash string         `json:"data_hash"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// New returns a manifest with the current format version and defaults.
func New(id string) Manifest {
	return Manifest{
		ID:       id,
		Version:  Version,
		DataType: DataTypeUnknown,
	}
}

// JSON serializes the manifest as compact JSON.
func (m Manifest) JSON() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("manifest: encode json: %w", err)
	}
	return b, nil
}

// FromJSON deserializes a manifest. The id key is required; other missing
// fields keep their defaults, in particular an absent version becomes the
// current format version.
func FromJSON(data []byte) (Manifest, error) {
	var probe struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode json: %w", err)
	}
	if probe.ID == nil {
		return Manifest{}, errors.New(`manifest: missing required key "id"`)
	}

	m := New("")
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode json: %w", err)
	}
	return m, nil
}
