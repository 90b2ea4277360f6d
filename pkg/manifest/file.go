package manifest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Mode selects the on-disk framing strategy for Save. Both modes share the
// same manifest/payload data model; only the framing differs.
type Mode int

const (
	// ModeEmbedded writes one self-describing file: header, manifest
	// JSON, then the payload.
	ModeEmbedded Mode = iota
	// ModeSidecar writes the raw payload as-is and the manifest JSON to
	// <path>.manifest.json.
	ModeSidecar
)

// File owns one manifest and one opaque payload.
type File struct {
	Manifest Manifest
	Payload  []byte
}

// NewFile combines a manifest with a payload.
func NewFile(m Manifest, payload []byte) *File {
	return &File{Manifest: m, Payload: payload}
}

// hashPayload computes the content hash of b as lowercase hex.
func hashPayload(b []byte) string {
	return digest.FromBytes(b).Encoded()
}

// stamp refreshes the derived manifest fields from the current payload.
func (f *File) stamp() {
	f.Manifest.DataSize = len(f.Payload)
	f.Manifest.DataHash = hashPayload(f.Payload)
}

// Encode frames the file into one self-describing buffer. DataSize and
// DataHash are recomputed from the payload first; an oversized manifest
// block is an error rather than a silent truncation.
func (f *File) Encode() ([]byte, error) {
	f.stamp()

	mb, err := f.Manifest.JSON()
	if err != nil {
		return nil, err
	}
	if len(mb) > MaxManifestSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrManifestTooLarge, len(mb))
	}

	out := make([]byte, 0, headerSize+len(mb)+len(f.Payload))
	out = append(out, Magic[:]...)
	out = binary.BigEndian.AppendUint16(out, Version)
	out = binary.BigEndian.AppendUint32(out, uint32(len(mb)))
	out = append(out, mb...)
	out = append(out, f.Payload...)
	return out, nil
}

// Decode parses an embedded buffer. The header is validated in full
// (size, magic, declared manifest length, truncation) before any byte is
// interpreted as JSON.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		return nil, ErrBadMagic
	}
	manifestLen := int(binary.BigEndian.Uint32(data[6:10]))
	if manifestLen > MaxManifestSize {
		return nil, fmt.Errorf("%w: %d bytes declared", ErrManifestTooLarge, manifestLen)
	}
	end := headerSize + manifestLen
	if end > len(data) {
		return nil, fmt.Errorf("%w: manifest block truncated", ErrTruncated)
	}

	m, err := FromJSON(data[headerSize:end])
	if err != nil {
		return nil, err
	}
	payload := append([]byte(nil), data[end:]...)
	return &File{Manifest: m, Payload: payload}, nil
}

// Save writes the file to path using the chosen framing mode.
func (f *File) Save(path string, mode Mode) error {
	switch mode {
	case ModeSidecar:
		f.stamp()
		if err := os.WriteFile(path, f.Payload, 0o644); err != nil {
			return err
		}
		mb, err := json.MarshalIndent(f.Manifest, "", "  ")
		if err != nil {
			return fmt.Errorf("manifest: encode json: %w", err)
		}
		return os.WriteFile(sidecarPath(path), mb, 0o644)
	default:
		b, err := f.Encode()
		if err != nil {
			return err
		}
		return os.WriteFile(path, b, 0o644)
	}
}

// Load reads a file in whichever mode it was saved: embedded if its
// leading bytes match the magic, sidecar if <path>.manifest.json exists,
// else the whole file is treated as a bare payload and a manifest is
// synthesized from it (id from the file stem, hash recomputed, empty
// metadata). The fallback lets pre-existing files enter the format
// without a migration step.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) >= 4 && bytes.Equal(data[0:4], Magic[:]) {
		return Decode(data)
	}

	if mb, err := os.ReadFile(sidecarPath(path)); err == nil {
		m, err := FromJSON(mb)
		if err != nil {
			return nil, err
		}
		return &File{Manifest: m, Payload: data}, nil
	}

	m := New(fileStem(path))
	f := &File{Manifest: m, Payload: data}
	f.stamp()
	return f, nil
}

// Verify recomputes the payload hash and compares it against the stored
// DataHash, detecting payload tampering independent of the framing checks.
func (f *File) Verify() bool {
	return hashPayload(f.Payload) == f.Manifest.DataHash
}

func sidecarPath(path string) string {
	return path + ".manifest.json"
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
