// Package snapshot saves and restores grid occupancy.
//
// A snapshot file is a zstd stream holding one JSON header line followed by a
// gob encoding of the whole Snapshot. The header line lets tools peek at the
// layout without decoding the body.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pixeldig/internal/config"
	"pixeldig/internal/world"

	"github.com/klauspost/compress/zstd"
)

// Version is the current snapshot format version.
const Version = 1

// ErrLayoutMismatch is returned when a snapshot's bits do not fit its layout.
var ErrLayoutMismatch = errors.New("snapshot layout mismatch")

type Header struct {
	Version int           `json:"version"`
	Layout  config.Layout `json:"layout"`
}

// Snapshot is the fill state of every voxel of a grid, bit-packed in
// row-major order (bit i of Bits[i/8] is voxel i).
type Snapshot struct {
	Header Header
	Width  int
	Height int
	Bits   []byte
}

// Capture records the occupancy of g.
func Capture(g *world.Grid) *Snapshot {
	vr := g.VoxelResolution()
	s := &Snapshot{
		Header: Header{Version: Version, Layout: g.Layout()},
		Width:  vr.X,
		Height: vr.Y,
		Bits:   make([]byte, (vr.X*vr.Y+7)/8),
	}
	for y := 0; y < vr.Y; y++ {
		for x := 0; x < vr.X; x++ {
			if g.Filled(x, y) {
				i := y*vr.X + x
				s.Bits[i/8] |= 1 << (i % 8)
			}
		}
	}
	return s
}

// Filled reports whether grid voxel (gx, gy) was filled. Out of range is empty.
func (s *Snapshot) Filled(gx, gy int) bool {
	if gx < 0 || gy < 0 || gx >= s.Width || gy >= s.Height {
		return false
	}
	i := gy*s.Width + gx
	return s.Bits[i/8]&(1<<(i%8)) != 0
}

// Count returns the number of filled voxels.
func (s *Snapshot) Count() int {
	n := 0
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if s.Filled(x, y) {
				n++
			}
		}
	}
	return n
}

// Check verifies that the snapshot is consistent with its own layout.
func (s *Snapshot) Check() error {
	if s.Header.Version != Version {
		return fmt.Errorf("snapshot version %d, want %d", s.Header.Version, Version)
	}
	if err := s.Header.Layout.Validate(); err != nil {
		return err
	}
	vr := s.Header.Layout.VoxelResolution()
	if s.Width != vr[0] || s.Height != vr[1] {
		return fmt.Errorf("%w: %dx%d voxels for a %dx%d layout", ErrLayoutMismatch, s.Width, s.Height, vr[0], vr[1])
	}
	if want := (s.Width*s.Height + 7) / 8; len(s.Bits) != want {
		return fmt.Errorf("%w: %d bytes of bits, want %d", ErrLayoutMismatch, len(s.Bits), want)
	}
	return nil
}

// Restore builds a grid in the snapshot's layout and occupancy. Further
// options, such as binders, are applied as given.
func Restore(s *Snapshot, opts ...world.Option) (*world.Grid, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	opts = append(opts, world.WithOccupancy(s.Filled))
	return world.NewGrid(s.Header.Layout, opts...)
}

// Write encodes s to w.
func Write(w io.Writer, s *Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	hb, err := json.Marshal(s.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(s); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes a snapshot from r and checks it.
func Read(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("snapshot version %d, want %d", h.Version, Version)
	}

	var s Snapshot
	if err := gob.NewDecoder(br).Decode(&s); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return f.Close()
}

// Load reads the snapshot at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return s, nil
}
