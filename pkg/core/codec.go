package core

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// snapshotMagic prefixes every encoded generation.
var snapshotMagic = [4]byte{'C', 'A', 'G', '1'}

// maxSnapshotCells caps decoded extents so a corrupt header cannot force a
// huge allocation.
const maxSnapshotCells = 1 << 26

// Encode writes gen as magic, big-endian uint32 width and height, then one
// byte per cell in row-major order.
func Encode(w io.Writer, gen Generation) error {
	var hdr [12]byte
	copy(hdr[:4], snapshotMagic[:])
	binary.BigEndian.PutUint32(hdr[4:8], uint32(gen.bounds.W))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(gen.bounds.H))
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "writing snapshot header")
	}
	buf := make([]byte, len(gen.cells))
	for i, s := range gen.cells {
		buf[i] = byte(s)
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "writing snapshot cells")
	}
	return nil
}

// Decode reads a generation written by Encode. Tags above maxState are
// rejected.
func Decode(r io.Reader, maxState State) (Generation, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Generation{}, errors.Wrap(err, "reading snapshot header")
	}
	if [4]byte(hdr[:4]) != snapshotMagic {
		return Generation{}, errors.Errorf("bad snapshot magic %q", hdr[:4])
	}
	w := int(binary.BigEndian.Uint32(hdr[4:8]))
	h := int(binary.BigEndian.Uint32(hdr[8:12]))
	if w <= 0 || h <= 0 || w > maxSnapshotCells/h {
		return Generation{}, errors.Errorf("bad snapshot dimensions %dx%d", w, h)
	}
	buf := make([]byte, w*h)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Generation{}, errors.Wrapf(err, "reading %d snapshot cells", w*h)
	}
	cells := make([]State, len(buf))
	for i, b := range buf {
		if State(b) > maxState {
			return Generation{}, errors.Errorf("cell %d has state %d, max is %d", i, b, maxState)
		}
		cells[i] = State(b)
	}
	return Generation{bounds: Bounds{W: w, H: h}, cells: cells}, nil
}
