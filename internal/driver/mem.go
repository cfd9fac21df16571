package driver

import (
	"io"

	"github.com/turingarena/turingarena/internal/wire"
)

// MemSolution is an in-process stand-in for a solution process, used by
// tests that want to drive an Engine without spawning a real subprocess.
// Writes the Engine makes are readable from FromEngine, and responses the
// test writes to ToEngine arrive on the Engine's Conn.
type MemSolution struct {
	// Conn/Out are wired into the Engine in place of a real Process.
	Conn *wire.Reader
	Out  *wire.Writer

	// FromEngine/ToEngine let the test observe/drive the other side of
	// the pipe directly.
	FromEngine *wire.Reader
	ToEngine   *wire.Writer
}

// NewMemSolution creates a connected pair of in-memory pipes: one carrying
// bytes from the Engine outward (readable via FromEngine), one carrying
// bytes from the test back to the Engine (written via ToEngine).
func NewMemSolution() *MemSolution {
	outR, outW := io.Pipe()
	inR, inW := io.Pipe()
	return &MemSolution{
		Conn:       wire.NewReader(inR),
		Out:        wire.NewWriter(outW),
		FromEngine: wire.NewReader(outR),
		ToEngine:   wire.NewWriter(inW),
	}
}
