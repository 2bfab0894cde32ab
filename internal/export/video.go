package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"reiter-ca/internal/sims/reiter"
)

// VideoRecorder appends a rendered frame to an MJPEG AVI every few steps.
// A nil *VideoRecorder is a valid no-op.
type VideoRecorder struct {
	aw       mjpeg.AviWriter
	renderer *Renderer
	every    int
	frames   int
	buf      bytes.Buffer
	opts     jpeg.Options
}

// NewVideoRecorder creates the AVI at path. Frames are sized for a lattice
// of radius n drawn by r.
func NewVideoRecorder(path string, r *Renderer, n, every, fps int) (*VideoRecorder, error) {
	if every <= 0 {
		every = 1
	}
	if fps <= 0 {
		fps = 24
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating video directory: %w", err)
	}
	w, h := r.Bounds(n)
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating MJPEG writer: %w", err)
	}
	return &VideoRecorder{
		aw:       aw,
		renderer: r,
		every:    every,
		opts:     jpeg.Options{Quality: 90},
	}, nil
}

// Observe records a frame on the recorder's interval and always records the
// step on which the flake converged.
func (v *VideoRecorder) Observe(f *reiter.Flake) error {
	if v == nil {
		return nil
	}
	if f.Steps()%v.every != 0 && !f.Converged() {
		return nil
	}
	return v.AddFrame(f.Lattice())
}

// AddFrame renders the lattice and appends it to the video.
func (v *VideoRecorder) AddFrame(l *reiter.Lattice) error {
	if v == nil {
		return nil
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, v.renderer.Image(l), &v.opts); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("adding frame: %w", err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written.
func (v *VideoRecorder) Frames() int {
	if v == nil {
		return 0
	}
	return v.frames
}

// Close finalises the AVI index.
func (v *VideoRecorder) Close() error {
	if v == nil || v.aw == nil {
		return nil
	}
	err := v.aw.Close()
	v.aw = nil
	return err
}
