package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

var errNoFrames = errors.New("viz: nothing recorded")

// Recorder collects canvas frames for a GIF.
type Recorder struct {
	frames []*image.Paletted
	// Delay is the time per frame in hundredths of a second.
	Delay int
}

func NewRecorder() *Recorder {
	return &Recorder{Delay: 2}
}

func (r *Recorder) Capture(c *Canvas) {
	r.frames = append(r.frames, c.Image(8, 16, color.White))
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
