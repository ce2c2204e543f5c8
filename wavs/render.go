package wavs

import (
	"context"
	"io"

	"github.com/reusee/beat/beathost"
)

const blockFrames = 1024

// Render runs the session for numFrames frames from its current tick and writes the output.
func Render(ctx context.Context, session *beathost.Session, out io.WriteSeeker, numFrames int) error {
	w := NewWriter(out, int(session.SampleRate()), beathost.NumChannels)
	frames := make([]beathost.Frame, blockFrames)
	samples := make([]float64, 0, blockFrames*beathost.NumChannels)
	for numFrames > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(numFrames, blockFrames)
		block := frames[:n]
		clear(block)
		session.Process(block)
		samples = samples[:0]
		for _, frame := range block {
			for _, v := range frame {
				samples = append(samples, session.Sample(v))
			}
		}
		if err := w.Write(samples); err != nil {
			return err
		}
		numFrames -= n
	}
	return w.Close()
}
