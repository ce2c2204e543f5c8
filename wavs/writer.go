package wavs

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	BitDepth = 16

	// PCM
	audioFormat = 1
)

// Writer encodes stereo float samples in [-1, 1] as 16 bit PCM.
type Writer struct {
	encoder *wav.Encoder
	buffer  *audio.IntBuffer
}

func NewWriter(w io.WriteSeeker, sampleRate int, numChannels int) *Writer {
	return &Writer{
		encoder: wav.NewEncoder(w, sampleRate, BitDepth, numChannels, audioFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: BitDepth,
		},
	}
}

// Write writes interleaved samples.
func (w *Writer) Write(samples []float64) error {
	data := w.buffer.Data[:0]
	for _, sample := range samples {
		data = append(data, toPCM(sample))
	}
	w.buffer.Data = data
	if err := w.encoder.Write(w.buffer); err != nil {
		return wrap(err)
	}
	return nil
}

// Close finalizes the headers. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.encoder.Close(); err != nil {
		return wrap(err)
	}
	return nil
}

func toPCM(sample float64) int {
	if math.IsNaN(sample) {
		return 0
	}
	sample = max(-1, min(1, sample))
	return int(math.Round(sample * math.MaxInt16))
}
