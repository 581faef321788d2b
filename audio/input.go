package audio

import (
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// Input pulls fixed-size mono chunks from the default capture device.
// portaudio.Initialize must have run before OpenInput; the caller owns the
// Terminate.
type Input struct {
	stream *portaudio.Stream
	buf    []float32
	out    []float64
}

// OpenInput opens and starts a mono stream on the default input device.
func OpenInput(sampleRate float64, bufferSize int) (*Input, error) {
	in := &Input{
		buf: make([]float32, bufferSize),
		out: make([]float64, bufferSize),
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, bufferSize, in.buf)
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, err
	}
	in.stream = stream

	slog.Debug("audio input opened", "sample_rate", sampleRate, "buffer_size", bufferSize)
	return in, nil
}

// ReadChunk blocks until one full buffer is available and returns it as
// float64 samples. The returned slice is reused across calls.
func (in *Input) ReadChunk() ([]float64, error) {
	if err := in.stream.Read(); err != nil {
		return nil, err
	}
	for i, v := range in.buf {
		in.out[i] = float64(v)
	}
	return in.out, nil
}

// Close stops the stream and releases the device.
func (in *Input) Close() error {
	slog.Debug("audio input closed")
	return in.stream.Close()
}

// InputDevices returns every device that can capture audio.
func InputDevices() ([]*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	var res []*portaudio.DeviceInfo
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			res = append(res, d)
		}
	}
	return res, nil
}
