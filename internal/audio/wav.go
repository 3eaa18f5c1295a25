package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrFormat is returned for audio data the device cannot read.
var ErrFormat = errors.New("audio: unsupported format")

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// wavDuration reads a RIFF/WAVE header and returns the playback length.
func wavDuration(data []byte) (time.Duration, error) {
	r := bytes.NewReader(data)
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return 0, fmt.Errorf("%w: short header", ErrFormat)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, fmt.Errorf("%w: not a wave file", ErrFormat)
	}

	var format *wavFormat
	for {
		var id [4]byte
		var size uint32
		if _, err := io.ReadFull(r, id[:]); err != nil {
			return 0, fmt.Errorf("%w: missing data chunk", ErrFormat)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return 0, fmt.Errorf("%w: truncated chunk", ErrFormat)
		}
		switch string(id[:]) {
		case "fmt ":
			var f wavFormat
			if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
				return 0, fmt.Errorf("%w: truncated fmt chunk", ErrFormat)
			}
			if _, err := r.Seek(int64(size)-16+int64(size%2), io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrFormat, err)
			}
			format = &f
		case "data":
			if format == nil || format.ByteRate == 0 {
				return 0, fmt.Errorf("%w: data before fmt", ErrFormat)
			}
			return time.Duration(float64(size) / float64(format.ByteRate) * float64(time.Second)), nil
		default:
			if _, err := r.Seek(int64(size)+int64(size%2), io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrFormat, err)
			}
		}
	}
}
