package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PCMFormat describes raw headerless PCM audio as returned by the TTS
// provider: signed little-endian samples.
type PCMFormat struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// DefaultPCMFormat matches the provider default: mono, 24kHz, 16-bit.
func DefaultPCMFormat() PCMFormat {
	return PCMFormat{Channels: 1, SampleRate: 24000, BitsPerSample: 16}
}

// EncodeWAV wraps raw PCM bytes in a RIFF/WAVE container with fmt and data
// chunks sized for the given format. The transcode is pure: the same PCM
// bytes and format always produce the same container bytes.
func EncodeWAV(pcm []byte, format PCMFormat) ([]byte, error) {
	if format.Channels <= 0 || format.SampleRate <= 0 || format.BitsPerSample <= 0 {
		return nil, fmt.Errorf("invalid PCM format: %+v", format)
	}
	if format.BitsPerSample%8 != 0 {
		return nil, fmt.Errorf("bits per sample must be a multiple of 8, got %d", format.BitsPerSample)
	}

	blockAlign := format.Channels * format.BitsPerSample / 8
	byteRate := format.SampleRate * blockAlign
	dataLen := len(pcm)

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	// RIFF chunk
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen)) //nolint:errcheck // bytes.Buffer writes cannot fail
	buf.WriteString("WAVE")

	// fmt chunk: 16-byte PCM header
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))                    //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint16(1))                     //nolint:errcheck // 1 = PCM
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))       //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))     //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))              //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))            //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitsPerSample))  //nolint:errcheck

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen)) //nolint:errcheck
	buf.Write(pcm)

	return buf.Bytes(), nil
}
