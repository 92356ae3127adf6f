package audio

import (
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ----- PCM ----- //

const wavFormatPCM = 1

func toInt16(value float64) int16 {
	if math.IsNaN(value) {
		return 0
	}
	return int16(clip(value, -1, 1) * pcmMax)
}

// ToPCM16 interleaves buf as signed 16-bit samples, left first. Values are clamped to
// [-1,1] and truncated without dither; NaN becomes 0.
func ToPCM16(buf Buffer) []int16 {
	out := make([]int16, len(buf)*channelNum)
	for i, frame := range buf {
		out[channelNum*i] = toInt16(frame[0])
		out[channelNum*i+1] = toInt16(frame[1])
	}
	return out
}

// writeBuffer writes channel ch of in into out as little endian 16-bit interleaved PCM.
func writeBuffer(in Buffer, out []byte, ch int) {
	sampleLength := len(out) / bytesPerSample
	for i := 0; i < sampleLength && i < len(in); i++ {
		b := toInt16(in[i][ch])
		out[bytesPerSample*i+2*ch] = byte(b)
		out[bytesPerSample*i+2*ch+1] = byte(b >> 8)
	}
}

// PCMBytes returns buf as interleaved little endian 16-bit stereo.
func PCMBytes(buf Buffer) []byte {
	out := make([]byte, len(buf)*bytesPerSample)
	writeBuffer(buf, out, 0)
	writeBuffer(buf, out, 1)
	return out
}

// WriteWAV encodes buf as a 16-bit stereo PCM WAV stream.
func WriteWAV(w io.WriteSeeker, buf Buffer, sampleRate int) error {
	pcm := ToPCM16(buf)
	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}
	enc := wav.NewEncoder(w, sampleRate, bitDepthInBytes*8, channelNum, wavFormatPCM)
	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channelNum, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepthInBytes * 8,
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

// SaveWAV writes buf to a WAV file at path.
func SaveWAV(path string, buf Buffer, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, buf, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
