package audio

import (
	"context"
	"io"
	"log"

	"github.com/hajimehoshi/oto"
)

const samplesPerCycle = 1024
const bufferSizeInBytes = samplesPerCycle * bytesPerSample // should be >= 4096

// ----- Player ----- //

// Player plays rendered buffers on the default output device.
type Player struct {
	otoContext *oto.Context
}

// NewPlayer opens the output device at sampleRate.
func NewPlayer(sampleRate int) (*Player, error) {
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	return &Player{otoContext: otoContext}, nil
}

// Play blocks until buf has been played or ctx is canceled.
func (p *Player) Play(ctx context.Context, buf Buffer) error {
	player := p.otoContext.NewPlayer()
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	r := &pcmReader{ctx: ctx, data: PCMBytes(buf)}
	if _, err := io.CopyBuffer(player, r, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	return ctx.Err()
}

// Close releases the output device.
func (p *Player) Close() error {
	log.Println("Closing Player...")
	return p.otoContext.Close()
}

// pcmReader reads PCM bytes until exhausted or ctx is done.
type pcmReader struct {
	ctx  context.Context
	data []byte
	pos  int
}

var _ io.Reader = (*pcmReader)(nil)

func (r *pcmReader) Read(buf []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(buf, r.data[r.pos:])
	r.pos += n
	return n, nil
}
