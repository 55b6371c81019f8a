package demo

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// NewPlayer opens a mono float32 playback device at the given sample rate
// and returns a player that pulls from src. The caller owns Play/Close.
func NewPlayer(sampleRate int, src io.Reader) (*oto.Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("demo: open audio context: %w", err)
	}
	<-ready

	return ctx.NewPlayer(src), nil
}
