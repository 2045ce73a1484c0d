package tts

import (
	"context"

	"github.com/inkvoice/inkvoice/internal/logger"
)

type DummySynthesizer struct {
}

// silentFrame is one MPEG-1 Layer III frame of silence, enough for the
// storage pipeline to have real bytes to commit in keyless dev runs.
var silentFrame = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 414)...)

func NewDummySynthesizer() *DummySynthesizer {
	return &DummySynthesizer{}
}

func (d *DummySynthesizer) Synthesize(_ context.Context, _, _ string, _ float64) (*Audio, error) {
	logger.New().Debug("no tts configured. returning silent audio")
	return &Audio{Bytes: silentFrame, MIME: MIMEMpeg}, nil
}

func (d *DummySynthesizer) Name() string {
	return "dummy"
}
