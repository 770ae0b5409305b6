package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/renderer"
)

func TestNewValidation(t *testing.T) {
	device := renderer.NewHeadlessDevice()

	_, err := New(nil, device)
	assert.Error(t, err)

	_, err = New(&Game{}, device)
	assert.Error(t, err)

	_, err = New(&Game{Config: config.Default()}, nil)
	assert.Error(t, err)
}

func TestNewWiresSystemManagerIntoGame(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	game := &Game{Config: cfg}
	_, err := New(game, renderer.NewHeadlessDevice())
	require.NoError(t, err)
	assert.NotNil(t, game.SystemManager)
	assert.NotNil(t, game.SystemManager.Codex())
	assert.NotNil(t, game.SystemManager.Models())
}

func TestEngineRunsFramesUntilShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.AssetBasePath = t.TempDir()
	cfg.TargetFrameSeconds = 0

	game := &Game{Config: cfg}
	device := renderer.NewHeadlessDevice()
	eng, err := New(game, device)
	require.NoError(t, err)

	initialized := false
	game.FnInitialize = func() error {
		initialized = true
		return nil
	}

	frames := 0
	game.FnUpdate = func(delta float64) error {
		frames++
		if frames == 3 {
			return eng.Shutdown()
		}
		return nil
	}
	game.FnRender = func(d renderer.Device, delta float64) error {
		d.Clear(0, 0, 0, 1)
		return nil
	}

	require.NoError(t, eng.Initialize())
	assert.True(t, initialized)

	require.NoError(t, eng.Run())
	assert.Equal(t, 3, frames)
	assert.Equal(t, uint64(3), device.FrameCount)
}
