package systems

import (
	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/renderer/bindable"
)

// SystemManager owns the codex and the systems built on top of it. The
// codex lives exactly as long as the manager: constructed here, dropped in
// Shutdown.
type SystemManager struct {
	codex       *bindable.Codex
	modelSystem *ModelSystem
}

func NewSystemManager(cfg *config.Config, am *assets.AssetManager) (*SystemManager, error) {
	codex := bindable.NewCodex()

	ms, err := NewModelSystem(cfg, codex, am)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		codex:       codex,
		modelSystem: ms,
	}, nil
}

func (sm *SystemManager) Codex() *bindable.Codex {
	return sm.codex
}

func (sm *SystemManager) Models() *ModelSystem {
	return sm.modelSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.modelSystem.Shutdown(); err != nil {
		return err
	}
	return sm.codex.Shutdown()
}
