package engine

import (
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/systems"
)

type Game struct {
	Config        *config.Config
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnRender      Render
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(device renderer.Device, deltaTime float64) error
type Shutdown func() error
