package engine

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	device        renderer.Device
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
	metrics       *core.Metrics
}

// New wires an engine around a game and the device capability the
// application provides. Pass a HeadlessDevice when no GPU backend is
// available.
func New(g *Game, device renderer.Device) (*Engine, error) {
	if g == nil || g.Config == nil {
		return nil, fmt.Errorf("engine requires a game with a configuration")
	}
	if device == nil {
		return nil, fmt.Errorf("engine requires a device")
	}

	core.SetLogLevel(g.Config.LogLevel)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(g.Config, am)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		device:        device,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		assetManager:  am,
		systemManager: sm,
		isRunning:     true,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := e.assetManager.Initialize(e.gameInstance.Config.AssetBasePath); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized", e.gameInstance.Config.AppName)
	return nil
}

// Run drives the frame loop on the calling goroutine until Shutdown is
// requested: begin frame, game update, game render, end frame.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	lastTime := 0.0

	target := e.gameInstance.Config.TargetFrameSeconds

	for e.isRunning {
		e.clock.Update()
		now := e.clock.Elapsed()
		delta := now - lastTime
		lastTime = now

		if err := e.device.BeginFrame(); err != nil {
			core.LogError("begin frame failed: %s", err.Error())
			return err
		}

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed: %s", err.Error())
				return err
			}
		}

		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.device, delta); err != nil {
				core.LogError("game render failed: %s", err.Error())
				return err
			}
		}

		if err := e.device.EndFrame(); err != nil {
			core.LogError("end frame failed: %s", err.Error())
			return err
		}

		e.clock.Update()
		frameElapsed := e.clock.Elapsed() - now
		e.metrics.Update(frameElapsed)

		if target > 0 && frameElapsed < target {
			time.Sleep(time.Duration((target - frameElapsed) * float64(time.Second)))
		}
	}

	return e.teardown()
}

// Shutdown requests the run loop to stop after the current frame.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false
	return nil
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) teardown() error {
	fps, frameTime := e.metrics.Frame()
	core.LogInfo("shutting down (last fps=%.1f, avg frame=%.2fms)", fps, frameTime)

	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	return e.assetManager.Shutdown()
}
