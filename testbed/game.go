package testbed

import (
	"math"

	"github.com/spaghettifunk/vetro/engine"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/scene"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	model *scene.Model

	// Accumulated yaw applied to the selected node, drives a slow spin.
	yaw      float64
	logEvery float64
	sinceLog float64
}

func NewTestGame() (*TestGame, error) {
	cfg, err := config.Load("vetro.toml")
	if err != nil {
		return nil, err
	}

	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State: &gameState{
				logEvery: 5.0,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render

	return tg, nil
}

func (tg *TestGame) Initialize() error {
	state := tg.State.(*gameState)

	model, err := tg.SystemManager.Models().Acquire("demo")
	if err != nil {
		return err
	}
	state.model = model

	// Select the first child so the pose edit is visible against the root.
	children := model.Root().Children()
	if len(children) > 0 {
		if err := model.Inspector().Select(children[0].ID()); err != nil {
			return err
		}
	}

	model.Inspector().Walk(func(node *scene.Node, depth int) bool {
		core.LogInfo("node %*s[%d] %s (%d meshes)", depth*2, "", node.ID(), node.Name(), len(node.Meshes()))
		return true
	})

	return nil
}

func (tg *TestGame) Update(deltaTime float64) error {
	state := tg.State.(*gameState)
	if state.model == nil {
		return nil
	}

	state.yaw += deltaTime * 0.5
	if state.yaw > math.Pi {
		state.yaw -= 2 * math.Pi
	}

	inspector := state.model.Inspector()
	pose := inspector.Pose()
	pose.Yaw = float32(state.yaw)
	inspector.SetPose(pose)

	state.sinceLog += deltaTime
	if state.sinceLog >= state.logEvery {
		state.sinceLog = 0
		core.LogDebug("selected node '%s' yaw=%.2f", inspector.Selected().Name(), pose.Yaw)
	}

	return nil
}

func (tg *TestGame) Render(device renderer.Device, deltaTime float64) error {
	state := tg.State.(*gameState)
	if state.model == nil {
		return nil
	}

	device.Clear(0.05, 0.05, 0.08, 1.0)
	state.model.Draw(device)
	return nil
}
