package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/renderer"
)

func newTwoNodeModel(t *testing.T) *Model {
	t.Helper()
	child := NewNode(1, "child", []*Mesh{newTestMesh(t, "child")}, mgl32.Ident4())
	root := NewNode(0, "root", nil, mgl32.Ident4())
	require.NoError(t, root.AddChild(child))

	model, err := NewModel("rig", nil, root)
	require.NoError(t, err)
	return model
}

func TestInspectorSelectsRootByDefault(t *testing.T) {
	model := newTwoNodeModel(t)
	assert.Equal(t, "root", model.Inspector().Selected().Name())
}

func TestInspectorSelectUnknownID(t *testing.T) {
	model := newTwoNodeModel(t)
	assert.Error(t, model.Inspector().Select(42))

	require.NoError(t, model.Inspector().Select(1))
	assert.Equal(t, "child", model.Inspector().Selected().Name())
}

func TestInspectorClampsPose(t *testing.T) {
	model := newTwoNodeModel(t)
	in := model.Inspector()

	in.SetPose(PoseParameters{Roll: 10, Pitch: -10, Yaw: 1, X: 100, Y: -100, Z: 5})
	pose := in.Pose()

	assert.InDelta(t, math.Pi, float64(pose.Roll), 1e-6)
	assert.InDelta(t, -math.Pi, float64(pose.Pitch), 1e-6)
	assert.Equal(t, float32(1), pose.Yaw)
	assert.Equal(t, float32(20), pose.X)
	assert.Equal(t, float32(-20), pose.Y)
	assert.Equal(t, float32(5), pose.Z)
}

func TestInspectorPoseIsPerNode(t *testing.T) {
	model := newTwoNodeModel(t)
	in := model.Inspector()

	in.SetPose(PoseParameters{X: 2})
	require.NoError(t, in.Select(1))
	assert.Equal(t, PoseParameters{}, in.Pose())

	in.SetPose(PoseParameters{Y: 3})
	require.NoError(t, in.Select(0))
	assert.Equal(t, PoseParameters{X: 2}, in.Pose())
}

func TestModelDrawAppliesSelectedPose(t *testing.T) {
	model := newTwoNodeModel(t)
	in := model.Inspector()
	require.NoError(t, in.Select(1))
	in.SetPose(PoseParameters{X: 2, Y: 0, Z: 0})

	device := renderer.NewHeadlessDevice()
	model.Draw(device)

	require.Len(t, device.Submissions, 1)
	assert.Equal(t, mgl32.Translate3D(2, 0, 0), device.Submissions[0].State.Transform)
}

func TestPoseMatrixTranslatesAfterRotation(t *testing.T) {
	m := PoseMatrix(PoseParameters{X: 1, Y: 2, Z: 3})
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), m)
}

func TestModelRequiresRoot(t *testing.T) {
	_, err := NewModel("broken", nil, nil)
	assert.Error(t, err)
}
