package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/core"
)

const (
	// Pose slider ranges: rotations in radians, positions in world units.
	poseAngleLimit    float32 = math.Pi
	posePositionLimit float32 = 20.0
)

// PoseParameters is the editable pose of one node: roll/pitch/yaw plus a
// translation. Pitch rotates about X, yaw about Y, roll about Z.
type PoseParameters struct {
	Roll  float32
	Pitch float32
	Yaw   float32
	X     float32
	Y     float32
	Z     float32
}

// Inspector is the surface exposed to the debug UI: read access to the node
// tree via Walk, a selection slot, and a pose per node that the UI edits.
// Apply converts the selected node's pose into its applied transform; the
// traversal itself never mutates anything else.
type Inspector struct {
	root     *Node
	selected *Node
	poses    map[int]*PoseParameters
}

func newInspector(root *Node) *Inspector {
	in := &Inspector{
		root:     root,
		selected: root,
		poses:    make(map[int]*PoseParameters),
	}
	in.poses[root.ID()] = &PoseParameters{}
	return in
}

func (in *Inspector) Selected() *Node {
	return in.selected
}

// Select moves the selection to the node with the given identifier.
func (in *Inspector) Select(id int) error {
	node := in.root.find(id)
	if node == nil {
		err := fmt.Errorf("no node with id %d in this model", id)
		core.LogError(err.Error())
		return err
	}
	in.selected = node
	if _, ok := in.poses[id]; !ok {
		in.poses[id] = &PoseParameters{}
	}
	return nil
}

// Walk hands the node tree to the UI in depth-first preorder.
func (in *Inspector) Walk(visit func(node *Node, depth int) bool) {
	in.root.Walk(visit)
}

// Pose returns the selected node's pose parameters.
func (in *Inspector) Pose() PoseParameters {
	return *in.poses[in.selected.ID()]
}

// SetPose replaces the selected node's pose, clamped to the slider ranges.
func (in *Inspector) SetPose(p PoseParameters) {
	stored := in.poses[in.selected.ID()]
	stored.Roll = core.Clamp(p.Roll, -poseAngleLimit, poseAngleLimit)
	stored.Pitch = core.Clamp(p.Pitch, -poseAngleLimit, poseAngleLimit)
	stored.Yaw = core.Clamp(p.Yaw, -poseAngleLimit, poseAngleLimit)
	stored.X = core.Clamp(p.X, -posePositionLimit, posePositionLimit)
	stored.Y = core.Clamp(p.Y, -posePositionLimit, posePositionLimit)
	stored.Z = core.Clamp(p.Z, -posePositionLimit, posePositionLimit)
}

// Apply pushes the selected node's pose into its applied transform. Called
// once per frame before the tree is drawn.
func (in *Inspector) Apply() {
	if in.selected == nil {
		return
	}
	in.selected.SetAppliedTransform(PoseMatrix(*in.poses[in.selected.ID()]))
}

// PoseMatrix converts pose parameters into a transform: rotate in the
// node's local space, then translate.
func PoseMatrix(p PoseParameters) mgl32.Mat4 {
	rotation := mgl32.AnglesToQuat(p.Pitch, p.Yaw, p.Roll, mgl32.XYZ).Mat4()
	return mgl32.Translate3D(p.X, p.Y, p.Z).Mul4(rotation)
}
