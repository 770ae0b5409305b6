package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// pipelineState is the currently bound state of a HeadlessDevice. It is
// copied wholesale into a Submission on every draw.
type pipelineState struct {
	Topology        metadata.PrimitiveTopology
	VertexBufferTag string
	VertexCount     uint32
	IndexBufferTag  string
	IndexCount      uint32
	VertexShader    string
	PixelShader     string
	InputLayout     string
	Textures        map[uint32]*metadata.TextureData
	SamplerFilter   metadata.TextureFilter
	SamplerRepeat   metadata.TextureRepeat
	Materials       map[uint32]metadata.MaterialConstants
	Transform       mgl32.Mat4
}

// Submission is one recorded indexed draw with the state bound at submit time.
type Submission struct {
	State pipelineState
	Count uint32
}

// HeadlessDevice implements Device without a GPU. It records every bind call
// and draw submission, which makes it both the fallback backend when no
// swapchain is available and the double that package tests inspect.
type HeadlessDevice struct {
	state       pipelineState
	frameActive bool

	// BindLog holds one entry per bind call in call order, reset each frame.
	BindLog []string
	// Submissions holds every draw since the last Reset.
	Submissions []Submission
	// FrameCount counts completed frames.
	FrameCount uint64
}

func NewHeadlessDevice() *HeadlessDevice {
	return &HeadlessDevice{
		state: newPipelineState(),
	}
}

func newPipelineState() pipelineState {
	return pipelineState{
		Textures:  make(map[uint32]*metadata.TextureData),
		Materials: make(map[uint32]metadata.MaterialConstants),
		Transform: mgl32.Ident4(),
	}
}

func (d *HeadlessDevice) BeginFrame() error {
	if d.frameActive {
		return fmt.Errorf("BeginFrame called with a frame already active")
	}
	d.frameActive = true
	d.BindLog = d.BindLog[:0]
	return nil
}

func (d *HeadlessDevice) EndFrame() error {
	if !d.frameActive {
		return fmt.Errorf("EndFrame called without an active frame")
	}
	d.frameActive = false
	d.FrameCount++
	return nil
}

func (d *HeadlessDevice) Clear(r, g, b, a float32) {
	d.log("clear")
}

func (d *HeadlessDevice) BindTopology(topology metadata.PrimitiveTopology) {
	d.state.Topology = topology
	d.log("topology:%s", topology)
}

func (d *HeadlessDevice) BindVertexBuffer(tag string, vertices []metadata.Vertex3D) {
	d.state.VertexBufferTag = tag
	d.state.VertexCount = uint32(len(vertices))
	d.log("vertex_buffer:%s", tag)
}

func (d *HeadlessDevice) BindIndexBuffer(tag string, indices []uint32) {
	d.state.IndexBufferTag = tag
	d.state.IndexCount = uint32(len(indices))
	d.log("index_buffer:%s", tag)
}

func (d *HeadlessDevice) BindVertexShader(name string, source []byte) {
	d.state.VertexShader = name
	d.log("vertex_shader:%s", name)
}

func (d *HeadlessDevice) BindPixelShader(name string, source []byte) {
	d.state.PixelShader = name
	d.log("pixel_shader:%s", name)
}

func (d *HeadlessDevice) BindInputLayout(shaderName string, elements []metadata.InputElement) {
	d.state.InputLayout = shaderName
	d.log("input_layout:%s", shaderName)
}

func (d *HeadlessDevice) BindTexture(slot uint32, texture *metadata.TextureData) {
	d.state.Textures[slot] = texture
	d.log("texture:%d:%s", slot, texture.Name)
}

func (d *HeadlessDevice) BindSampler(filter metadata.TextureFilter, repeat metadata.TextureRepeat) {
	d.state.SamplerFilter = filter
	d.state.SamplerRepeat = repeat
	d.log("sampler")
}

func (d *HeadlessDevice) BindMaterial(slot uint32, constants metadata.MaterialConstants) {
	d.state.Materials[slot] = constants
	d.log("material:%d", slot)
}

func (d *HeadlessDevice) BindTransform(model mgl32.Mat4) {
	d.state.Transform = model
	d.log("transform")
}

func (d *HeadlessDevice) DrawIndexed(count uint32) {
	snapshot := d.state
	snapshot.Textures = make(map[uint32]*metadata.TextureData, len(d.state.Textures))
	for k, v := range d.state.Textures {
		snapshot.Textures[k] = v
	}
	snapshot.Materials = make(map[uint32]metadata.MaterialConstants, len(d.state.Materials))
	for k, v := range d.state.Materials {
		snapshot.Materials[k] = v
	}
	d.Submissions = append(d.Submissions, Submission{State: snapshot, Count: count})

	// Texture and material state does not carry across draws. The next
	// drawable binds its own full pipeline state.
	d.state.Textures = make(map[uint32]*metadata.TextureData)
	d.state.Materials = make(map[uint32]metadata.MaterialConstants)
}

// Reset drops all recorded submissions and state.
func (d *HeadlessDevice) Reset() {
	d.state = newPipelineState()
	d.BindLog = nil
	d.Submissions = nil
}

func (d *HeadlessDevice) log(format string, args ...interface{}) {
	d.BindLog = append(d.BindLog, fmt.Sprintf(format, args...))
}
