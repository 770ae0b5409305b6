package core

const avgCount uint8 = 30

// Metrics keeps a rolling average of frame times plus a frames-per-second
// counter. One instance is owned by the engine and fed once per frame.
type Metrics struct {
	frameAVGCounter    uint8
	msTimes            [avgCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == avgCount-1 {
		m.msAvg = 0
		for i := uint8(0); i < avgCount; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(avgCount)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= avgCount

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all frames.
	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
