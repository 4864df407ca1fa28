//go:build !tinygo

package hal

import (
	"sync"

	"walkclock/framebuf"
	"walkclock/hub75"
)

// hostMatrix simulates the panel electrically rather than peeking at the
// framebuffer: it latches each shifted line and integrates OE pulse time
// per pixel, so the window shows exactly what the interrupt pipeline puts
// on the wire.
type hostMatrix struct {
	mu sync.Mutex

	onTC func()
	onPC func()

	row     uint8
	pending hostLine
	latched hostLine

	accum [framebuf.Height][framebuf.Width][3]uint64
	total uint64

	img framebuf.Frame
}

type hostLine struct {
	row  uint8
	data hub75.LineBuf
	ok   bool
}

func newHostMatrix() *hostMatrix {
	return &hostMatrix{}
}

func (m *hostMatrix) Transfer() hub75.Transfer { return matrixTransfer{m} }
func (m *hostMatrix) Clock() hub75.PixelClock  { return matrixClock{m} }
func (m *hostMatrix) Pulse() hub75.PulseTimer  { return matrixPulse{m} }
func (m *hostMatrix) Row() hub75.RowSelect     { return matrixRow{m} }

func (m *hostMatrix) Bind(onTransferComplete, onPulseComplete func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTC = onTransferComplete
	m.onPC = onPulseComplete
}

// Scan drives one complete refresh through the bound interrupt handlers
// and rebuilds the reconstructed image from the pulse times it observed.
func (m *hostMatrix) Scan() {
	m.mu.Lock()
	onTC, onPC := m.onTC, m.onPC
	for y := range m.accum {
		for x := range m.accum[y] {
			m.accum[y][x] = [3]uint64{}
		}
	}
	m.total = 0
	m.mu.Unlock()

	if onTC == nil || onPC == nil {
		return
	}
	for i := 0; i < hub75.RowPairs*hub75.Phases; i++ {
		onTC()
		onPC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A fully-lit pixel accrues every pulse its row pair was shown for,
	// which is the total armed time divided across the row pairs.
	full := m.total / hub75.RowPairs
	for y := range m.img {
		for x := range m.img[y] {
			for ch := 0; ch < 3; ch++ {
				var v uint64
				if full > 0 {
					v = m.accum[y][x][ch] * 255 / full
				}
				if v > 255 {
					v = 255
				}
				m.img[y][x][ch] = uint8(v)
			}
		}
	}
}

// Image copies the latest reconstructed panel image into dst.
func (m *hostMatrix) Image(dst *framebuf.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst = m.img
}

func (m *hostMatrix) startTransfer(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = hostLine{row: m.row, ok: true}
	copy(m.pending.data[:], data)
}

func (m *hostMatrix) ackTransfer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	// The latch bit on the final byte moves the completed line into the
	// panel's output register.
	m.latched = m.pending
}

func (m *hostMatrix) pulse(ticks uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += uint64(ticks)
	if !m.latched.ok {
		return
	}
	top := int(m.latched.row)
	bottom := top + hub75.RowPairs
	for x := 0; x < framebuf.Width; x++ {
		bits := m.latched.data[x]
		for ch := 0; ch < 3; ch++ {
			if bits&(1<<ch) != 0 {
				m.accum[top][x][ch] += uint64(ticks)
			}
			if bits&(1<<(ch+3)) != 0 {
				m.accum[bottom][x][ch] += uint64(ticks)
			}
		}
	}
}

func (m *hostMatrix) setRow(row uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.row = row % hub75.RowPairs
}

type matrixTransfer struct{ m *hostMatrix }

func (t matrixTransfer) StartTransfer(data []byte) { t.m.startTransfer(data) }
func (t matrixTransfer) Stop()                     {}
func (t matrixTransfer) AckComplete()              { t.m.ackTransfer() }

type matrixClock struct{ m *hostMatrix }

func (c matrixClock) Start() {}
func (c matrixClock) Stop()  {}

type matrixPulse struct{ m *hostMatrix }

func (p matrixPulse) StartOneshot(ticks uint32) { p.m.pulse(ticks) }
func (p matrixPulse) AckComplete()              {}

type matrixRow struct{ m *hostMatrix }

func (r matrixRow) SetRow(row uint8) { r.m.setRow(row) }
