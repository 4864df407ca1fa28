// Package hub75 drives a 64x64 HUB75E LED matrix with binary-code
// modulation.
//
// The panel has no frame memory: it shows one row pair at a time and must be
// rescanned continuously. The engine runs as a two-event state machine
// driven from interrupt context. A transfer engine shifts a rendered line
// into the panel while the previous line's output-enable pulse runs, so the
// CPU work for a phase is hidden behind the transfer and the expensive
// row-pair reload is hidden behind the longest pulse.
//
// The engine owns scheduling and pixel encoding only. All hardware access
// goes through the four small interfaces below, implemented per target.
package hub75

import (
	"errors"
	"sync/atomic"

	"walkclock/framebuf"
)

// Phases is the number of BCM phases per row pair. Phase p lights the row
// for base<<p pulse ticks, so a 10-bit intensity plays out over one dwell.
const Phases = 10

// RowPairs is the number of scan lines. Each selects two rows 32 apart.
const RowPairs = 32

// LineBuf holds one rendered line as it goes out on the wire. Bytes 0..63
// carry R1,G1,B1,R2,G2,B2 in bits 0..5 for each column, byte 63 additionally
// carries the latch strobe in bit 6, and byte 64 drives all lines low after
// the latch.
type LineBuf [65]byte

// Transfer shifts a line buffer out to the panel, typically over DMA.
type Transfer interface {
	StartTransfer(buf []byte)
	Stop()
	AckComplete()
}

// PixelClock gates the shift clock that accompanies a transfer.
type PixelClock interface {
	Start()
	Stop()
}

// PulseTimer produces the one-shot output-enable pulse for a phase.
type PulseTimer interface {
	StartOneshot(ticks uint32)
	AckComplete()
}

// RowSelect drives the five panel address lines.
type RowSelect interface {
	SetRow(pair uint8)
}

// Config carries the engine's collaborators and tuning. The line buffers
// are supplied by the caller so targets can place them in DMA-reachable
// memory.
type Config struct {
	Transfer Transfer
	Clock    PixelClock
	Pulse    PulseTimer
	Row      RowSelect

	Buffers *[2]LineBuf

	// PulseBase is the phase-0 output-enable width in pulse timer ticks.
	// Phase p pulses for PulseBase << p ticks.
	PulseBase uint32
}

var errConfig = errors.New("hub75: incomplete config")

// Engine is the BCM scheduler. TransferComplete and PulseComplete are its
// interrupt handlers; they must not preempt each other. Everything else may
// be called from task context.
type Engine struct {
	tx    Transfer
	clk   PixelClock
	pulse PulseTimer
	row   RowSelect

	base  uint32
	lbufs *[2]LineBuf

	// Scan state. pair and phase name the position currently in flight.
	pair  uint8
	phase uint8
	buf   uint8

	// gbuf caches the current row pair, gamma-mapped, as 64 columns of
	// six channel words. Rendering a phase is then one bit test per
	// channel.
	gbuf [framebuf.Width * 6]uint16

	// active is the frame being scanned out; staged is picked up at the
	// next row pair 0 reload, so a swap is observed exactly once per
	// full frame.
	active *framebuf.Frame
	staged atomic.Pointer[framebuf.Frame]

	skip atomic.Uint32

	loads   uint32
	renders uint32
}

// New validates cfg and returns an idle engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Transfer == nil || cfg.Clock == nil || cfg.Pulse == nil ||
		cfg.Row == nil || cfg.Buffers == nil || cfg.PulseBase == 0 {
		return nil, errConfig
	}
	return &Engine{
		tx:    cfg.Transfer,
		clk:   cfg.Clock,
		pulse: cfg.Pulse,
		row:   cfg.Row,
		base:  cfg.PulseBase,
		lbufs: cfg.Buffers,
	}, nil
}

// SetFramebuffer stages fb as the next frame to scan out. The engine keeps
// reading the old frame until it next reloads row pair 0.
func (e *Engine) SetFramebuffer(fb *framebuf.Frame) {
	e.staged.Store(fb)
}

// SetBrightnessSkip dims the panel by dropping the n least significant BCM
// phases. 0 is full brightness, 10 is fully dark. Takes effect on the next
// phase render.
func (e *Engine) SetBrightnessSkip(n uint8) {
	if n > Phases {
		n = Phases
	}
	e.skip.Store(uint32(n))
}

// Position reports the row pair and phase currently in flight.
func (e *Engine) Position() (pair, phase uint8) { return e.pair, e.phase }

// Counts reports how many row-pair reloads and phase renders have run.
func (e *Engine) Counts() (loads, renders uint32) { return e.loads, e.renders }

// Start primes the pipeline and begins scanning: row pair 0 is loaded,
// phase 0 goes out on the wire, and phase 1 is pre-rendered into the idle
// buffer. The first transfer completion then behaves like a row boundary,
// so the phase counter is left at 0.
func (e *Engine) Start() {
	e.pair = 0
	e.phase = 0
	e.buf = 0
	e.loadRowPair()
	e.renderPhase(0)
	e.startTransfer()
	e.renderPhase(1)
}

// TransferComplete is the transfer-done interrupt handler. The line that
// just finished shifting has been latched by the render step, so its
// output-enable pulse is armed here and the pixel clock stops. At a row
// boundary (phase counter 0) the pulse is the longest one, phase 9's, and
// the next row pair's reload runs in its shadow.
func (e *Engine) TransferComplete() {
	e.tx.AckComplete()

	prev := e.phase
	if prev == 0 {
		prev = Phases
	}
	e.pulse.StartOneshot(e.base << (prev - 1))
	e.clk.Stop()

	if e.phase == 0 {
		e.phase = Phases - 1
		e.advance()
	}
}

// PulseComplete is the output-enable one-shot interrupt handler. The panel
// is dark again, so the next line starts transferring immediately and, for
// all but the last phase, the phase after it renders into the idle buffer.
func (e *Engine) PulseComplete() {
	e.pulse.AckComplete()
	e.startTransfer()

	if e.phase < Phases-1 {
		e.advance()
	} else {
		e.phase = 0
	}
}

func (e *Engine) startTransfer() {
	e.row.SetRow(e.pair)
	e.tx.StartTransfer(e.lbufs[e.buf][:])
	e.clk.Start()
	e.buf ^= 1
}

// advance steps to the next phase, rolling over to the next row pair, and
// renders it.
func (e *Engine) advance() {
	e.phase++
	if e.phase == Phases {
		e.phase = 0
		e.pair = (e.pair + 1) % RowPairs
		e.loadRowPair()
	}
	e.renderPhase(e.phase)
}

// loadRowPair gamma-maps the current row pair into the row cache. Row pair
// 0 also latches any staged framebuffer swap.
func (e *Engine) loadRowPair() {
	if e.pair == 0 {
		if fb := e.staged.Load(); fb != nil {
			e.active = fb
		}
	}
	e.loads++

	fb := e.active
	if fb == nil {
		for i := range e.gbuf {
			e.gbuf[i] = 0
		}
		return
	}

	top := &fb[e.pair]
	bot := &fb[e.pair+RowPairs]
	for col := 0; col < framebuf.Width; col++ {
		c := e.gbuf[col*6 : col*6+6]
		c[0] = Gamma[top[col][0]]
		c[1] = Gamma[top[col][1]]
		c[2] = Gamma[top[col][2]]
		c[3] = Gamma[bot[col][0]]
		c[4] = Gamma[bot[col][1]]
		c[5] = Gamma[bot[col][2]]
	}
}

// renderPhase encodes one phase of the cached row pair into the idle line
// buffer.
func (e *Engine) renderPhase(phase uint8) {
	e.renders++

	bit := uint(phase) + uint(e.skip.Load())
	if bit > Phases {
		bit = Phases
	}
	// Bit 10 of a 10-bit value is 0, so a fully skipped phase renders
	// dark without a special case.

	lbuf := &e.lbufs[e.buf]
	for col := 0; col < framebuf.Width; col++ {
		c := e.gbuf[col*6 : col*6+6]
		lbuf[col] = byte((c[0]>>bit)&1 |
			(c[1]>>bit)&1<<1 |
			(c[2]>>bit)&1<<2 |
			(c[3]>>bit)&1<<3 |
			(c[4]>>bit)&1<<4 |
			(c[5]>>bit)&1<<5)
	}

	// Latch on the final column, then release every line.
	lbuf[63] |= 1 << 6
	lbuf[64] = 0
}
