package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/framepace/audio"
	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/sim"
	"github.com/lixenwraith/framepace/status"
	"github.com/lixenwraith/framepace/vmath"
)

// hudRows is the number of screen rows reserved for the status overlay
const hudRows = 2

var (
	styleWalker = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePaused = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// host owns one simulation and draws it into a tcell screen once per frame
type host struct {
	screen    tcell.Screen
	loop      *engine.MainLoop
	clock     *engine.FrameClock
	mode      *engine.DeterminismMode
	reg       *status.Registry
	swarm     *sim.Swarm
	metronome *audio.Metronome

	seed    uint64
	walkers int
	width   int
	height  int
}

type hostOptions struct {
	Timing    engine.FrameTimingConfig
	Seed      uint64
	Walkers   int
	Clock     *engine.FrameClock
	Mode      *engine.DeterminismMode
	Metronome *audio.Metronome
}

func newHost(screen tcell.Screen, opts hostOptions) (*host, error) {
	loop, err := engine.NewMainLoop(opts.Timing)
	if err != nil {
		return nil, err
	}

	reg := status.NewRegistry()
	loop.AttachStatus(reg)

	h := &host{
		screen:    screen,
		loop:      loop,
		clock:     opts.Clock,
		mode:      opts.Mode,
		reg:       reg,
		metronome: opts.Metronome,
		seed:      opts.Seed,
		walkers:   opts.Walkers,
	}
	h.width, h.height = screen.Size()
	h.respawn()
	return h, nil
}

// respawn rebuilds the swarm for the current screen size and restarts the loop
func (h *host) respawn() {
	fieldH := max(h.height-hudRows, 1)
	h.swarm = sim.NewSwarm(h.walkers, sim.NewBounds(max(h.width, 1), fieldH), h.seed, h.mode)
	h.loop.Reset()
	log.Printf("respawn: %d walkers on %dx%d seed=%d", h.walkers, h.width, fieldH, h.seed)
}

// frame measures the wall-clock delta, runs the due ticks and redraws
func (h *host) frame() {
	h.advance(h.clock.Tick())
	h.draw()
}

// advance is frame without measuring or drawing
func (h *host) advance(dt float64) {
	h.loop.Update(dt)

	steps := h.loop.GetSimStepsThisFrame()
	stepDt := h.loop.GetStepDt()
	for i := 0; i < steps; i++ {
		h.swarm.Step(stepDt)
	}
	if h.metronome != nil {
		h.metronome.OnTicks(steps)
	}
	if steps == h.loop.MaxStepsPerUpdate() && steps > 1 {
		log.Printf("frame %d: hit catch-up limit (%d steps, dt=%.4f)", h.loop.GetFrameCount(), steps, dt)
	}
}

func (h *host) draw() {
	h.screen.Clear()

	alpha := h.loop.GetInterpolationAlpha()
	for i := 0; i < h.swarm.Len(); i++ {
		p := h.swarm.Render(i, alpha)
		// Round to nearest cell
		x := vmath.ToInt(p.X + vmath.Half)
		y := vmath.ToInt(p.Y+vmath.Half) + hudRows
		if x < 0 || x >= h.width || y < hudRows || y >= h.height {
			continue
		}
		h.screen.SetContent(x, y, 'o', nil, styleWalker)
	}

	h.drawText(0, 0, h.statusLine(), styleHUD)
	help := "[space] pause  [d] determinism  [r] respawn  [q] quit"
	if h.clock.IsPaused() {
		h.drawText(0, 1, "PAUSED  "+help, stylePaused)
	} else {
		h.drawText(0, 1, help, styleHUD)
	}

	h.screen.Show()
}

func (h *host) statusLine() string {
	return fmt.Sprintf("tps=%.0f steps=%d sim=%.2fs alpha=%.3f acc=%.4f clamped=%d det=%t",
		h.loop.Config().TickRate(),
		h.loop.GetSimStepsThisFrame(),
		h.loop.GetSimTime(),
		h.loop.GetInterpolationAlpha(),
		h.loop.GetAccumulator(),
		h.loop.GetClampedFrames(),
		h.mode.IsEnabled(),
	)
}

func (h *host) drawText(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= h.height {
		return
	}
	for _, r := range s {
		if x >= h.width {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// handleEvent applies one input event, returns false when the host should exit
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				paused := h.clock.Toggle()
				log.Printf("pause=%t total_paused=%s", paused, h.clock.TotalPaused())
			case 'd':
				h.mode.SetEnabled(!h.mode.IsEnabled())
				log.Printf("determinism=%t", h.mode.IsEnabled())
			case 'r':
				h.respawn()
			}
		}
	case *tcell.EventResize:
		h.width, h.height = ev.Size()
		h.screen.Sync()
		h.respawn()
	}
	return true
}
