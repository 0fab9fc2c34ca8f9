package starmap

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window. The map follows the new
	// size on the next frame.
	Resizable bool
	// ShowFPS adds an FPS/TPS line to the map overlay.
	ShowFPS bool
	// OnUpdate runs after the map's Update every tick. Returning an error
	// ends the loop; return ebiten.Termination for a clean exit.
	OnUpdate func() error
	// PostDraw runs after the map has drawn. The screen keeps the previous
	// frame when the map skips drawing, so anything drawn here must be
	// opaque, or call Map.MarkNeedsRender when it changes.
	PostDraw func(screen *ebiten.Image)
}

// Run opens a window and drives m until the window closes or OnUpdate
// returns an error. Frame scheduling starts before the first frame and is
// cancelled, with its resize subscription, when Run returns.
func Run(m *Map, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		m.SetShowFPS(true)
	}
	// Skipped frames rely on the screen keeping its contents.
	ebiten.SetScreenClearedEveryFrame(false)

	resize := NewResizeNotifier()
	cancel := m.Start(resize)
	defer cancel()

	err := ebiten.RunGame(&game{m: m, cfg: cfg, resize: resize})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts a Map to ebiten.Game.
type game struct {
	m      *Map
	cfg    RunConfig
	resize *ResizeNotifier
}

func (g *game) Update() error {
	if !g.m.Running() {
		return ebiten.Termination
	}
	g.m.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.m.Draw(screen)
	if g.cfg.PostDraw != nil {
		g.cfg.PostDraw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize.Notify(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// ResizeNotifier is a ResizeSource fed by the host's layout pass. It only
// notifies when the size actually changes.
type ResizeNotifier struct {
	subs          map[uint32]func(width, height int)
	nextID        uint32
	width, height int
}

// NewResizeNotifier creates a notifier with no subscribers.
func NewResizeNotifier() *ResizeNotifier {
	return &ResizeNotifier{subs: make(map[uint32]func(int, int))}
}

// OnResize registers fn and returns a function that unregisters it.
func (n *ResizeNotifier) OnResize(fn func(width, height int)) func() {
	n.nextID++
	id := n.nextID
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

// Notify reports the current size, calling every subscriber if it differs
// from the last reported size.
func (n *ResizeNotifier) Notify(width, height int) {
	if width == n.width && height == n.height {
		return
	}
	n.width, n.height = width, height
	for _, fn := range n.subs {
		fn(width, height)
	}
}

// Subscribers returns the number of registered callbacks.
func (n *ResizeNotifier) Subscribers() int {
	return len(n.subs)
}
