package musclemap

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Viewer to ebiten.Game and draws the optional FPS overlay.
type game struct {
	viewer  *Viewer
	showFPS bool
}

func (g *game) Update() error {
	return g.viewer.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewer.Layout(outsideWidth, outsideHeight)
}

// Run opens a resizable window and drives v until the window closes. The
// viewer is disposed on return.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := v.Scene().Size()
		cfg.Width, cfg.Height = w, h
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v.Resize(cfg.Width, cfg.Height)
	v.SetLivePointer(true)
	defer v.Dispose()

	if err := ebiten.RunGame(&game{viewer: v, showFPS: cfg.ShowFPS}); err != nil {
		return fmt.Errorf("musclemap: run: %w", err)
	}
	return nil
}
