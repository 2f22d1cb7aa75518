package musclemap

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultScreenshotDir = "screenshots"

// Screenshot asks for the next drawn frame, highlights included, to be saved
// as <ScreenshotDir>/<timestamp>_<label>.png. Several labels queued in one
// frame each get a copy of that frame.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots runs after the model is drawn. Write failures are logged
// and never interrupt rendering.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.logger.Error("screenshot dir", "dir", s.ScreenshotDir, "err", err)
		return
	}

	// Faces are drawn opaque over an opaque clear color, so the
	// premultiplied pixels can be stored as-is.
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(s.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			s.logger.Error("screenshot", "label", label, "err", err)
			continue
		}
		s.logger.Info("screenshot saved", "path", path)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.'; anything else in a
// label becomes '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
