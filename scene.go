package musclemap

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultFaceCap = 4096

// Scene is the top-level object that owns the node tree, camera, lights,
// input state, and render buffers.
type Scene struct {
	root   *Node
	camera *Camera

	ambient  *Node
	keyLight *Node

	// ClearColor fills the surface before each frame.
	ClearColor Color
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	logger *slog.Logger
	debug  bool

	// Render state
	faces      []faceCommand
	sortBuf    []faceCommand
	batches    []triangleBatch
	batchCount int
	whitePixel *ebiten.Image

	tweens []*TweenGroup

	// Input state
	handlers      handlerRegistry
	pointer       pointerState
	clickSuppress float64
	livePointer   bool
	injectQueue   []syntheticPointerEvent
	testRunner    *TestRunner

	screenshotQueue []string

	disposed bool
}

// NewScene creates a scene with a perspective camera placed per cfg.Camera,
// sized to cfg.Width×cfg.Height, and one ambient plus one directional light
// attached to the root.
func NewScene(cfg Config) *Scene {
	cam := newCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far,
		float64(cfg.Width), float64(cfg.Height))
	cam.Position = cfg.Camera.Position
	cam.LookAt(cfg.Camera.Target)

	s := &Scene{
		root:          NewGroup("root"),
		camera:        cam,
		ClearColor:    cfg.ClearColor,
		ScreenshotDir: defaultScreenshotDir,
		logger:        cfg.logger(),
		faces:         make([]faceCommand, 0, defaultFaceCap),
		sortBuf:       make([]faceCommand, 0, defaultFaceCap),
		clickSuppress: cfg.Orbit.ClickSuppressDistance,
	}

	lc := cfg.Lights
	s.ambient = NewAmbientLight(lc.AmbientColor, lc.AmbientIntensity)
	s.keyLight = NewDirectionalLight(lc.KeyColor, lc.KeyIntensity, lc.KeyPosition)
	s.root.AddChild(s.ambient)
	s.root.AddChild(s.keyLight)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Resize recomputes the camera aspect ratio and projection for a w×h
// surface. Non-positive sizes are ignored. Registered resize callbacks fire
// only when the size was applied.
func (s *Scene) Resize(w, h int) {
	if s.disposed {
		return
	}
	pw, ph := s.camera.Size()
	if !s.camera.SetSize(float64(w), float64(h)) {
		return
	}
	if pw == float64(w) && ph == float64(h) {
		return
	}
	s.fireResize(w, h)
}

// Size returns the current surface size in pixels.
func (s *Scene) Size() (w, h int) {
	fw, fh := s.camera.Size()
	return int(fw), int(fh)
}

// Update refreshes world transforms, advances tweens, and processes input.
func (s *Scene) Update() {
	if s.disposed {
		return
	}
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	s.updateTweens(dt)
	updateWorldTransform(s.root, identityMat4, false)
	s.processInput()
}

// Draw renders the scene from the current camera into screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	screen.Fill(s.ClearColor.RGBA())

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateWorldTransform(s.root, identityMat4, false)
	s.compileFaces()
	s.buildBatches()

	if s.debug {
		stats.compileTime = time.Since(t0)
		stats.faceCount = len(s.faces)
		t0 = time.Now()
	}

	calls := s.submitBatches(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = calls
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Dispose releases the renderer's images, disposes every drawable's
// geometry and materials, clears the graph, and removes all registered
// callbacks. Safe to call more than once.
func (s *Scene) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true

	if s.whitePixel != nil {
		s.whitePixel.Deallocate()
		s.whitePixel = nil
	}
	if s.root != nil {
		s.root.Dispose()
	}
	s.handlers.clear()
	s.pointer = pointerState{}
	s.injectQueue = nil
	s.testRunner = nil
	s.screenshotQueue = nil
	s.tweens = nil
	s.faces = nil
	s.sortBuf = nil
	s.batches = nil
	s.batchCount = 0
}

// IsDisposed reports whether Dispose has been called.
func (s *Scene) IsDisposed() bool {
	return s.disposed
}

// Raycast casts a ray from the camera through the pixel (sx, sy) and returns
// the nearest drawable hit.
func (s *Scene) Raycast(sx, sy float64) (Intersection, bool) {
	if s.disposed {
		return Intersection{}, false
	}
	updateWorldTransform(s.root, identityMat4, false)
	nx, ny := s.camera.ScreenToNDC(sx, sy)
	return Raycast(s.root, s.camera.RayFromNDC(nx, ny))
}
