package musclemap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// SelectionStore is the interface for optional ECS integration.
// When set on a Viewer, every muscle selection is forwarded to it.
type SelectionStore interface {
	EmitSelection(event SelectionEvent)
}

// SelectionEvent carries a resolved click for the ECS bridge.
type SelectionEvent struct {
	Key   string
	Label string
	// Keys is the full highlighted set, including linked keys.
	Keys []string
	// X and Y are the click position in surface pixels.
	X, Y float64
	// Distance is the world-space distance from the camera to the hit.
	Distance float64
}

// loadResult is handed from the loader goroutine to the event loop.
type loadResult struct {
	gen  uint64
	url  string
	root *Node
	err  error
}

// Viewer is the muscle-selection viewer. It owns the scene, the loaded
// model, the muscle index, and the highlight state, and is driven entirely
// from the Ebitengine loop: every method must be called from the goroutine
// running Update and Draw.
type Viewer struct {
	cfg     Config
	logger  *slog.Logger
	loader  Loader
	catalog *Catalog

	scene       *Scene
	index       *MuscleIndex
	highlighter *Highlighter
	orbit       *OrbitController
	model       *Node
	gender      Gender

	onMuscleSelect func(key string)
	onLoadError    func(url string, err error)
	store          SelectionStore
	runner         *TestRunner
	debug          bool
	livePointer    bool

	handles    []CallbackHandle
	results    chan loadResult
	generation uint64
	loading    bool
	lastErr    error
	cancel     context.CancelFunc
	disposed   bool
}

// NewViewer validates cfg, builds the scene, and starts loading the model
// for cfg.Gender in the background. A nil loader uses a GLTFLoader.
func NewViewer(cfg Config, loader Loader) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog := DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	if loader == nil {
		loader = NewGLTFLoader()
	}

	v := &Viewer{
		cfg:     cfg,
		logger:  cfg.logger(),
		loader:  loader,
		catalog: catalog,
		gender:  cfg.Gender,
		results: make(chan loadResult),
	}
	v.init()
	return v, nil
}

// init builds a fresh scene, registers input callbacks, and starts the
// model load for the current gender.
func (v *Viewer) init() {
	v.scene = NewScene(v.cfg)
	v.scene.logger = v.logger
	v.scene.SetDebugMode(v.debug)
	v.scene.SetLivePointer(v.livePointer)
	v.index = NewMuscleIndex()
	v.highlighter = NewHighlighter(v.index, v.catalog, v.cfg.Highlight.Base, v.cfg.Highlight.Color)
	v.orbit = NewOrbitController(v.cfg.Orbit)

	s := v.scene
	v.handles = append(v.handles,
		s.OnPointerDown(func(ctx PointerContext) {
			v.PointerDown(ctx.X, ctx.Y)
		}),
		s.OnPointerMove(func(ctx PointerContext) {
			if ctx.Down {
				v.PointerMove(ctx.X, ctx.Y)
			}
		}),
		s.OnPointerUp(func(ctx PointerContext) {
			v.PointerUp(ctx.X, ctx.Y)
		}),
		s.OnClick(func(ctx ClickContext) {
			v.Click(ctx.X, ctx.Y)
		}),
		s.OnResize(func(ctx ResizeContext) {
			v.logger.Debug("surface resized", "width", ctx.Width, "height", ctx.Height)
		}),
	)
	if v.runner != nil {
		v.runner.viewer = v
		s.SetTestRunner(v.runner)
	}
	v.startLoad()
}

// startLoad runs the loader on its own goroutine. The result is applied by
// Update under the generation it was started with. A load canceled by
// teardown disposes its own root.
func (v *Viewer) startLoad() {
	url, err := v.cfg.ModelURL(v.gender)
	if err != nil {
		v.logger.Error("no model for gender", "gender", v.gender, "err", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.generation++
	v.loading = true
	v.lastErr = nil

	gen := v.generation
	loader := v.loader
	results := v.results
	go func() {
		root, err := loader.Load(ctx, url)
		if ctx.Err() != nil {
			if root != nil {
				root.Dispose()
			}
			return
		}
		// Unbuffered: the root changes hands only when the event loop
		// receives it. A cancel before that leaves it with this goroutine.
		select {
		case results <- loadResult{gen: gen, url: url, root: root, err: err}:
		case <-ctx.Done():
			if root != nil {
				root.Dispose()
			}
		}
	}()
}

// drainLoads applies every load result that has arrived.
func (v *Viewer) drainLoads() {
	for {
		select {
		case r := <-v.results:
			v.applyLoad(r)
		default:
			return
		}
	}
}

// applyLoad attaches a finished model, or discards it when the viewer was
// torn down or a newer load superseded it.
func (v *Viewer) applyLoad(r loadResult) {
	if v.disposed || r.gen != v.generation {
		if r.root != nil {
			r.root.Dispose()
		}
		v.logger.Debug("discarded stale model load", "url", r.url)
		return
	}
	v.loading = false
	if r.err == nil && r.root == nil {
		r.err = errors.New("musclemap: loader returned no model")
	}
	if r.err != nil {
		v.lastErr = r.err
		v.logger.Error("model load failed", "url", r.url, "err", r.err)
		if v.onLoadError != nil {
			v.onLoadError(r.url, r.err)
		}
		return
	}

	n := Annotate(r.root, v.catalog, v.cfg.Highlight.Base, v.index)
	applyRestingPose(r.root, v.cfg.Model)
	v.scene.Root().AddChild(r.root)
	v.model = r.root
	v.logger.Info("model loaded", "url", r.url, "drawables", n, "muscles", v.index.Len())
}

// WaitLoaded blocks until the current load finishes and applies it. Returns
// the load error, or ctx's error if it ends first. Intended for headless use
// and tests; interactive callers let Update apply the result.
func (v *Viewer) WaitLoaded(ctx context.Context) error {
	for v.loading && !v.disposed {
		select {
		case r := <-v.results:
			v.applyLoad(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return v.lastErr
}

// Loading reports whether a model load is in flight.
func (v *Viewer) Loading() bool {
	return v.loading
}

// --- ebiten.Game ---

// Update applies finished loads and advances the scene.
func (v *Viewer) Update() error {
	if v == nil || v.disposed {
		return nil
	}
	v.drainLoads()
	v.scene.Update()
	return nil
}

// Draw renders the current frame.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v == nil || v.disposed {
		return
	}
	v.scene.Draw(screen)
}

// Layout resizes the scene to the outside size. Zero sizes keep the
// previous surface.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if v == nil || v.disposed {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	v.Resize(outsideWidth, outsideHeight)
	return v.scene.Size()
}

// --- Lifecycle and interaction ---

// Resize updates the camera and surface for a w×h container. Non-positive
// sizes are ignored.
func (v *Viewer) Resize(w, h int) {
	if v == nil || v.disposed {
		return
	}
	v.scene.Resize(w, h)
}

// PointerDown starts a drag at (x, y).
func (v *Viewer) PointerDown(x, y float64) {
	if v == nil || v.disposed {
		return
	}
	v.orbit.Begin(x, y)
}

// PointerMove rotates the model by the movement since the last event while
// a drag is in progress.
func (v *Viewer) PointerMove(x, y float64) {
	if v == nil || v.disposed {
		return
	}
	if v.orbit.Move(v.model, x, y) && v.model != nil {
		v.scene.CancelTweens(v.model)
	}
}

// PointerUp ends the drag.
func (v *Viewer) PointerUp(x, y float64) {
	if v == nil || v.disposed {
		return
	}
	v.orbit.End()
}

// Click resolves the pixel (x, y) to a muscle, highlights it with its linked
// keys, and reports it. Returns the key and whether anything was selected.
func (v *Viewer) Click(x, y float64) (string, bool) {
	if v == nil || v.disposed {
		return "", false
	}
	hit, ok := v.scene.Raycast(x, y)
	if !ok {
		return "", false
	}
	key, ok := muscleKeyOf(hit.Node)
	if !ok {
		v.logger.Debug("hit drawable without muscle key", "node", hit.Node.Name)
		return "", false
	}

	v.highlighter.HighlightMuscle(key)
	if v.onMuscleSelect != nil {
		v.onMuscleSelect(key)
	}
	if v.store != nil {
		v.store.EmitSelection(SelectionEvent{
			Key:      key,
			Label:    hit.Node.Drawable.MuscleLabel,
			Keys:     v.highlighter.Current(),
			X:        x,
			Y:        y,
			Distance: hit.Distance,
		})
	}
	return key, true
}

// HighlightMuscle highlights key and its linked keys without reporting a
// selection.
func (v *Viewer) HighlightMuscle(key string) {
	if v == nil || v.disposed {
		return
	}
	v.highlighter.HighlightMuscle(key)
}

// ClearHighlight restores every highlighted muscle to the base color.
func (v *Viewer) ClearHighlight() {
	if v == nil || v.disposed {
		return
	}
	v.highlighter.Clear()
}

// HighlightedKeys returns the currently highlighted keys.
func (v *Viewer) HighlightedKeys() []string {
	if v == nil || v.disposed {
		return nil
	}
	return v.highlighter.Current()
}

// MuscleKeys returns the keys of the loaded model in index order.
func (v *Viewer) MuscleKeys() []string {
	if v == nil || v.disposed {
		return nil
	}
	return v.index.Keys()
}

// MuscleLabel returns the display label of key, or "" if key is not loaded.
func (v *Viewer) MuscleLabel(key string) string {
	if v == nil || v.disposed {
		return ""
	}
	for _, n := range v.index.Nodes(key) {
		if n.Drawable != nil && n.Drawable.MuscleLabel != "" {
			return n.Drawable.MuscleLabel
		}
	}
	return ""
}

// MuscleNodes returns the drawables registered under key. The returned slice
// MUST NOT be mutated.
func (v *Viewer) MuscleNodes(key string) []*Node {
	if v == nil || v.disposed {
		return nil
	}
	return v.index.Nodes(key)
}

// ResetPose animates the model back to its resting pose over duration
// seconds.
func (v *Viewer) ResetPose(duration float32) {
	if v == nil || v.disposed || v.model == nil {
		return
	}
	m := v.cfg.Model
	v.scene.CancelTweens(v.model)
	if duration <= 0 {
		applyRestingPose(v.model, m)
		return
	}
	v.scene.AddTween(TweenRotation(v.model, Vec3{X: m.RestingTilt}, duration, ease.OutCubic))
	v.scene.AddTween(TweenPosition(v.model, Vec3{Y: m.OffsetY}, duration, ease.OutCubic))
}

// SetGender switches the model variant. A change tears the scene down and
// rebuilds it from scratch. Unknown genders return ErrUnknownGender and
// leave the viewer untouched.
func (v *Viewer) SetGender(g Gender) error {
	if v == nil || v.disposed {
		return nil
	}
	if _, err := v.cfg.ModelURL(g); err != nil {
		return err
	}
	if g == v.gender {
		return nil
	}
	v.teardown()
	v.gender = g
	v.cfg.Gender = g
	v.init()
	v.logger.Info("gender changed", "gender", g)
	return nil
}

// Gender returns the active model variant.
func (v *Viewer) Gender() Gender {
	return v.gender
}

// OnMuscleSelect sets the callback invoked once per successful click.
func (v *Viewer) OnMuscleSelect(fn func(key string)) {
	v.onMuscleSelect = fn
}

// OnLoadError sets the callback invoked when a model fails to load.
func (v *Viewer) OnLoadError(fn func(url string, err error)) {
	v.onLoadError = fn
}

// SetSelectionStore sets the optional ECS bridge.
func (v *Viewer) SetSelectionStore(store SelectionStore) {
	v.store = store
}

// SetTestRunner attaches a scripted input runner. The runner survives
// gender changes.
func (v *Viewer) SetTestRunner(r *TestRunner) {
	v.runner = r
	if r != nil {
		r.viewer = v
	}
	if v.scene != nil {
		v.scene.SetTestRunner(r)
	}
}

// SetDebugMode enables per-frame stats logging.
func (v *Viewer) SetDebugMode(enabled bool) {
	v.debug = enabled
	if v.scene != nil {
		v.scene.SetDebugMode(enabled)
	}
}

// SetLivePointer enables polling of the real mouse and touch state. It
// carries over to the scene rebuilt by SetGender.
func (v *Viewer) SetLivePointer(enabled bool) {
	v.livePointer = enabled
	if v.scene != nil {
		v.scene.SetLivePointer(enabled)
	}
}

// Scene returns the viewer's scene.
func (v *Viewer) Scene() *Scene {
	return v.scene
}

// Model returns the loaded model root, or nil before the load completes.
func (v *Viewer) Model() *Node {
	return v.model
}

// Dispose cancels any in-flight load, removes all callbacks, resets the
// highlight state, and releases every graphics resource. Safe to call more
// than once and before the load completes.
func (v *Viewer) Dispose() {
	if v == nil || v.disposed {
		return
	}
	v.teardown()
	v.disposed = true
	v.logger.Debug("viewer disposed")
}

// IsDisposed reports whether Dispose has been called.
func (v *Viewer) IsDisposed() bool {
	return v != nil && v.disposed
}

// teardown releases everything init created.
func (v *Viewer) teardown() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.loading = false
	for _, h := range v.handles {
		h.Remove()
	}
	v.handles = v.handles[:0]
	if v.orbit != nil {
		v.orbit.End()
	}
	if v.highlighter != nil {
		v.highlighter.Reset()
	}
	if v.index != nil {
		v.index.Clear()
	}
	if v.scene != nil {
		v.scene.Dispose()
	}
	v.model = nil
}
