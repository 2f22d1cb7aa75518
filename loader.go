package musclemap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Loader fetches and decodes a model into an unattached node graph.
type Loader interface {
	Load(ctx context.Context, url string) (*Node, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) (*Node, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (*Node, error) {
	return f(ctx, url)
}

// unlitExtension marks glTF materials that ignore lighting.
const unlitExtension = "KHR_materials_unlit"

// GLTFLoader loads glTF 2.0 assets (.gltf or .glb) from a local path or an
// http(s) URL. Remote assets must be self-contained: binary .glb or .gltf
// with embedded buffers.
type GLTFLoader struct {
	// Client is used for http(s) URLs. Defaults to http.DefaultClient.
	Client *http.Client
}

// NewGLTFLoader creates a loader using http.DefaultClient.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// Load decodes the asset at url and converts its default scene.
func (l *GLTFLoader) Load(ctx context.Context, url string) (*Node, error) {
	doc, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("musclemap: load %s: %w", url, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("musclemap: load %s: %w", url, err)
	}
	root, err := buildModel(doc, url)
	if err != nil {
		return nil, fmt.Errorf("musclemap: load %s: %w", url, err)
	}
	return root, nil
}

func (l *GLTFLoader) fetch(ctx context.Context, url string) (*gltf.Document, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return gltf.Open(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// modelBuilder converts a decoded document into a node graph. Materials are
// shared between the drawables that reference them, as authored; Annotate
// clones them before any are mutated.
type modelBuilder struct {
	doc       *gltf.Document
	materials []Material
	fallback  Material
	visiting  map[int]bool
}

// buildModel converts the document's default scene (or every root node if
// no scene is set) into a group named after url.
func buildModel(doc *gltf.Document, url string) (*Node, error) {
	b := &modelBuilder{
		doc:      doc,
		visiting: make(map[int]bool),
		fallback: NewStandardMaterial("default", ColorWhite),
	}
	b.materials = make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		b.materials[i] = convertMaterial(m)
	}

	root := NewGroup(url)
	for _, idx := range b.rootNodes() {
		child, err := b.node(idx)
		if err != nil {
			root.Dispose()
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func (b *modelBuilder) rootNodes() []int {
	doc := b.doc
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	// No scene: every node that is nobody's child is a root.
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// node converts glTF node idx and its subtree.
func (b *modelBuilder) node(idx int) (*Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d: cycle in node hierarchy", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	var n *Node
	switch {
	case src.Mesh != nil:
		drawable, err := b.mesh(*src.Mesh, src.Name)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", idx, src.Name, err)
		}
		n = drawable
	case src.Camera != nil:
		n = NewCameraNode(src.Name)
	default:
		n = NewGroup(src.Name)
	}
	n.Basis = nodeBasis(src)

	for _, c := range src.Children {
		child, err := b.node(c)
		if err != nil {
			n.Dispose()
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// nodeBasis returns the node's authored local matrix in row-major form.
func nodeBasis(src *gltf.Node) *Mat4 {
	var m Mat4
	if src.Matrix != [16]float64{} && src.Matrix != [16]float64(identityMat4) {
		// glTF stores matrices column-major.
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				m[r*4+c] = src.Matrix[c*4+r]
			}
		}
		return &m
	}
	t := src.TranslationOrDefault()
	s := src.ScaleOrDefault()
	m = composeQuatTRS(
		Vec3{X: t[0], Y: t[1], Z: t[2]},
		src.RotationOrDefault(),
		Vec3{X: s[0], Y: s[1], Z: s[2]},
	)
	return &m
}

// mesh merges every triangle primitive of mesh idx into one geometry with a
// group per primitive. The drawable takes the node's name, falling back to
// the mesh's.
func (b *modelBuilder) mesh(idx int, nodeName string) (*Node, error) {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	src := b.doc.Meshes[idx]
	name := nodeName
	if name == "" {
		name = src.Name
	}

	geo := &Geometry{boundsDirty: true}
	var mats []Material
	for pi, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(b.doc.Accessors) {
			return nil, fmt.Errorf("primitive %d: position accessor %d out of range", pi, posIdx)
		}
		positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: read positions: %w", pi, err)
		}

		var indices []uint32
		if p.Indices != nil {
			if *p.Indices < 0 || *p.Indices >= len(b.doc.Accessors) {
				return nil, fmt.Errorf("primitive %d: index accessor %d out of range", pi, *p.Indices)
			}
			indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*p.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d: read indices: %w", pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		offset := uint32(len(geo.Positions))
		for _, v := range positions {
			geo.Positions = append(geo.Positions, Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		}
		start := len(geo.Indices)
		for _, i := range indices {
			geo.Indices = append(geo.Indices, i+offset)
		}
		geo.AddGroup(start, len(indices), len(mats))
		mats = append(mats, b.material(p.Material))
	}
	return NewDrawable(name, geo, mats...), nil
}

func (b *modelBuilder) material(idx *int) Material {
	if idx == nil || *idx < 0 || *idx >= len(b.materials) {
		return b.fallback
	}
	return b.materials[*idx]
}

// convertMaterial maps a glTF material onto a StandardMaterial, or a
// BasicMaterial when it is declared unlit.
func convertMaterial(m *gltf.Material) Material {
	base := ColorWhite
	if m.PBRMetallicRoughness != nil && m.PBRMetallicRoughness.BaseColorFactor != nil {
		f := m.PBRMetallicRoughness.BaseColorFactor
		base = Color{R: f[0], G: f[1], B: f[2]}
	}
	if _, unlit := m.Extensions[unlitExtension]; unlit {
		return NewBasicMaterial(m.Name, base)
	}
	sm := NewStandardMaterial(m.Name, base)
	e := m.EmissiveFactor
	sm.SetEmissive(Color{R: e[0], G: e[1], B: e[2]})
	return sm
}
