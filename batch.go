package musclemap

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the largest vertex count addressable by uint16 indices.
const maxBatchVertices = 65535

// triangleBatch is one DrawTriangles call's worth of geometry.
type triangleBatch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// buildBatches packs the sorted faces into batches that each fit in a single
// DrawTriangles call. Batches are reused across frames.
func (s *Scene) buildBatches() {
	for i := range s.batches {
		s.batches[i].vertices = s.batches[i].vertices[:0]
		s.batches[i].indices = s.batches[i].indices[:0]
	}
	s.batchCount = 0
	if len(s.faces) == 0 {
		return
	}

	b := s.nextBatch()
	for i := range s.faces {
		f := &s.faces[i]
		if len(b.vertices)+3 > maxBatchVertices {
			b = s.nextBatch()
		}
		base := uint16(len(b.vertices))
		for k := 0; k < 3; k++ {
			b.vertices = append(b.vertices, ebiten.Vertex{
				DstX:   f.x[k],
				DstY:   f.y[k],
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: f.color.R,
				ColorG: f.color.G,
				ColorB: f.color.B,
				ColorA: f.color.A,
			})
		}
		b.indices = append(b.indices, base, base+1, base+2)
	}
}

// nextBatch returns the next free batch, growing the pool if needed.
func (s *Scene) nextBatch() *triangleBatch {
	if s.batchCount == len(s.batches) {
		s.batches = append(s.batches, triangleBatch{})
	}
	b := &s.batches[s.batchCount]
	s.batchCount++
	return b
}

// submitBatches issues one DrawTriangles call per non-empty batch.
func (s *Scene) submitBatches(target *ebiten.Image) int {
	calls := 0
	img := s.ensureWhitePixel()
	var op ebiten.DrawTrianglesOptions
	for i := 0; i < s.batchCount; i++ {
		b := &s.batches[i]
		if len(b.indices) == 0 {
			continue
		}
		target.DrawTriangles(b.vertices, b.indices, img, &op)
		calls++
	}
	return calls
}

// ensureWhitePixel lazily creates the 1x1 source image used for solid-color
// triangles. Released by Scene.Dispose.
func (s *Scene) ensureWhitePixel() *ebiten.Image {
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(ColorWhite.RGBA())
	}
	return s.whitePixel
}
