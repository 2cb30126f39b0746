package render

import "github.com/chazu/gengine/pkg/linalg"

// matrixStack accumulates transforms during scene traversal. Each entry is
// the product of every transform above it, so top is always the full
// local-to-world matrix.
type matrixStack struct {
	frames []linalg.Matrix
}

func newMatrixStack() *matrixStack {
	return &matrixStack{frames: []linalg.Matrix{linalg.Identity(4)}}
}

// push composes m onto the current top: the new top is top·m.
func (ms *matrixStack) push(m linalg.Matrix) {
	ms.frames = append(ms.frames, linalg.Must(ms.top().Mul(m)))
}

// pop drops the innermost transform. The identity at the bottom stays.
func (ms *matrixStack) pop() {
	if len(ms.frames) > 1 {
		ms.frames = ms.frames[:len(ms.frames)-1]
	}
}

func (ms *matrixStack) top() linalg.Matrix {
	return ms.frames[len(ms.frames)-1]
}

func (ms *matrixStack) depth() int {
	return len(ms.frames) - 1
}
