package gallery

import (
	"fyne.io/fyne/v2"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// frame is an affine map between two coordinate spaces. The gallery uses
// two spaces, both with y growing downwards: pane space (origin at the top
// left of the content pane) and viewport space (origin at the top left of
// the visible window).
type frame struct {
	m matrix.Matrix
}

func translateFrame(dx, dy float32) frame {
	return frame{m: matrix.Translate(float64(dx), float64(dy))}
}

// paneToViewport maps pane space into viewport space for a pane scrolled by
// offset.
func paneToViewport(offset fyne.Position) frame {
	return translateFrame(-offset.X, -offset.Y)
}

func (f frame) apply(p fyne.Position) fyne.Position {
	v := f.applyVec(vec.Vec2{X: float64(p.X), Y: float64(p.Y)})
	return fyne.NewPos(float32(v.X), float32(v.Y))
}

func (f frame) applyVec(v vec.Vec2) vec.Vec2 {
	return f.m.Apply(v)
}

// then returns the frame that applies f first and next second.
func (f frame) then(next frame) frame {
	return frame{m: f.m.Mul(next.m)}
}

// inverse panics on a singular map; every frame built here is invertible.
func (f frame) inverse() frame {
	return frame{m: f.m.Inv()}
}
