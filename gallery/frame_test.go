package gallery

import (
	"testing"

	"fyne.io/fyne/v2"
	"seehuhn.de/go/geom/matrix"
)

func TestFrame_ThenAppliesInOrder(t *testing.T) {
	toViewport := translateFrame(50, 50).then(paneToViewport(fyne.NewPos(0, 120)))

	if got, want := toViewport.apply(fyne.NewPos(100, 200)), fyne.NewPos(150, 130); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFrame_InverseRoundTrip(t *testing.T) {
	f := translateFrame(12, -7).then(paneToViewport(fyne.NewPos(3, 40)))
	inv := f.inverse()

	for _, p := range []fyne.Position{
		fyne.NewPos(0, 0),
		fyne.NewPos(64, 256),
		fyne.NewPos(-20, 5),
	} {
		if got := inv.apply(f.apply(p)); got != p {
			t.Fatalf("expected %v after round trip, got %v", p, got)
		}
	}
}

func TestFrame_InversePanicsWhenSingular(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a singular frame")
		}
	}()

	frame{}.inverse()
}

func TestFrame_ThenKeepsOrderWithScaling(t *testing.T) {
	double := frame{m: matrix.Matrix{2, 0, 0, 2, 0, 0}}

	if got, want := translateFrame(1, 0).then(double).apply(fyne.NewPos(1, 1)), fyne.NewPos(4, 2); got != want {
		t.Fatalf("expected translate then scale to give %v, got %v", want, got)
	}
	if got, want := double.then(translateFrame(1, 0)).apply(fyne.NewPos(1, 1)), fyne.NewPos(3, 2); got != want {
		t.Fatalf("expected scale then translate to give %v, got %v", want, got)
	}
	if got, want := double.inverse().apply(fyne.NewPos(4, 2)), fyne.NewPos(2, 1); got != want {
		t.Fatalf("expected inverse scaling to give %v, got %v", want, got)
	}
}
