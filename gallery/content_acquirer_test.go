package gallery

import (
	"errors"
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

type fakeTarget struct {
	visible bool
	uri     fyne.URI
	free    bool
}

func (f *fakeTarget) SetVisible(visible bool) { f.visible = visible }

func (f *fakeTarget) SetImage(uri fyne.URI, free bool) {
	f.uri = uri
	f.free = free
}

func testImages(n int) []fyne.URI {
	images := make([]fyne.URI, n)
	for i := range images {
		images[i] = storage.NewFileURI(fmt.Sprintf("/tmp/gallery/%02d.png", i))
	}
	return images
}

func TestContentAcquirer_FilteredLength(t *testing.T) {
	tests := []struct {
		filter Filter
		images int
		want   int
	}{
		{FilterAll, 7, 7},
		{FilterOdd, 7, 4},
		{FilterEven, 7, 4},
		{FilterOdd, 6, 3},
		{FilterEven, 0, 0},
	}

	for _, tt := range tests {
		c := NewContentAcquirer(testImages(tt.images), tt.filter)
		if got := c.FilteredLength(); got != tt.want {
			t.Fatalf("filter %d over %d images: expected length %d, got %d", tt.filter, tt.images, tt.want, got)
		}
	}
}

func TestContentAcquirer_RealIndex(t *testing.T) {
	c := NewContentAcquirer(testImages(7), FilterOdd)
	if got := c.RealIndex(2); got != 4 {
		t.Fatalf("expected odd index 2 to map to 4, got %d", got)
	}

	if err := c.SetFilter(FilterEven); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.RealIndex(2); got != 5 {
		t.Fatalf("expected even index 2 to map to 5, got %d", got)
	}
}

func TestContentAcquirer_SetContent(t *testing.T) {
	images := testImages(8)
	c := NewContentAcquirer(images, FilterAll)

	target := &fakeTarget{}
	c.SetContent(target, 2, true)
	if !target.visible || target.uri.String() != images[2].String() || !target.free {
		t.Fatalf("expected free image 2 to be shown, got %+v", *target)
	}

	c.SetContent(target, 3, true)
	if !target.visible || target.free {
		t.Fatalf("expected image 3 to be premium, got %+v", *target)
	}

	c.SetContent(target, 4, false)
	if target.visible {
		t.Fatal("expected a slot without content to be hidden")
	}
}

func TestContentAcquirer_EvenPastEndIsHidden(t *testing.T) {
	c := NewContentAcquirer(testImages(7), FilterEven)

	target := &fakeTarget{visible: true}
	c.SetContent(target, 3, true)
	if target.visible {
		t.Fatal("expected the last even index to be hidden when it has no image")
	}
}

func TestContentAcquirer_UnknownFilter(t *testing.T) {
	c := NewContentAcquirer(testImages(4), FilterOdd)

	err := c.SetFilter(Filter(42))
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	if c.Filter() != FilterOdd {
		t.Fatalf("expected the filter to stay odd, got %d", c.Filter())
	}

	if got := NewContentAcquirer(testImages(4), Filter(-1)).Filter(); got != FilterAll {
		t.Fatalf("expected an unknown initial filter to fall back to all, got %d", got)
	}
}
