package gallery

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// contentTarget is what the acquirer fills in for a slot.
type contentTarget interface {
	SetVisible(visible bool)
	SetImage(uri fyne.URI, free bool)
}

// ContentAcquirer maps logical gallery indices onto the image list through
// the active Filter.
type ContentAcquirer struct {
	images []fyne.URI
	filter Filter
}

// NewContentAcquirer serves images through filter. An unknown filter is
// logged and replaced by FilterAll.
func NewContentAcquirer(images []fyne.URI, filter Filter) *ContentAcquirer {
	c := &ContentAcquirer{images: images}
	if err := c.SetFilter(filter); err != nil {
		fyne.LogError("falling back to the unfiltered gallery", err)
	}
	return c
}

// SetFilter changes the active filter. Unknown values are rejected and
// leave the previous filter in place.
func (c *ContentAcquirer) SetFilter(filter Filter) error {
	switch filter {
	case FilterAll, FilterOdd, FilterEven:
		c.filter = filter
		return nil
	}
	return fmt.Errorf("filter %d: %w", filter, ErrUnknownFilter)
}

func (c *ContentAcquirer) Filter() Filter {
	return c.filter
}

// FilteredLength is the number of logical indices the gallery scrolls
// through. Odd and Even both round up, so Even may end on an index with no
// image behind it.
func (c *ContentAcquirer) FilteredLength() int {
	n := len(c.images)
	if c.filter == FilterAll {
		return n
	}
	return n/2 + n%2
}

// RealIndex converts a logical index into an index of the image list.
func (c *ContentAcquirer) RealIndex(index int) int {
	switch c.filter {
	case FilterOdd:
		return index * 2
	case FilterEven:
		return index*2 + 1
	default:
		return index
	}
}

// Image returns the image behind a logical index.
func (c *ContentAcquirer) Image(index int) (fyne.URI, bool) {
	at := c.RealIndex(index)
	if index < 0 || at >= len(c.images) {
		return nil, false
	}
	return c.images[at], true
}

// SetContent shows the image for index on item, or hides item when the
// slot has no content or the index runs past the image list. Every fourth
// image is premium.
func (c *ContentAcquirer) SetContent(item contentTarget, index int, ok bool) {
	if !ok {
		item.SetVisible(false)
		return
	}

	uri, found := c.Image(index)
	if !found {
		item.SetVisible(false)
		return
	}

	item.SetVisible(true)
	item.SetImage(uri, isFree(index))
}

func isFree(index int) bool {
	return (index+1)%premiumEvery != 0
}
