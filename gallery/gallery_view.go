package gallery

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// frameInterval paces the recycling pass at roughly 60 frames a second.
const frameInterval = 16 * time.Millisecond

// GalleryView is a scrollable, filterable image grid that shows any number
// of images with a fixed pool of slot widgets.
type GalleryView struct {
	widget.BaseWidget

	parent   fyne.Window
	scroller *PoolScroller
	acquirer *ContentAcquirer
	items    []*contentItem

	pane   *fyne.Container
	scroll *container.Scroll
	tabs   *filterTabs
	banner *banner

	frameTicker *time.Ticker
	frameStop   chan struct{}
}

var _ ContentSink = (*GalleryView)(nil)

// NewGalleryView builds a gallery over images. dir, when not nil, supplies
// the banner pages. The selected filter is restored from the app
// preferences. The pool is sized for the parent window as it is now.
func NewGalleryView(parent fyne.Window, dir fyne.ListableURI, images []fyne.URI) *GalleryView {
	var size fyne.Size
	if parent != nil {
		size = parent.Canvas().Size()
	}
	return NewGalleryViewWithConfig(parent, dir, images, ScrollerConfig{
		Grid:     DefaultGridConfig(),
		PoolSize: poolSizeFor(size),
		Viewport: Viewport{Anchor: fyne.NewPos(0.5, 0.5)},
	})
}

// NewGalleryViewWithConfig is NewGalleryView with explicit grid and pool
// settings.
func NewGalleryViewWithConfig(parent fyne.Window, dir fyne.ListableURI, images []fyne.URI, cfg ScrollerConfig) *GalleryView {
	v := &GalleryView{
		parent:   parent,
		scroller: NewPoolScroller(cfg),
		acquirer: NewContentAcquirer(images, loadFilterPref()),
	}

	objects := make([]fyne.CanvasObject, len(v.scroller.Slots()))
	v.items = make([]*contentItem, len(objects))
	for i := range v.items {
		v.items[i] = newContentItem(v.showContent, v.showPremium)
		objects[i] = v.items[i]
	}
	v.pane = container.New(&slotLayout{view: v}, objects...)
	v.scroll = container.NewVScroll(v.pane)
	v.scroll.OnScrolled = func(pos fyne.Position) {
		v.scroller.SetScrollOffset(pos.Y)
	}

	v.tabs = newFilterTabs(v.acquirer.Filter(), v.SetFilter)
	v.banner = newBanner(bannerPages(dir, images), bannerInterval)

	v.scroller.Initialize(v, v.acquirer.FilteredLength())
	GetThumbnailManager().Prewarm(images)

	v.ExtendBaseWidget(v)
	return v
}

// RefreshContent hands a slot assignment to the content acquirer.
func (v *GalleryView) RefreshContent(slot *Slot, index int, ok bool) {
	v.acquirer.SetContent(v.items[slot.ID], index, ok)
}

// SetFilter switches the filter, remembers it and starts the gallery over
// from the top.
func (v *GalleryView) SetFilter(filter Filter) {
	if err := v.acquirer.SetFilter(filter); err != nil {
		fyne.LogError("could not change gallery filter", err)
		return
	}
	saveFilterPref(filter)
	v.tabs.setSelected(filter)
	v.reset()
}

// Filter returns the active filter.
func (v *GalleryView) Filter() Filter {
	return v.acquirer.Filter()
}

func (v *GalleryView) reset() {
	v.scroll.ScrollToTop()
	v.scroller.Initialize(v, v.acquirer.FilteredLength())
	v.layoutSlots()
	v.pane.Refresh()
	v.scroll.Refresh()
}

func (v *GalleryView) onResize() {
	if !v.scroller.Resize(v.scroll.Size()) {
		return
	}
	v.scroll.ScrollToTop()
	v.layoutSlots()
	v.pane.Refresh()
	v.scroll.Refresh()
}

// tick runs one recycling pass and moves the slot widgets if it changed
// anything.
func (v *GalleryView) tick() {
	if v.scroller.Tick() {
		v.layoutSlots()
	}
}

func (v *GalleryView) layoutSlots() {
	cell := v.scroller.CellSize()
	for _, slot := range v.scroller.Slots() {
		item := v.items[slot.ID]
		item.Resize(cell)
		item.Move(slot.Position)
	}
}

func (v *GalleryView) startFrames() {
	if v.frameTicker != nil {
		return
	}
	v.frameTicker = time.NewTicker(frameInterval)
	v.frameStop = make(chan struct{})

	ticker, stop := v.frameTicker, v.frameStop
	go func() {
		for {
			select {
			case <-ticker.C:
				fyne.Do(v.tick)
			case <-stop:
				return
			}
		}
	}()
}

func (v *GalleryView) stopFrames() {
	if v.frameTicker == nil {
		return
	}
	v.frameTicker.Stop()
	v.frameTicker = nil
	close(v.frameStop)
	v.frameStop = nil
}

func (v *GalleryView) showContent(uri fyne.URI) {
	if v.parent == nil {
		return
	}
	img := canvas.NewImageFromURI(uri)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSquareSize(480))
	dialog.ShowCustom(uri.Name(), lang.L("Close"), img, v.parent)
}

func (v *GalleryView) showPremium() {
	if v.parent == nil {
		return
	}
	dialog.ShowInformation(lang.L("Premium"), lang.L("This image is part of the premium collection."), v.parent)
}

func (v *GalleryView) CreateRenderer() fyne.WidgetRenderer {
	body := container.New(&resizeLayout{
		internal: layout.NewStackLayout(),
		onResize: v.onResize,
	}, v.scroll)

	header := container.NewVBox(v.banner, v.tabs.content)
	v.startFrames()
	return &galleryRenderer{
		view:    v,
		content: container.NewBorder(header, nil, nil, nil, body),
	}
}

type galleryRenderer struct {
	view    *GalleryView
	content *fyne.Container
}

func (r *galleryRenderer) Layout(size fyne.Size) {
	r.content.Resize(size)
}

func (r *galleryRenderer) MinSize() fyne.Size {
	return r.content.MinSize()
}

func (r *galleryRenderer) Refresh() {
	r.content.Refresh()
}

func (r *galleryRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content}
}

func (r *galleryRenderer) Destroy() {
	r.view.stopFrames()
	r.view.banner.stop()
}

// slotLayout places the pool widgets where the scroller put their slots.
// Its minimum height is the whole sequence so the scroll container can
// reach every row.
type slotLayout struct {
	view *GalleryView
}

func (l *slotLayout) Layout(_ []fyne.CanvasObject, _ fyne.Size) {
	l.view.layoutSlots()
}

func (l *slotLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, l.view.scroller.ContentExtent())
}

type resizeLayout struct {
	internal fyne.Layout
	onResize func()

	lastSize  fyne.Size
	lastFired time.Time
	timer     *time.Timer
}

func (r *resizeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	r.internal.Layout(objects, size)
	if r.onResize == nil {
		return
	}

	// layouts also run for reasons other than a size change
	if abs32(size.Width-r.lastSize.Width) < 0.5 && abs32(size.Height-r.lastSize.Height) < 0.5 {
		return
	}
	r.lastSize = size
	r.scheduleResize()
}

func (r *resizeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return r.internal.MinSize(objects)
}

// scheduleResize runs onResize outside of the layout pass and coalesces
// bursts while a window is being dragged to a new size.
func (r *resizeLayout) scheduleResize() {
	const minInterval = 60 * time.Millisecond

	elapsed := time.Since(r.lastFired)
	if elapsed >= minInterval {
		r.lastFired = time.Now()
		fyne.Do(r.onResize)
		return
	}

	delay := minInterval - elapsed
	if r.timer == nil {
		r.timer = time.AfterFunc(delay, func() {
			fyne.Do(func() {
				r.timer = nil
				r.lastFired = time.Now()
				r.onResize()
			})
		})
		return
	}
	r.timer.Reset(delay)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
