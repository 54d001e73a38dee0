package gallery

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/FyshOS/fancyfs"
)

const (
	bannerInterval = 4 * time.Second
	bannerHeight   = 160
	bannerDotSize  = 8
	bannerImages   = 3

	// bannerSwipe is how far a drag has to travel to change the page.
	bannerSwipe = 40
)

// banner rotates through a few pages on a timer. A horizontal swipe moves
// to the next or previous page and a tap to the next one; both restart the
// timer. A banner without pages stays hidden.
type banner struct {
	widget.BaseWidget

	pages    []fyne.CanvasObject
	dots     []*canvas.Circle
	selected int
	interval time.Duration
	dragged  float32

	ticker   *time.Ticker
	stopChan chan struct{}
}

func newBanner(pages []fyne.CanvasObject, interval time.Duration) *banner {
	b := &banner{pages: pages, interval: interval}
	for range pages {
		b.dots = append(b.dots, canvas.NewCircle(color.Transparent))
	}
	b.ExtendBaseWidget(b)
	if len(pages) == 0 {
		b.Hide()
	}
	b.selectPage(0)
	return b
}

// next shows the following page, wrapping around at the end.
func (b *banner) next() {
	if len(b.pages) == 0 {
		return
	}
	b.selectPage((b.selected + 1) % len(b.pages))
}

func (b *banner) previous() {
	if len(b.pages) == 0 {
		return
	}
	b.selectPage((b.selected + len(b.pages) - 1) % len(b.pages))
}

func (b *banner) selectPage(index int) {
	b.selected = index
	for i, page := range b.pages {
		if i == index {
			page.Show()
		} else {
			page.Hide()
		}
	}
	b.colorDots()
}

func (b *banner) colorDots() {
	for i, dot := range b.dots {
		if i == b.selected {
			dot.FillColor = theme.Color(theme.ColorNamePrimary)
		} else {
			dot.FillColor = theme.Color(theme.ColorNameDisabled)
		}
		dot.Refresh()
	}
}

func (b *banner) Tapped(*fyne.PointEvent) {
	b.next()
	b.restart()
}

func (b *banner) Dragged(ev *fyne.DragEvent) {
	b.dragged += ev.Dragged.DX
}

// DragEnd snaps to a neighbouring page once the swipe is long enough.
func (b *banner) DragEnd() {
	dx := b.dragged
	b.dragged = 0
	switch {
	case dx <= -bannerSwipe:
		b.next()
	case dx >= bannerSwipe:
		b.previous()
	default:
		return
	}
	b.restart()
}

var (
	_ fyne.Tappable  = (*banner)(nil)
	_ fyne.Draggable = (*banner)(nil)
)

func (b *banner) start() {
	if b.ticker != nil || len(b.pages) < 2 || b.interval <= 0 {
		return
	}
	b.ticker = time.NewTicker(b.interval)
	b.stopChan = make(chan struct{})

	ticker, stop := b.ticker, b.stopChan
	go func() {
		for {
			select {
			case <-ticker.C:
				fyne.Do(b.next)
			case <-stop:
				return
			}
		}
	}()
}

func (b *banner) restart() {
	if b.ticker != nil {
		b.ticker.Reset(b.interval)
	}
}

func (b *banner) stop() {
	if b.ticker == nil {
		return
	}
	b.ticker.Stop()
	b.ticker = nil
	close(b.stopChan)
	b.stopChan = nil
}

func (b *banner) CreateRenderer() fyne.WidgetRenderer {
	dots := container.NewHBox(layout.NewSpacer())
	for _, d := range b.dots {
		dots.Add(container.NewGridWrap(fyne.NewSquareSize(bannerDotSize), d))
	}
	dots.Add(layout.NewSpacer())

	b.start()
	return &bannerRenderer{
		banner:  b,
		content: container.NewBorder(nil, dots, nil, nil, container.NewStack(b.pages...)),
	}
}

type bannerRenderer struct {
	banner  *banner
	content *fyne.Container
}

func (r *bannerRenderer) Layout(size fyne.Size) {
	r.content.Resize(size)
}

func (r *bannerRenderer) MinSize() fyne.Size {
	size := r.content.MinSize()
	return fyne.NewSize(size.Width, max(size.Height, bannerHeight))
}

func (r *bannerRenderer) Refresh() {
	r.banner.colorDots()
	r.content.Refresh()
}

func (r *bannerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content}
}

func (r *bannerRenderer) Destroy() {
	r.banner.stop()
}

// bannerPages collects the banner artwork for dir: the folder background
// set through fancyfs, if any, followed by the first few images.
func bannerPages(dir fyne.ListableURI, images []fyne.URI) []fyne.CanvasObject {
	var pages []fyne.CanvasObject
	if dir != nil {
		if details, err := fancyfs.DetailsForFolder(dir); err == nil && details != nil {
			if details.BackgroundResource != nil {
				img := canvas.NewImageFromResource(details.BackgroundResource)
				img.FillMode = canvas.ImageFillContain
				pages = append(pages, img)
			}
			if details.BackgroundURI != nil {
				img := &canvas.Image{File: details.BackgroundURI.Path()}
				img.FillMode = details.BackgroundFill
				pages = append(pages, img)
			}
		}
	}

	for _, uri := range images[:min(len(images), bannerImages)] {
		img := canvas.NewImageFromURI(uri)
		img.FillMode = canvas.ImageFillContain
		pages = append(pages, img)
	}
	return pages
}
