package gallery

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// thumbnailDelay debounces thumbnail requests so slots flying past during
// a fast scroll do not queue work.
const thumbnailDelay = 120 * time.Millisecond

// contentItem is the widget behind one pool slot.
type contentItem struct {
	widget.BaseWidget

	bg        *canvas.Rectangle
	thumbnail *canvas.Image
	premium   *canvas.Text

	uri       fyne.URI
	free      bool
	loadTimer *time.Timer

	onShowContent func(fyne.URI)
	onShowPremium func()
}

var _ contentTarget = (*contentItem)(nil)

func newContentItem(onShowContent func(fyne.URI), onShowPremium func()) *contentItem {
	item := &contentItem{
		bg:            canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		thumbnail:     canvas.NewImageFromImage(nil),
		premium:       canvas.NewText(lang.L("Premium"), theme.Color(theme.ColorNamePrimary)),
		free:          true,
		onShowContent: onShowContent,
		onShowPremium: onShowPremium,
	}
	item.bg.CornerRadius = theme.InputRadiusSize()
	item.thumbnail.FillMode = canvas.ImageFillContain
	item.premium.TextStyle = fyne.TextStyle{Bold: true}
	item.premium.Hide()
	item.ExtendBaseWidget(item)
	return item
}

func (i *contentItem) CreateRenderer() fyne.WidgetRenderer {
	return &contentItemRenderer{item: i}
}

// SetVisible shows or hides the slot. Hidden slots keep their place in the
// grid.
func (i *contentItem) SetVisible(visible bool) {
	if visible {
		i.Show()
		return
	}
	if i.loadTimer != nil {
		i.loadTimer.Stop()
	}
	i.uri = nil
	i.Hide()
}

// SetImage assigns the image shown by the slot and whether it is free.
func (i *contentItem) SetImage(uri fyne.URI, free bool) {
	i.free = free
	if free {
		i.premium.Hide()
	} else {
		i.premium.Show()
	}
	i.premium.Refresh()

	if i.uri != nil && uri != nil && i.uri.String() == uri.String() {
		return
	}
	i.uri = uri

	if i.loadTimer != nil {
		i.loadTimer.Stop()
	}
	if uri == nil {
		i.setThumbnail(nil)
		return
	}

	manager := GetThumbnailManager()
	if img := manager.LoadMemoryOnly(uri); img != nil {
		i.setThumbnail(img)
		return
	}

	i.setThumbnail(nil)
	i.loadTimer = time.AfterFunc(thumbnailDelay, func() {
		manager.Load(uri, func(img *canvas.Image) {
			fyne.Do(func() {
				if i.uri == nil || i.uri.String() != uri.String() {
					return
				}
				i.setThumbnail(img)
			})
		})
	})
}

func (i *contentItem) setThumbnail(img *canvas.Image) {
	if img == nil {
		i.thumbnail.Image = nil
	} else {
		i.thumbnail.Image = img.Image
	}
	i.thumbnail.Refresh()
}

// Tapped opens the full image for free items and the premium notice for
// the others.
func (i *contentItem) Tapped(*fyne.PointEvent) {
	if i.uri == nil {
		return
	}
	if i.free {
		if i.onShowContent != nil {
			i.onShowContent(i.uri)
		}
		return
	}
	if i.onShowPremium != nil {
		i.onShowPremium()
	}
}

var _ fyne.Tappable = (*contentItem)(nil)

type contentItemRenderer struct {
	item *contentItem
}

func (r *contentItemRenderer) Layout(size fyne.Size) {
	pad := theme.Padding()
	r.item.bg.Resize(size)

	r.item.thumbnail.Move(fyne.NewPos(pad, pad))
	r.item.thumbnail.Resize(size.SubtractWidthHeight(pad*2, pad*2))

	badge := r.item.premium.MinSize()
	r.item.premium.Move(fyne.NewPos(size.Width-badge.Width-pad*2, pad*2))
	r.item.premium.Resize(badge)
}

func (r *contentItemRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(theme.Padding() * 4)
}

func (r *contentItemRenderer) Refresh() {
	r.item.bg.FillColor = theme.Color(theme.ColorNameInputBackground)
	r.item.bg.Refresh()
	r.item.thumbnail.Refresh()
	r.item.premium.Refresh()
}

func (r *contentItemRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.item.bg, r.item.thumbnail, r.item.premium}
}

func (r *contentItemRenderer) Destroy() {
	if r.item.loadTimer != nil {
		r.item.loadTimer.Stop()
	}
}
