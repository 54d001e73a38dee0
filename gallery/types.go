package gallery

import (
	"errors"

	"fyne.io/fyne/v2"
)

// FitType decides how rows and columns are derived and which axis
// of a cell is computed from the container instead of configured.
type FitType int

const (
	// FitUniform fits both axes and lays children out on a square grid.
	FitUniform FitType = iota
	// FitWidth fits the horizontal axis; rows follow from the column count.
	FitWidth
	// FitHeight fits the vertical axis; columns follow from the row count.
	FitHeight
	// FixedRows keeps the configured row count.
	FixedRows
	// FixedColumns keeps the configured column count.
	FixedColumns
)

// Alignment anchors the grid inside the container when the grid does not
// fill the available space.
type Alignment int

const (
	// AlignTopLeft keeps the grid against the top and left padding.
	AlignTopLeft Alignment = iota
	// AlignTopCenter centers the grid horizontally along the top.
	AlignTopCenter
	// AlignTopRight keeps the grid against the top and right padding.
	AlignTopRight
	// AlignMiddleLeft centers the grid vertically along the left.
	AlignMiddleLeft
	// AlignMiddleCenter centers the grid on both axes.
	AlignMiddleCenter
	// AlignMiddleRight centers the grid vertically along the right.
	AlignMiddleRight
	// AlignBottomLeft keeps the grid against the bottom and left padding.
	AlignBottomLeft
	// AlignBottomCenter centers the grid horizontally along the bottom.
	AlignBottomCenter
	// AlignBottomRight keeps the grid against the bottom and right padding.
	AlignBottomRight
)

// Padding is the empty space kept on each edge of a grid.
type Padding struct {
	Left, Right, Top, Bottom float32
}

// NewUniformPadding returns the same padding on every edge.
func NewUniformPadding(p float32) Padding {
	return Padding{Left: p, Right: p, Top: p, Bottom: p}
}

// Horizontal is the sum of left and right padding.
func (p Padding) Horizontal() float32 { return p.Left + p.Right }

// Vertical is the sum of top and bottom padding.
func (p Padding) Vertical() float32 { return p.Top + p.Bottom }

// GridConfig holds every tunable of the grid geometry.
type GridConfig struct {
	Fit     FitType
	Rows    int
	Columns int

	// CellSize is used for any axis that is not fit to the container.
	CellSize fyne.Size
	Spacing  fyne.Size
	Padding  Padding

	Alignment    Alignment
	AlwaysSquare bool

	// FitX and FitY are only read for FixedRows and FixedColumns, the other
	// fit types decide them on their own.
	FitX bool
	FitY bool
}

// Viewport is the visible window onto the content pane. Anchor is a
// fractional point inside the viewport (0.5, 0.5 is the center) used as the
// reference for displacement.
type Viewport struct {
	Size   fyne.Size
	Anchor fyne.Position
}

// ScrollerConfig configures a PoolScroller.
type ScrollerConfig struct {
	Grid     GridConfig
	PoolSize int
	Viewport Viewport
}

// Filter selects which part of the image collection the gallery shows.
type Filter int

const (
	// FilterAll shows every image.
	FilterAll Filter = iota
	// FilterOdd shows the 1st, 3rd, 5th... image.
	FilterOdd
	// FilterEven shows the 2nd, 4th, 6th... image.
	FilterEven
)

// ContentSink receives content assignments for slots. ok is false when the
// slot has no backing content and must be hidden. Calls happen synchronously
// inside Initialize and Tick and must not block.
type ContentSink interface {
	RefreshContent(slot *Slot, index int, ok bool)
}

// ContentSinkFunc adapts a plain function to a ContentSink.
type ContentSinkFunc func(slot *Slot, index int, ok bool)

// RefreshContent calls f.
func (f ContentSinkFunc) RefreshContent(slot *Slot, index int, ok bool) {
	f(slot, index, ok)
}

var (
	// ErrNonPositiveCount is returned when rows or columns are set to zero or less.
	ErrNonPositiveCount = errors.New("count must be greater than 0")
	// ErrUnknownFilter is returned for a Filter value outside All, Odd and Even.
	ErrUnknownFilter = errors.New("unrecognized filter")
)

const (
	// WideAspectRatio is the width/height ratio above which the gallery
	// switches from two to three columns.
	WideAspectRatio = 0.62

	wideColumns   = 3
	narrowColumns = 2

	// DefaultPoolSize is the smallest pool the gallery builds. In two columns
	// it covers a viewport up to about 3.5 times taller than wide plus a row
	// of slack on each side; taller windows get a pool from poolSizeFor.
	DefaultPoolSize = 18

	premiumEvery = 4

	galleryFilterKey = "xgallery:filter"
)

// DefaultGridConfig is the grid used by the gallery: square cells that fill
// the width with a fixed column count.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Fit:          FixedColumns,
		Rows:         1,
		Columns:      narrowColumns,
		CellSize:     fyne.NewSquareSize(128),
		Spacing:      fyne.NewSquareSize(8),
		Padding:      NewUniformPadding(8),
		Alignment:    AlignTopLeft,
		AlwaysSquare: true,
		FitX:         true,
	}
}
