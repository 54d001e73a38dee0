package gallery

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
)

// flexGrid computes rows, columns, cell size and child placement for a
// uniform grid. It also satisfies fyne.Layout so it can arrange the objects
// of any container.
type flexGrid struct {
	cfg GridConfig

	rows, columns int
	cellSize      fyne.Size
	fitX, fitY    bool

	lastSize  fyne.Size
	lastCount int
	positions []fyne.Position
}

var _ fyne.Layout = (*flexGrid)(nil)

func newFlexGrid(cfg GridConfig) *flexGrid {
	g := &flexGrid{
		cfg:      cfg,
		rows:     max(cfg.Rows, 1),
		columns:  max(cfg.Columns, 1),
		cellSize: cfg.CellSize,
		fitX:     cfg.FitX,
		fitY:     cfg.FitY,
	}
	return g
}

func (g *flexGrid) Rows() int           { return g.rows }
func (g *flexGrid) Columns() int        { return g.columns }
func (g *flexGrid) CellSize() fyne.Size { return g.cellSize }
func (g *flexGrid) Spacing() fyne.Size  { return g.cfg.Spacing }
func (g *flexGrid) Padding() Padding    { return g.cfg.Padding }

// SetRows sets the row count and lays the grid out again with the last
// container size and child count.
func (g *flexGrid) SetRows(n int) error {
	if n <= 0 {
		return fmt.Errorf("rows %d: %w", n, ErrNonPositiveCount)
	}
	g.rows = n
	g.cfg.Rows = n
	g.Recompute(g.lastSize, g.lastCount)
	return nil
}

// SetColumns sets the column count and lays the grid out again with the
// last container size and child count.
func (g *flexGrid) SetColumns(n int) error {
	if n <= 0 {
		return fmt.Errorf("columns %d: %w", n, ErrNonPositiveCount)
	}
	g.columns = n
	g.cfg.Columns = n
	g.Recompute(g.lastSize, g.lastCount)
	return nil
}

// TotalWidth is the grid width without padding.
func (g *flexGrid) TotalWidth() float32 {
	return g.preferredSize().Width - g.cfg.Padding.Horizontal()
}

// TotalHeight is the grid height without padding.
func (g *flexGrid) TotalHeight() float32 {
	return g.preferredSize().Height - g.cfg.Padding.Vertical()
}

func (g *flexGrid) preferredSize() fyne.Size {
	cols, rows := float32(g.columns), float32(g.rows)
	return fyne.NewSize(
		g.cellSize.Width*cols+g.cfg.Spacing.Width*(cols-1)+g.cfg.Padding.Horizontal(),
		g.cellSize.Height*rows+g.cfg.Spacing.Height*(rows-1)+g.cfg.Padding.Vertical(),
	)
}

// Recompute derives the grid for count children inside container and
// returns the top-left position of every child, row-major.
func (g *flexGrid) Recompute(container fyne.Size, count int) []fyne.Position {
	g.lastSize = container
	g.lastCount = count

	g.deriveCounts(count)
	g.cellSize = g.cellSizeFor(container)
	g.positions = g.place(container, count)

	out := make([]fyne.Position, len(g.positions))
	copy(out, g.positions)
	return out
}

func (g *flexGrid) deriveCounts(count int) {
	n := max(count, 1)

	switch g.cfg.Fit {
	case FitUniform:
		g.fitX, g.fitY = true, true
	case FitWidth:
		g.fitX, g.fitY = true, false
	case FitHeight:
		g.fitX, g.fitY = false, true
	default:
		g.fitX, g.fitY = g.cfg.FitX, g.cfg.FitY
	}

	switch g.cfg.Fit {
	case FitUniform, FitWidth, FitHeight:
		side := int(math.Ceil(math.Sqrt(float64(n))))
		g.rows, g.columns = side, side
	}

	switch g.cfg.Fit {
	case FitWidth, FixedColumns:
		g.rows = ceilDiv(n, g.columns)
	case FitHeight, FixedRows:
		g.columns = ceilDiv(n, g.rows)
	}
}

func (g *flexGrid) cellSizeFor(container fyne.Size) fyne.Size {
	cols, rows := float32(g.columns), float32(g.rows)
	pad, spacing := g.cfg.Padding, g.cfg.Spacing

	width := max((container.Width-pad.Horizontal()-spacing.Width*(cols-1))/cols, 0)
	height := max((container.Height-pad.Vertical()-spacing.Height*(rows-1))/rows, 0)

	result := g.cfg.CellSize
	if g.fitX {
		result.Width = width
	}
	if g.fitY {
		result.Height = height
	}

	if g.cfg.AlwaysSquare {
		switch {
		case g.fitX == g.fitY:
			side := min(result.Width, result.Height)
			result = fyne.NewSquareSize(side)
		case g.fitX:
			result.Height = result.Width
		default:
			result.Width = result.Height
		}
	}
	return result
}

func (g *flexGrid) place(container fyne.Size, count int) []fyne.Position {
	pad, spacing, cell := g.cfg.Padding, g.cfg.Spacing, g.cellSize

	cols, rows := float32(g.columns), float32(g.rows)
	totalW := cols*cell.Width + (cols-1)*spacing.Width
	totalH := rows*cell.Height + (rows-1)*spacing.Height
	availW := container.Width - pad.Horizontal()
	availH := container.Height - pad.Vertical()

	startX := pad.Left
	switch g.cfg.Alignment {
	case AlignTopCenter, AlignMiddleCenter, AlignBottomCenter:
		startX = pad.Left + (availW-totalW)*0.5
	case AlignTopRight, AlignMiddleRight, AlignBottomRight:
		startX = container.Width - pad.Right - totalW
	}

	startY := pad.Top
	switch g.cfg.Alignment {
	case AlignMiddleLeft, AlignMiddleCenter, AlignMiddleRight:
		startY = pad.Top + (availH-totalH)*0.5
	case AlignBottomLeft, AlignBottomCenter, AlignBottomRight:
		startY = container.Height - pad.Bottom - totalH
	}

	positions := make([]fyne.Position, count)
	for i := range positions {
		row := float32(i / g.columns)
		col := float32(i % g.columns)
		positions[i] = fyne.NewPos(
			startX+col*(cell.Width+spacing.Width),
			startY+row*(cell.Height+spacing.Height),
		)
	}
	return positions
}

// Layout arranges the visible objects on the grid.
func (g *flexGrid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	visible := visibleObjects(objects)
	positions := g.Recompute(size, len(visible))
	for i, o := range visible {
		o.Move(positions[i])
		o.Resize(g.cellSize)
	}
}

// MinSize is the size the grid needs for the visible objects at the current
// cell size.
func (g *flexGrid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	g.deriveCounts(len(visibleObjects(objects)))
	return g.preferredSize()
}

func visibleObjects(objects []fyne.CanvasObject) []fyne.CanvasObject {
	visible := make([]fyne.CanvasObject, 0, len(objects))
	for _, o := range objects {
		if o.Visible() {
			visible = append(visible, o)
		}
	}
	return visible
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
