package gallery

import (
	"math"

	"fyne.io/fyne/v2"
)

// Slot is one display unit of the fixed pool. Position is the top-left
// corner in pane space. Index is the logical index the slot shows, or -1
// when HasContent is false.
type Slot struct {
	ID         int
	Position   fyne.Position
	Index      int
	HasContent bool
	Visible    bool
}

// PoolScroller maps a fixed pool of slots onto a window of a longer logical
// sequence and recycles slots that leave the visible area to the opposite
// end of the pool.
//
// A PoolScroller is driven from a single goroutine and is not safe for
// concurrent use.
type PoolScroller struct {
	cfg   ScrollerConfig
	grid  *flexGrid
	slots []*Slot
	sink  ContentSink

	providerLength int
	length         int
	emptyTrailing  int
	windowStart    int

	offset   float32
	paneSize fyne.Size

	settled bool
	dirty   bool
}

// NewPoolScroller builds a scroller and its pool. The pool always uses a
// fixed column count; Initialize picks it from the viewport aspect ratio.
func NewPoolScroller(cfg ScrollerConfig) *PoolScroller {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	cfg.Grid.Fit = FixedColumns

	s := &PoolScroller{
		cfg:   cfg,
		grid:  newFlexGrid(cfg.Grid),
		slots: make([]*Slot, cfg.PoolSize),
	}
	for i := range s.slots {
		s.slots[i] = &Slot{ID: i, Index: -1}
	}
	s.layoutPool()
	return s
}

// Initialize resets the window to the start of a sequence of
// providerLength items and assigns the first PoolSize indices.
func (s *PoolScroller) Initialize(sink ContentSink, providerLength int) {
	s.sink = sink
	s.providerLength = max(providerLength, 0)
	s.windowStart = 0
	s.offset = 0
	s.settled = false
	s.dirty = true

	s.setColumnsOverWidth()

	s.emptyTrailing = 0
	if extra := s.providerLength % s.grid.Columns(); extra != 0 {
		s.emptyTrailing = s.grid.Columns() - extra
	}
	s.length = s.providerLength + s.emptyTrailing

	s.layoutPool()
	orderSlots(s.slots)

	for i, slot := range s.slots {
		s.refresh(slot, i)
	}
}

func (s *PoolScroller) setColumnsOverWidth() {
	vp := s.cfg.Viewport.Size
	columns := narrowColumns
	if vp.Height > 0 && vp.Width/vp.Height > WideAspectRatio {
		columns = wideColumns
	}
	if err := s.grid.SetColumns(columns); err != nil {
		fyne.LogError("could not set gallery columns", err)
	}
}

// layoutPool puts every slot back on its home cell and the pool back in
// creation order.
func (s *PoolScroller) layoutPool() {
	n := len(s.slots)
	s.grid.Recompute(s.cfg.Viewport.Size, n)
	s.paneSize = fyne.NewSize(s.cfg.Viewport.Size.Width, s.grid.preferredSize().Height)
	positions := s.grid.Recompute(s.paneSize, n)

	home := make([]*Slot, n)
	for _, slot := range s.slots {
		home[slot.ID] = slot
	}
	for i, slot := range home {
		slot.Position = positions[i]
	}
	copy(s.slots, home)
}

// poolSizeFor is the pool needed to cover viewport with a spare row above
// and below, never less than DefaultPoolSize.
func poolSizeFor(viewport fyne.Size) int {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return DefaultPoolSize
	}
	columns := narrowColumns
	if viewport.Width/viewport.Height > WideAspectRatio {
		columns = wideColumns
	}
	cell := viewport.Width / float32(columns)
	rows := int(math.Ceil(float64(viewport.Height/cell))) + 2
	return max(DefaultPoolSize, rows*columns)
}

// Resize changes the viewport. A size change starts over from the top of
// the sequence, the same as a fresh Initialize.
func (s *PoolScroller) Resize(size fyne.Size) bool {
	if size == s.cfg.Viewport.Size {
		return false
	}
	s.cfg.Viewport.Size = size
	if s.sink == nil {
		s.layoutPool()
		return true
	}
	s.Initialize(s.sink, s.providerLength)
	return true
}

// SetScrollOffset records how far the host has scrolled the pane.
func (s *PoolScroller) SetScrollOffset(y float32) {
	if y == s.offset {
		return
	}
	s.offset = y
	s.dirty = true
}

// Tick runs one recycling pass. The first call after Initialize only lets
// the layout settle, and later calls do nothing unless the scroll offset
// moved or the previous pass recycled. It reports whether any slot moved.
func (s *PoolScroller) Tick() bool {
	if s.sink == nil {
		return false
	}
	if !s.settled {
		s.settled = true
		return false
	}
	if !s.dirty {
		return false
	}

	if s.recycle() {
		orderSlots(s.slots)
		return true
	}
	s.dirty = false
	return s.clamp()
}

func (s *PoolScroller) recycle() bool {
	page := s.PageOffset()
	half := s.paneSize.Height / 2
	n := len(s.slots)

	recycled := false
	firstFreed := -1
	var batch []*Slot
	for _, slot := range s.slots {
		d := s.displacement(slot)
		switch {
		case d > half:
			if s.atEnd() {
				continue
			}
			slot.Position.Y += page
			s.windowStart++
			s.refresh(slot, s.windowStart+n-1)
			recycled = true
		case d < -half:
			if s.atStart() {
				continue
			}
			slot.Position.Y -= page
			s.windowStart--
			if firstFreed == -1 {
				firstFreed = s.windowStart
			}
			batch = append(batch, slot)
			recycled = true
		}
	}

	if firstFreed != -1 {
		orderTopBatch(batch)
		for k, slot := range batch {
			s.refresh(slot, firstFreed-k)
		}
	}
	return recycled
}

// displacement is how far the center of slot sits above the viewport
// anchor. Positive values mean the slot scrolled past the top.
func (s *PoolScroller) displacement(slot *Slot) float32 {
	cell := s.grid.CellSize()
	toViewport := translateFrame(cell.Width/2, cell.Height/2).then(paneToViewport(s.scrollPos()))
	center := toViewport.apply(slot.Position)
	anchor := s.cfg.Viewport.Size.Height * s.cfg.Viewport.Anchor.Y
	return anchor - center.Y
}

func (s *PoolScroller) refresh(slot *Slot, index int) {
	ok := index >= 0 && index < s.length-s.emptyTrailing
	slot.HasContent = ok
	slot.Visible = ok
	slot.Index = -1
	if ok {
		slot.Index = index
	}
	if s.sink != nil {
		s.sink.RefreshContent(slot, index, ok)
	}
}

func (s *PoolScroller) atStart() bool {
	return s.windowStart <= 0
}

func (s *PoolScroller) atEnd() bool {
	return s.windowStart >= s.length-len(s.slots)
}

func (s *PoolScroller) scrollPos() fyne.Position {
	return fyne.NewPos(0, s.offset)
}

// PageOffset is how far a slot jumps when it is recycled: the height of
// the whole pool including one spacing gap.
func (s *PoolScroller) PageOffset() float32 {
	return s.paneSize.Height - s.grid.Padding().Vertical() + s.grid.Spacing().Height
}

// ContentExtent is the height the host needs to scroll the full sequence.
func (s *PoolScroller) ContentExtent() float32 {
	pad := s.grid.Padding().Vertical()
	rows := ceilDiv(s.length, s.grid.Columns())
	if rows == 0 {
		return pad
	}
	cell, spacing := s.grid.CellSize(), s.grid.Spacing()
	return pad + float32(rows)*cell.Height + float32(rows-1)*spacing.Height
}

func (s *PoolScroller) Slots() []*Slot         { return s.slots }
func (s *PoolScroller) WindowStart() int       { return s.windowStart }
func (s *PoolScroller) Len() int               { return s.length }
func (s *PoolScroller) EmptyTrailing() int     { return s.emptyTrailing }
func (s *PoolScroller) ScrollOffset() float32  { return s.offset }
func (s *PoolScroller) PaneSize() fyne.Size    { return s.paneSize }
func (s *PoolScroller) CellSize() fyne.Size    { return s.grid.CellSize() }
func (s *PoolScroller) Columns() int           { return s.grid.Columns() }
func (s *PoolScroller) Viewport() fyne.Size    { return s.cfg.Viewport.Size }
func (s *PoolScroller) Spacing() fyne.Size     { return s.grid.Spacing() }
func (s *PoolScroller) GridPadding() Padding   { return s.grid.Padding() }
