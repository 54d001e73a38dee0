package gallery

import "fyne.io/fyne/v2"

// clamp pins slots to the first or last rows of the viewport once the
// window reaches an end of the sequence, so an over-scrolled grid does not
// open a gap. Each row has its own line; only slots that crossed their line
// are moved. The tail wins when the whole sequence fits in the pool.
func (s *PoolScroller) clamp() bool {
	cell := s.grid.CellSize()
	pad := s.grid.Padding()
	step := cell.Height + s.grid.Spacing().Height
	cols := s.grid.Columns()

	toViewport := translateFrame(cell.Width/2, cell.Height/2).then(paneToViewport(s.scrollPos()))
	toPane := toViewport.inverse()

	moved := false
	switch {
	case s.atEnd():
		line := s.cfg.Viewport.Size.Height - pad.Bottom - cell.Height/2
		count := 0
		for i := len(s.slots) - 1; i >= 0; i-- {
			if count >= cols {
				line -= step
				count = 0
			}
			if pinSlot(s.slots[i], line, false, toViewport, toPane) {
				moved = true
			}
			count++
		}
	case s.atStart():
		line := pad.Top + cell.Height/2
		count := 0
		for _, slot := range s.slots {
			if count >= cols {
				line += step
				count = 0
			}
			if pinSlot(slot, line, true, toViewport, toPane) {
				moved = true
			}
			count++
		}
	}
	return moved
}

// pinSlot moves slot so its center sits on line (viewport space) when it
// has crossed it. below selects which side counts as crossed: below the
// line for the head of the sequence, above it for the tail.
func pinSlot(slot *Slot, line float32, below bool, toViewport, toPane frame) bool {
	center := toViewport.apply(slot.Position)
	if below && center.Y <= line {
		return false
	}
	if !below && center.Y >= line {
		return false
	}

	target := toPane.apply(fyne.NewPos(center.X, line))
	slot.Position.Y = target.Y
	return true
}
