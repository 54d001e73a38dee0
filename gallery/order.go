package gallery

import "sort"

// orderSlots sorts the pool so the slot highest on screen comes first,
// which is iteration order for recycling and clamping. Slots on the same
// row keep their relative order.
func orderSlots(slots []*Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Position.Y < slots[j].Position.Y
	})
}

// orderTopBatch sorts slots moved to the top in one pass so that counting
// down from the first freed index gives reading order: lowest row first,
// rightmost first within a row.
func orderTopBatch(batch []*Slot) {
	sort.SliceStable(batch, func(i, j int) bool {
		if batch[i].Position.Y != batch[j].Position.Y {
			return batch[i].Position.Y > batch[j].Position.Y
		}
		return batch[i].Position.X > batch[j].Position.X
	})
}
