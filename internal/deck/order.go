package deck

// Order is the presentation sequence of global slide ids together with the
// current position. The sequence is distinct from source-document page order:
// ids keep pointing at the same page no matter how the order is rearranged.
//
// All mutating operations keep the invariant that the current position stays
// inside [0, Len) while the order is non-empty, and that it keeps pointing at
// the semantically same slide across moves. Out-of-range arguments are
// rejected by returning false rather than by error: they originate from UI
// state (a stale selection after a delete) and are not faults.
type Order struct {
	ids     []int
	current int
}

// NewOrder returns an empty Order.
func NewOrder() *Order {
	return &Order{}
}

// Append adds ids to the end of the order. Duplicate ids are skipped.
func (o *Order) Append(ids []int) {
	for _, id := range ids {
		if o.contains(id) {
			continue
		}
		o.ids = append(o.ids, id)
	}
}

// Move removes the slide at from and reinserts it at to. The current
// position follows the rearrangement so it still points at the same slide.
// Returns false (and changes nothing) if either index is out of range.
func (o *Order) Move(from, to int) bool {
	if from < 0 || from >= len(o.ids) || to < 0 || to >= len(o.ids) {
		return false
	}
	if from == to {
		return false
	}

	id := o.ids[from]
	o.ids = append(o.ids[:from], o.ids[from+1:]...)
	o.ids = append(o.ids[:to], append([]int{id}, o.ids[to:]...)...)

	switch {
	case o.current == from:
		o.current = to
	case from < o.current && o.current <= to:
		o.current--
	case to <= o.current && o.current < from:
		o.current++
	}
	return true
}

// Delete removes the slide at position. The last remaining slide cannot be
// deleted. If the current slide itself is removed, the position moves to the
// next remaining slide, or the new last slide when there is none after.
func (o *Order) Delete(position int) bool {
	if len(o.ids) <= 1 {
		return false
	}
	if position < 0 || position >= len(o.ids) {
		return false
	}

	o.ids = append(o.ids[:position], o.ids[position+1:]...)

	if o.current >= len(o.ids) {
		o.current = len(o.ids) - 1
	} else if o.current > position {
		o.current--
	}
	return true
}

// JumpTo sets the current position. Returns false if out of range.
func (o *Order) JumpTo(position int) bool {
	if position < 0 || position >= len(o.ids) {
		return false
	}
	o.current = position
	return true
}

// Replace swaps in a whole new sequence, deduplicated in first-seen order,
// and clamps the current position into range. Used when restoring a saved
// layout.
func (o *Order) Replace(ids []int) {
	o.ids = o.ids[:0]
	o.Append(ids)
	if o.current >= len(o.ids) {
		o.current = len(o.ids) - 1
	}
	if o.current < 0 {
		o.current = 0
	}
}

// Current returns the current position, clamped to 0 for an empty order.
func (o *Order) Current() int {
	return o.current
}

// CurrentID returns the global slide id at the current position.
// ok is false when the order is empty.
func (o *Order) CurrentID() (id int, ok bool) {
	return o.IDAt(o.current)
}

// IDAt returns the global slide id at position.
func (o *Order) IDAt(position int) (id int, ok bool) {
	if position < 0 || position >= len(o.ids) {
		return 0, false
	}
	return o.ids[position], true
}

// Len returns the number of slides in the order.
func (o *Order) Len() int {
	return len(o.ids)
}

// IDs returns a copy of the order.
func (o *Order) IDs() []int {
	out := make([]int, len(o.ids))
	copy(out, o.ids)
	return out
}

func (o *Order) contains(id int) bool {
	for _, have := range o.ids {
		if have == id {
			return true
		}
	}
	return false
}
