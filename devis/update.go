package devis

// Update is a three-state edit value for SetItem: keep the current value,
// clear the whole selection, or set a concrete amount. It replaces the dual
// use of a single sentinel for both "unchanged" and "remove".
type Update struct {
	kind  updateKind
	value int
}

type updateKind int

const (
	kindKeep updateKind = iota
	kindClear
	kindSet
)

// Keep leaves the current value untouched.
func Keep() Update { return Update{kind: kindKeep} }

// Clear removes the selection entirely.
func Clear() Update { return Update{kind: kindClear} }

// Set replaces the current value with v.
func Set(v int) Update { return Update{kind: kindSet, value: v} }

// cleared reports whether this update removes the selection. A concrete
// value <= 0 clears, it never keeps a zero-quantity line around.
func (u Update) cleared() bool {
	return u.kind == kindClear || (u.kind == kindSet && u.value <= 0)
}

// get returns the concrete value, if one was supplied.
func (u Update) get() (int, bool) {
	if u.kind == kindSet && u.value > 0 {
		return u.value, true
	}
	return 0, false
}
