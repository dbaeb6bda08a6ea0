package domain

// HistoryCapacity bounds the undo/redo buffer. When a push would exceed
// it, the oldest snapshot is evicted.
const HistoryCapacity = 50

// History is a linear undo/redo buffer of canvas snapshots with a cursor
// pointing at the current one. Pushing while the cursor is not at the tail
// discards the redo tail first.
type History struct {
	Entries []string `json:"entries"`
	Cursor  int      `json:"cursor"`
}

// Push appends a snapshot after the cursor and moves the cursor to it.
// Any entries past the cursor (the redo tail) are dropped. When the buffer
// exceeds HistoryCapacity the oldest entry is evicted and the cursor
// shifts down with it.
func (h *History) Push(snapshot string) {
	if len(h.Entries) == 0 {
		h.Entries = []string{snapshot}
		h.Cursor = 0
		return
	}

	h.Entries = append(h.Entries[:h.Cursor+1], snapshot)
	h.Cursor++

	if len(h.Entries) > HistoryCapacity {
		h.Entries = h.Entries[1:]
		h.Cursor--
	}
}

// Undo moves the cursor back one snapshot and returns it. At the start of
// the history there is nothing to restore.
func (h *History) Undo() (string, error) {
	if h.Cursor <= 0 {
		return "", ErrNothingToUndo
	}
	h.Cursor--
	return h.Entries[h.Cursor], nil
}

// Redo moves the cursor forward one snapshot and returns it.
func (h *History) Redo() (string, error) {
	if h.Cursor >= len(h.Entries)-1 {
		return "", ErrNothingToRedo
	}
	h.Cursor++
	return h.Entries[h.Cursor], nil
}

// Current returns the snapshot at the cursor.
func (h *History) Current() (string, bool) {
	if len(h.Entries) == 0 {
		return "", false
	}
	return h.Entries[h.Cursor], true
}

func (h *History) Len() int {
	return len(h.Entries)
}

// CanUndo reports whether the cursor can move back.
func (h *History) CanUndo() bool {
	return h.Cursor > 0
}

// CanRedo reports whether the cursor can move forward.
func (h *History) CanRedo() bool {
	return h.Cursor < len(h.Entries)-1
}
