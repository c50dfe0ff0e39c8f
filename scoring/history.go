package scoring

import "github.com/justinjudd/scoreboard/models"

// DefaultUndoLimit caps the number of snapshots kept for undo
const DefaultUndoLimit = 100

// History is the ordered log of annotated points, one entry per scored point that carried detail
type History struct {
	points []models.PointDetail
}

// NewHistory creates an empty point log
func NewHistory() *History {
	return &History{}
}

// Append records p at the end of the log
func (h *History) Append(p models.PointDetail) {
	h.points = append(h.points, p.Clone())
}

// All returns a copy of every recorded point in call order
func (h *History) All() []models.PointDetail {
	out := make([]models.PointDetail, len(h.points))
	for i, p := range h.points {
		out[i] = p.Clone()
	}
	return out
}

// Last returns the most recently recorded point
func (h *History) Last() (models.PointDetail, bool) {
	if len(h.points) == 0 {
		return models.PointDetail{}, false
	}
	return h.points[len(h.points)-1].Clone(), true
}

// Len is the number of recorded points
func (h *History) Len() int {
	return len(h.points)
}

// Truncate drops every point after the first n
func (h *History) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(h.points) {
		return
	}
	for i := n; i < len(h.points); i++ {
		h.points[i] = models.PointDetail{}
	}
	h.points = h.points[:n]
}

// Clear empties the log
func (h *History) Clear() {
	h.points = nil
}

func (h *History) replace(points []models.PointDetail) {
	h.Clear()
	for _, p := range points {
		h.Append(p)
	}
}

type undoEntry struct {
	state      models.MatchState
	historyLen int
}

// undoStack keeps at most limit entries; the oldest is dropped first
type undoStack struct {
	entries []undoEntry
	limit   int
}

func newUndoStack(limit int) *undoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &undoStack{limit: limit}
}

func (u *undoStack) push(e undoEntry) {
	u.entries = append(u.entries, e)
	if over := len(u.entries) - u.limit; over > 0 {
		u.entries = append(u.entries[:0], u.entries[over:]...)
	}
}

func (u *undoStack) pop() (undoEntry, bool) {
	if len(u.entries) == 0 {
		return undoEntry{}, false
	}
	last := u.entries[len(u.entries)-1]
	u.entries[len(u.entries)-1] = undoEntry{}
	u.entries = u.entries[:len(u.entries)-1]
	return last, true
}

func (u *undoStack) len() int {
	return len(u.entries)
}

func (u *undoStack) clear() {
	u.entries = nil
}
