package navigator

// RowKind discriminates the feed row variants. Switches over it are
// exhaustive; there is no catch-all row type.
type RowKind uint8

const (
	RowHeader RowKind = iota
	RowActivity
	RowPhotos
	RowUpdate
	RowReplyActivity
	RowFooter
)

func (k RowKind) String() string {
	switch k {
	case RowHeader:
		return "header"
	case RowActivity:
		return "activity"
	case RowPhotos:
		return "photos"
	case RowUpdate:
		return "update"
	case RowReplyActivity:
		return "reply-activity"
	case RowFooter:
		return "footer"
	}
	return "unknown"
}

// RowInfo is the per-row metadata the host reports for one index.
type RowInfo struct {
	Timestamp float64 // unix seconds
	Weight    float64
	Unviewed  bool
	Kind      RowKind
}

// LabelHandle is a host-owned rendered label. Ownership is exclusive:
// while the control draws the label along a curved path it holds the
// handle, otherwise the handle lives in the host's own view cache.
type LabelHandle interface {
	Text() string
	Width() int
}

// Host is the scrollable list the control navigates. All calls are
// pull-based and arrive at most once per frame or per gesture, on the
// same goroutine as the control itself.
type Host interface {
	RowCount() int
	RowBounds(index int) Rect
	RowInfo(index int) RowInfo
	IsSubrow(index int) bool

	// TimeScaleSeconds is the total time span the list represents; it
	// picks the outer/inner time-bucket granularity.
	TimeScaleSeconds() float64

	// ContentInsets keeps the mapped range in sync with the host's own
	// scroll insets.
	ContentInsets() (top, bottom float64)

	// RequestLabel returns a rendered label for the row, reusing prev
	// when possible. takeOwnership is set while the control draws the
	// label itself along a curved path. A nil return means the row is
	// skipped this frame.
	RequestLabel(index int, prev LabelHandle, takeOwnership bool) LabelHandle
	ReturnLabel(index int, handle LabelHandle)

	// IsAlive lets the host veto activation during transient states.
	IsAlive() bool

	TimeAscending() bool
	DisplayPositionIndicator() bool
	FormatPositionIndicator(timestamp float64) string
	FormatCurrentTime(timestamp float64) string

	// Scroll feedback protocol. Update calls are authoritative: the
	// host must apply them even during its own user-driven scrolling.
	ScrollBegin()
	ScrollUpdate(position float64, animated bool)
	ScrollFinish()
}
