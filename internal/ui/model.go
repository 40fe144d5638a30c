// Package ui is the terminal host: a bubbletea model that renders the
// photo feed and composites the navigator widget over its right edge.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/viewfinderco/feeddial/internal/feed"
	"github.com/viewfinderco/feeddial/internal/navigator"
	"github.com/viewfinderco/feeddial/internal/render"
	"github.com/viewfinderco/feeddial/internal/util"
)

const (
	maxWidgetCols = 36
	minWidgetCols = 20
	textureCols   = 16
)

// Model is the application root. It implements navigator.Host, so the
// control pulls row geometry and labels straight from the feed it
// renders. Everything runs on bubbletea's single Update goroutine.
type Model struct {
	feed   *feed.Feed
	thumbs *feed.ThumbLoader
	ctrl   *navigator.Control
	rec    *recognizer
	rend   *render.Renderer
	tex    *render.Texture

	keys keyMap
	help help.Model

	// labelCache is the host-side view cache; entries move out of it
	// while the control owns the handle for curved drawing.
	labelCache map[int]navigator.LabelHandle

	scroll    float64 // top of viewport, in fractional cell rows
	width     int
	height    int
	bodyRows  int
	widgetW   int // cells
	cells     [][]render.Cell
	ticking   bool
	lastFrame time.Time
	lastWheel time.Time
	quitting  bool
}

func New(f *feed.Feed) *Model {
	p := navigator.DefaultParams()
	m := &Model{
		feed:       f,
		thumbs:     feed.NewThumbLoader(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		labelCache: make(map[int]navigator.LabelHandle),
	}
	m.ctrl = navigator.New(m, p)
	m.ctrl.SetDrawContext(render.SharedContext())
	m.rec = newRecognizer(m.ctrl, p)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.ensureFrames()

	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.MouseMsg:
		cmd := m.onMouse(msg)
		return m, tea.Batch(cmd, m.ensureFrames())

	case longPressMsg:
		m.rec.longPress(msg.seq)
		return m, m.ensureFrames()

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame).Seconds()
		m.lastFrame = now
		if m.ctrl.Tick(dt) {
			return m, frameTick()
		}
		m.ticking = false
		return m, nil
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.bodyRows = h - 1
	if m.bodyRows < 1 {
		m.bodyRows = 1
	}
	m.widgetW = w / 2
	if m.widgetW > maxWidgetCols {
		m.widgetW = maxWidgetCols
	}
	if m.widgetW < minWidgetCols {
		m.widgetW = minWidgetCols
	}
	if m.widgetW > w {
		m.widgetW = w
	}
	if m.rend == nil {
		m.rend = render.NewRenderer(m.widgetW, m.bodyRows)
	} else {
		m.rend.Resize(m.widgetW, m.bodyRows)
	}
	m.cells = nil
	m.ctrl.SetViewport(
		float64(m.widgetW*render.DotsPerCellX),
		float64(m.bodyRows*render.DotsPerCellY),
	)
	m.ctrl.Invalidate()
	m.tex = feed.Texture(m.feed, m.thumbs, textureCols)
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.hostScroll(-2)
	case key.Matches(msg, m.keys.Down):
		m.hostScroll(2)
	case key.Matches(msg, m.keys.PageUp):
		m.hostScroll(-float64(m.bodyRows))
	case key.Matches(msg, m.keys.PageDown):
		m.hostScroll(float64(m.bodyRows))
	case key.Matches(msg, m.keys.Open):
		m.ctrl.Open()
	case key.Matches(msg, m.keys.Close):
		m.ctrl.Close()
	case key.Matches(msg, m.keys.Dial):
		m.ctrl.SetPreferredShape(navigator.ShapeDial)
	case key.Matches(msg, m.keys.Timeline):
		m.ctrl.SetPreferredShape(navigator.ShapeTimeline)
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GesturePinch, Scale: 1.15})
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GesturePinch, Scale: 0.87})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, m.ensureFrames()
}

// onMouse routes the mouse stream to the recognizer in widget-local dot
// coordinates. The widget owns the rightmost columns; presses further
// left land outside the activation margins and fall through as no-ops.
func (m *Model) onMouse(msg tea.MouseMsg) tea.Cmd {
	now := time.Now()
	loc := navigator.Vec2{
		X: float64((msg.X - (m.width - m.widgetW)) * render.DotsPerCellX),
		Y: float64(msg.Y * render.DotsPerCellY),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.Ctrl {
				m.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GesturePinch, Scale: 1.1})
				return nil
			}
			m.hostScroll(-3)
		case tea.MouseButtonWheelDown:
			if msg.Ctrl {
				m.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GesturePinch, Scale: 0.9})
				return nil
			}
			m.hostScroll(3)
		case tea.MouseButtonLeft:
			return m.rec.press(loc, now)
		}
	case tea.MouseActionMotion:
		m.rec.motion(loc, now)
	case tea.MouseActionRelease:
		m.rec.release(loc, now)
	}
	return nil
}

// hostScroll applies a user scroll of the given cell delta and feeds the
// movement to the control so the indicator can wake.
func (m *Model) hostScroll(cells float64) {
	now := time.Now()
	dt := now.Sub(m.lastWheel).Seconds()
	if dt <= 0 || dt > 0.25 {
		dt = 0.05
	}
	m.lastWheel = now
	m.ctrl.HostScrolled(cells*render.DotsPerCellY, dt)
	if mode := m.ctrl.Mode(); mode != navigator.ModeInactive && mode != navigator.ModeScrolling {
		return
	}
	m.scroll = m.clampScroll(m.scroll + cells)
}

func (m *Model) clampScroll(s float64) float64 {
	max := float64(m.feed.TotalHeight() - m.bodyRows)
	if max < 0 {
		max = 0
	}
	if s < 0 {
		return 0
	}
	if s > max {
		return max
	}
	return s
}

func (m *Model) ensureFrames() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	m.lastFrame = time.Now()
	return frameTick()
}

// navigator.Host implementation. The control works in dot coordinates;
// the feed stores cell rows, so bounds scale by the dots-per-cell grid.

func (m *Model) RowCount() int { return m.feed.Len() }

func (m *Model) RowBounds(index int) navigator.Rect {
	e := m.feed.Entry(index)
	return navigator.Rect{
		Y: float64(m.feed.Position(index) * render.DotsPerCellY),
		W: float64(m.widgetW * render.DotsPerCellX),
		H: float64(e.Height * render.DotsPerCellY),
	}
}

func (m *Model) RowInfo(index int) navigator.RowInfo {
	e := m.feed.Entry(index)
	return navigator.RowInfo{
		Timestamp: float64(e.Timestamp.Unix()),
		Weight:    e.Weight,
		Unviewed:  e.Unviewed,
		Kind:      e.Kind,
	}
}

func (m *Model) IsSubrow(index int) bool { return m.feed.Entry(index).Subrow }

func (m *Model) TimeScaleSeconds() float64 { return m.feed.SpanSeconds() }

func (m *Model) ContentInsets() (top, bottom float64) { return 0, 0 }

func (m *Model) RequestLabel(index int, prev navigator.LabelHandle, takeOwnership bool) navigator.LabelHandle {
	h := prev
	if h == nil {
		h = m.labelCache[index]
	}
	if h == nil {
		if index < 0 || index >= m.feed.Len() {
			return nil
		}
		h = feed.RenderLabel(m.feed.Entry(index))
	}
	if takeOwnership {
		delete(m.labelCache, index)
	} else {
		m.labelCache[index] = h
	}
	return h
}

func (m *Model) ReturnLabel(index int, handle navigator.LabelHandle) {
	m.labelCache[index] = handle
}

func (m *Model) IsAlive() bool { return m.width > 0 && !m.quitting }

func (m *Model) TimeAscending() bool { return true }

func (m *Model) DisplayPositionIndicator() bool { return true }

func (m *Model) FormatPositionIndicator(ts float64) string { return util.FormatMonth(ts) }

func (m *Model) FormatCurrentTime(ts float64) string { return util.FormatDay(ts) }

func (m *Model) ScrollBegin() {}

// ScrollUpdate is authoritative: the control's position wins even while
// the user is also wheel-scrolling.
func (m *Model) ScrollUpdate(position float64, animated bool) {
	m.scroll = m.clampScroll(position / render.DotsPerCellY)
}

func (m *Model) ScrollFinish() {
	m.scroll = m.clampScroll(m.scroll)
}

func (m *Model) View() string {
	if m.width == 0 || m.rend == nil {
		return "loading feed…"
	}

	if cells, ok := m.rend.Draw(m.ctrl.Scene(), m.tex); ok {
		m.cells = cells
	}

	textW := m.width - m.widgetW
	top := int(math.Round(m.clampScroll(m.scroll)))

	var sb strings.Builder
	for row := 0; row < m.bodyRows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		line := m.feedLine(top + row)
		sb.WriteString(padLine(line, textW))
		if m.cells != nil && row < len(m.cells) {
			sb.WriteString(render.RenderCells(m.cells[row]))
		}
	}
	sb.WriteByte('\n')
	sb.WriteString(m.statusLine(top))
	return sb.String()
}

// feedLine renders the feed content at one absolute cell row.
func (m *Model) feedLine(absRow int) string {
	i := m.feed.EntryAt(absRow)
	if i < 0 {
		return ""
	}
	e := m.feed.Entry(i)
	rel := absRow - m.feed.Position(i)

	switch e.Kind {
	case navigator.RowHeader:
		if rel != 0 {
			return ""
		}
		marker := "  "
		if e.Unviewed {
			marker = unviewedStyle.Render("● ")
		}
		return marker + headerStyle.Render(e.Title) + "  " +
			timestampStyle.Render(e.Timestamp.Format("Jan 2, 2006"))
	case navigator.RowPhotos:
		if rel == 0 {
			n := e.PhotoCount
			if n > 8 {
				n = 8
			}
			blocks := strings.TrimRight(strings.Repeat("▣ ", n), " ")
			return "    " + photoStyle.Render(blocks) + " " +
				timestampStyle.Render(fmt.Sprintf("(%d)", e.PhotoCount))
		}
		return "    " + photoStyle.Render("▢ ▢ ▢")
	case navigator.RowActivity:
		return "    " + activityStyle.Render("· "+e.Title)
	case navigator.RowReplyActivity:
		return "    " + activityStyle.Render("↩ reply · "+e.Timestamp.Format("Jan 2"))
	case navigator.RowUpdate:
		return "    " + updateStyle.Render("— updated "+e.Timestamp.Format("Jan 2"))
	case navigator.RowFooter:
		return ""
	}
	return ""
}

func (m *Model) statusLine(top int) string {
	var when string
	if i := m.feed.EntryAt(top); i >= 0 {
		when = util.FormatDay(float64(m.feed.Entry(i).Timestamp.Unix()))
	}
	left := statusStyle.Render(when)
	right := m.help.View(m.keys)
	gap := m.width - runewidth.StringWidth(when) - runewidth.StringWidth(stripANSI(right))
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// stripANSI removes SGR sequences so widths can be measured.
func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inSeq = true
		case inSeq:
			if r == 'm' {
				inSeq = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// padLine truncates or pads a styled line to the given column width.
func padLine(s string, w int) string {
	printable := stripANSI(s)
	pw := runewidth.StringWidth(printable)
	if pw > w {
		// Re-render without styling when the line is too long; a styled
		// truncation would need to carry the open sequence across.
		return runewidth.Truncate(printable, w, "…")
	}
	return s + strings.Repeat(" ", w-pw)
}
