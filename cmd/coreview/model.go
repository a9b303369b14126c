package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/document"
	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/layout"
	"github.com/jasonmcghee/texteditorcore/internal/selection"
	"github.com/jasonmcghee/texteditorcore/internal/style"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/jasonmcghee/texteditorcore/internal/syntax"
	"github.com/jasonmcghee/texteditorcore/internal/utils"
)

const gutterWidth = 5

// redrawMsg arrives whenever the syntax worker publishes a fresh parse.
type redrawMsg struct{}

// reloadMsg arrives whenever the watched file changes on disk.
type reloadMsg struct{}

// Model is the bubbletea model driving the reference renderer: it wires
// a document, the coords hub, a layout cache, a style buffer, and a
// background syntax worker into one terminal view. Typing and keyboard
// motion only affect the primary (index 0) selection. Alt-click appends
// extra cursors, which are kept but neither move nor receive insertions;
// a plain click drops them. Alt-drag is not wired up.
type Model struct {
	fs   afero.Fs
	path string
	lang string

	doc      *document.Document
	hub      *coords.Hub
	cache    *layout.Cache
	styleBuf *style.Buffer
	registry *syntax.Registry
	worker   *syntax.Worker
	watcher  *fileWatcher

	selections []selection.Selection
	clicks     selection.ClickTracker
	history    *selection.History

	recentPaths []string
	help        help.Model

	width, height int
	status        string
}

// recordRecent adds path to the model's recently-opened list, deduplicated,
// and traces it as a "file://" URI.
func (m *Model) recordRecent(path string) {
	m.recentPaths = utils.AppendUnique(m.recentPaths, path)
	trace("opened %s", utils.PathToURI(path))
}

func newModel(fs afero.Fs, path string, content string, lang string) (*Model, error) {
	hub := coords.NewHub()
	hub.AttachFontSystem(fontsys.NewMonospace())

	doc := document.New(content)
	sel := selection.New(coords.DocPos{})

	m := &Model{
		fs:         fs,
		path:       path,
		lang:       lang,
		doc:        doc,
		hub:        hub,
		cache:      layout.NewCache(),
		styleBuf:   style.NewBuffer(),
		registry:   syntax.Default(),
		selections: []selection.Selection{sel},
		history:    selection.NewHistory(selection.Snapshot{Tree: doc.Read(), Selections: []selection.Selection{sel}}),
		help:       help.New(),
		status:     fmt.Sprintf("%s  [%s]", path, langLabel(lang)),
	}
	m.cache.MarginX = gutterWidth

	if lang != "" {
		if _, ok := m.registry.Lookup(lang); ok {
			m.worker = syntax.NewWorker(m.registry, lang)
			m.worker.Submit(syntax.ParseRequest{
				Text:      []byte(content),
				Version:   doc.Version(),
				ResetTree: true,
			})
		} else {
			m.status = fmt.Sprintf("%s  [no grammar for %q, showing plain text]", path, lang)
		}
	}

	if w, err := newFileWatcher(path); err == nil {
		m.watcher = w
	}

	m.recordRecent(path)
	return m, nil
}

func langLabel(lang string) string {
	if lang == "" {
		return "plain text"
	}
	return lang
}

// Close releases the background worker and filesystem watcher. Safe to
// call even when neither was ever started.
func (m *Model) Close() {
	if m.worker != nil {
		m.worker.Close()
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForRedraw(m.worker), waitForReload(m.watcher))
}

func waitForRedraw(w *syntax.Worker) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Redraw()
		return redrawMsg{}
	}
}

func waitForReload(w *fileWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Events()
		return reloadMsg{}
	}
}

func (m *Model) primary() selection.Selection {
	return m.selections[0]
}

func (m *Model) setPrimary(s selection.Selection) {
	m.selections[0] = s
}

func (m *Model) tree() *sumtree.Tree {
	return m.doc.Read()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.hub.ViewportWidth = float64(msg.Width-gutterWidth) * m.hub.Metrics.SpaceWidth
		m.hub.ViewportHeight = float64(msg.Height-1) * m.hub.Metrics.LineHeight
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case redrawMsg:
		return m, waitForRedraw(m.worker)

	case reloadMsg:
		m.reloadFromDisk()
		return m, waitForReload(m.watcher)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	trace("key %q cursor=%+v", msg.String(), m.primary().Cursor)

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+z":
		m.undo()
		return m, nil
	case "ctrl+y", "ctrl+r":
		m.redo()
		return m, nil
	case "left":
		m.setPrimary(m.primary().MoveLeft(m.tree(), false))
	case "shift+left":
		m.setPrimary(m.primary().MoveLeft(m.tree(), true))
	case "right":
		m.setPrimary(m.primary().MoveRight(m.tree(), false))
	case "shift+right":
		m.setPrimary(m.primary().MoveRight(m.tree(), true))
	case "up":
		m.setPrimary(m.primary().MoveUp(m.tree(), m.hub, false))
	case "shift+up":
		m.setPrimary(m.primary().MoveUp(m.tree(), m.hub, true))
	case "down":
		m.setPrimary(m.primary().MoveDown(m.tree(), m.hub, false))
	case "shift+down":
		m.setPrimary(m.primary().MoveDown(m.tree(), m.hub, true))
	case "home":
		m.setPrimary(m.primary().MoveLineStart(m.tree(), false))
	case "shift+home":
		m.setPrimary(m.primary().MoveLineStart(m.tree(), true))
	case "end":
		m.setPrimary(m.primary().MoveLineEnd(m.tree(), false))
	case "shift+end":
		m.setPrimary(m.primary().MoveLineEnd(m.tree(), true))
	case "backspace":
		m.applyBackspace()
	case "delete":
		m.applyDelete()
	case "enter":
		m.applyInsert("\n")
	case "tab":
		m.applyInsert("\t")
	default:
		if len(msg.Runes) > 0 {
			m.applyInsert(string(msg.Runes))
		}
	}

	m.primary().ScrollToCursor(m.hub, m.tree())
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	pos := m.hub.LayoutToDocWithTree(
		coords.LayoutPos{
			X: m.hub.ScrollX + float64(msg.X-gutterWidth)*m.hub.Metrics.SpaceWidth,
			Y: m.hub.ScrollY + float64(msg.Y)*m.hub.Metrics.LineHeight,
		},
		m.tree(),
	)

	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Alt:
		m.selections = selection.AltClick(m.selections, pos)
	case msg.Button == tea.MouseButtonLeft && msg.Shift:
		m.setPrimary(selection.ShiftClick(m.primary(), m.tree(), pos))
	case msg.Button == tea.MouseButtonLeft:
		switch m.clicks.Click(pos, time.Now()) {
		case selection.ClickDouble:
			m.setPrimary(selection.SelectWord(m.tree(), pos))
		case selection.ClickTriple:
			m.setPrimary(selection.SelectLine(m.tree(), pos))
		default:
			m.setPrimary(selection.New(pos))
		}
		m.selections = m.selections[:1]
	case msg.Button == tea.MouseButtonWheelUp:
		m.hub.ScrollY -= 3 * m.hub.Metrics.LineHeight
	case msg.Button == tea.MouseButtonWheelDown:
		m.hub.ScrollY += 3 * m.hub.Metrics.LineHeight
	}

	if m.hub.ScrollY < 0 {
		m.hub.ScrollY = 0
	}
	if m.hub.ScrollX < 0 {
		m.hub.ScrollX = 0
	}
	return m, nil
}

func (m *Model) applyInsert(text string) {
	edit, newSel, result := selection.Insert(m.tree(), m.primary(), text)
	m.commit(edit, newSel, result)
}

func (m *Model) applyBackspace() {
	edit, newSel, result, ok := selection.Backspace(m.tree(), m.primary())
	if !ok {
		return
	}
	m.commit(edit, newSel, result)
}

func (m *Model) applyDelete() {
	edit, newSel, result, ok := selection.Delete(m.tree(), m.primary())
	if !ok {
		return
	}
	m.commit(edit, newSel, result)
}

// commit publishes result as the document's new tree, records it for
// undo/redo, feeds the pending-edit log the style buffer needs to shift
// stale tokens, and kicks off an incremental background reparse.
func (m *Model) commit(edit document.Edit, newSel selection.Selection, result *sumtree.Tree) {
	oldTree := m.tree()
	published := m.doc.ReplaceTree(result)
	m.setPrimary(newSel)
	m.styleBuf.RecordEdit(edit)
	m.history.Record(selection.Snapshot{Tree: published, Selections: cloneSelections(m.selections)}, time.Now())

	if m.worker != nil {
		textEdit := syntax.TextEditFromEdit(oldTree, published, edit)
		m.worker.Submit(syntax.ParseRequest{
			Text:    []byte(published.FlattenToString()),
			Version: published.Version(),
			Edit:    &textEdit,
		})
	}
}

func (m *Model) undo() {
	snap, ok := m.history.Undo()
	if !ok {
		return
	}
	m.restore(snap)
}

func (m *Model) redo() {
	snap, ok := m.history.Redo()
	if !ok {
		return
	}
	m.restore(snap)
}

func (m *Model) restore(snap selection.Snapshot) {
	published := m.doc.ReplaceTree(snap.Tree)
	if len(snap.Selections) > 0 {
		m.selections = cloneSelections(snap.Selections)
	}
	if m.worker != nil {
		m.worker.Submit(syntax.ParseRequest{
			Text:      []byte(published.FlattenToString()),
			Version:   published.Version(),
			ResetTree: true,
		})
	}
}

func cloneSelections(sels []selection.Selection) []selection.Selection {
	out := make([]selection.Selection, len(sels))
	copy(out, sels)
	return out
}

// reloadFromDisk re-reads path after an external change, replacing the
// document wholesale. Local edits made since the last load are lost in
// favor of what's on disk, matching a "the file changed under you"
// reload rather than a merge.
func (m *Model) reloadFromDisk() {
	trace("reloading %s from disk", m.path)

	content, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		m.status = fmt.Sprintf("%s  [reload failed: %s]", m.path, err)
		return
	}

	newTree := sumtree.FromString(string(content))
	published := m.doc.ReplaceTree(newTree)
	m.selections = []selection.Selection{selection.New(coords.DocPos{})}
	m.history = selection.NewHistory(selection.Snapshot{Tree: published, Selections: cloneSelections(m.selections)})
	m.status = fmt.Sprintf("%s  [%s] (reloaded %s)", m.path, langLabel(m.lang), utils.PathToURI(m.path))
	m.recordRecent(m.path)

	if m.worker != nil {
		m.worker.Submit(syntax.ParseRequest{
			Text:      content,
			Version:   published.Version(),
			ResetTree: true,
		})
	}
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	tree := m.tree()
	m.cache.Rebuild(tree, m.hub, m.hub.FontSystem)
	m.cache.UpdateVisibleRange(m.hub, tree)

	if m.worker != nil {
		if pub := m.worker.Published(); pub != nil {
			tokens := toTokenRanges(pub.Effects)
			m.styleBuf.UpdateSyntax(m.cache, tokens, pub.Version == tree.Version())
		}
	}

	selStart, selEnd := m.primary().Range()
	selStartByte := tree.DocPosToByte(selStart.Line, selStart.Column)
	selEndByte := tree.DocPosToByte(selEnd.Line, selEnd.Column)

	var b strings.Builder
	startLine, endLine := m.cache.VisibleLineRange()
	cursor := m.primary().Cursor
	for _, line := range m.cache.Lines() {
		if int(line.LineNumber) < startLine || int(line.LineNumber) > endLine {
			continue
		}
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%d", line.LineNumber+1)))
		b.WriteString(" ")
		b.WriteString(m.renderLine(line, selStartByte, selEndByte, cursor))
		b.WriteString("\n")
	}

	b.WriteString(statusBarStyle.Render(m.status))
	b.WriteString("  ")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// renderLine renders one line's glyphs, applying token styling, selection
// highlight, and (tracking a running column count as it goes, since each
// styled glyph is rendered as its own ANSI-wrapped run and so can't be
// patched by rune-indexing the already-rendered string) the cursor.
func (m *Model) renderLine(line layout.LineInfo, selStartByte, selEndByte uint64, cursor coords.DocPos) string {
	glyphs := m.cache.VisibleGlyphsWithStyle()
	isCursorLine := uint32(cursor.Line) == line.LineNumber

	var b strings.Builder
	col := uint32(0)
	wroteCursor := false
	for _, g := range glyphs {
		if g.CharByteOffset < line.ByteStart || g.CharByteOffset >= line.ByteEnd {
			continue
		}
		if g.Char == 0 || g.Char == '\n' {
			continue
		}

		s := styleForToken(g.TokenID)
		if g.CharByteOffset >= selStartByte && g.CharByteOffset < selEndByte {
			s = s.Inherit(selectionStyle)
		}
		if isCursorLine && col == cursor.Column {
			s = cursorStyle
			wroteCursor = true
		}
		b.WriteString(s.Render(string(g.Char)))
		col++
	}
	if isCursorLine && !wroteCursor {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func toTokenRanges(effects []style.TextEffect) []style.TokenRange {
	out := make([]style.TokenRange, 0, len(effects))
	for _, e := range effects {
		kind, ok := e.Payload.(syntax.TokenKind)
		if !ok {
			continue
		}
		out = append(out, style.TokenRange{Range: e.Range, TokenID: uint16(kind)})
	}
	return out
}
