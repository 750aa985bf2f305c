package model

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
)

// sanitizePreview flattens a note body to a single line and strips
// control characters so note content cannot smuggle escape sequences
// into the rendered list.
func sanitizePreview(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// notePreview returns the first 100 characters of the sanitized
// content, with an ellipsis marker only when something was cut off.
func notePreview(content string) string {
	runes := []rune(sanitizePreview(content))
	if len(runes) > previewLen {
		return string(runes[:previewLen]) + "…"
	}
	return string(runes)
}

func matchesQuery(n api.Note, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// sortedNotes returns the collection filtered by query, newest update
// first. Pure: no remote call, no state mutation.
func sortedNotes(notes map[string]api.Note, query string) []api.Note {
	out := make([]api.Note, 0, len(notes))
	for _, n := range notes {
		if matchesQuery(n, query) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// refreshList rebuilds the list items from the collection, keeping the
// active highlight on the note bound to the editor.
func (m *Model) refreshList() {
	activeID := ""
	if m.editor.mode == editorEditing {
		activeID = m.editor.note.ID
	}

	notes := sortedNotes(m.notes, m.searchTerm)
	items := make([]list.Item, 0, len(notes))
	activeIdx := -1
	for i, n := range notes {
		active := n.ID == activeID
		if active {
			activeIdx = i
		}
		items = append(items, listItem{
			id:        n.ID,
			title:     n.Title,
			preview:   notePreview(n.Content),
			updatedAt: n.UpdatedAt,
			active:    active,
		})
	}
	m.list.SetItems(items)
	if activeIdx >= 0 {
		m.list.Select(activeIdx)
	}
}

// selectNote binds the editor to the note with the given id. Unknown
// ids are a no-op.
func (m *Model) selectNote(id string) {
	n, exists := m.notes[id]
	if !exists {
		return
	}
	note := n
	m.editor = editorState{mode: editorEditing, note: &note}
	m.editorGen++
	m.titleInput.SetValue(note.Title)
	m.contentInput.SetValue(note.Content)
	m.focusTitle()
	m.autoSaveID++ // drop any pending auto-save from the previous note
	m.state = stateEdit
	m.refreshList()
}

// createNew opens a blank editor with no backing note.
func (m *Model) createNew() {
	m.editor = editorState{mode: editorCreating}
	m.editorGen++
	m.titleInput.SetValue("")
	m.contentInput.SetValue("")
	m.focusTitle()
	m.autoSaveID++
	m.state = stateEdit
	m.refreshList()
}

// cancelEdit reverts unsaved edits. While editing it restores the
// last-saved values without closing the editor; while creating it
// closes the editor entirely.
func (m *Model) cancelEdit() {
	switch m.editor.mode {
	case editorEditing:
		m.titleInput.SetValue(m.editor.note.Title)
		m.contentInput.SetValue(m.editor.note.Content)
		m.autoSaveID++
	case editorCreating:
		m.editor = editorState{mode: editorClosed}
		m.editorGen++
		m.state = stateList
		m.refreshList()
	}
}

func (m *Model) focusTitle() {
	m.titleInput.Focus()
	m.contentInput.Blur()
}

func (m *Model) focusContent() {
	m.titleInput.Blur()
	m.contentInput.Focus()
}

func (m *Model) toggleEditorFocus() {
	if m.titleInput.Focused() {
		m.focusContent()
	} else {
		m.focusTitle()
	}
}

// armAutoSave restarts the debounce timer. The returned tick carries
// the current generation; stale ticks are ignored on arrival.
func (m *Model) armAutoSave() tea.Cmd {
	m.autoSaveID++
	id := m.autoSaveID
	return tea.Tick(autoSaveDelay, func(time.Time) tea.Msg {
		return autoSaveTickMsg{id: id}
	})
}

func (m *Model) flash(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusIsErr = isErr
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpireMsg{id: id}
	})
}

func (m *Model) flashError(text string) tea.Cmd {
	return m.flash(text, true)
}

func (m *Model) flashInfo(text string) tea.Cmd {
	return m.flash(text, false)
}
