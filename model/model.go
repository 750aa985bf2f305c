package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
)

func InitialModel(client *api.Client) Model {
	si := textinput.New()
	si.Placeholder = "search notes..."
	si.CharLimit = 50
	si.Width = 40

	ti := textinput.New()
	ti.Placeholder = "title"
	ti.CharLimit = 120
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "write your note..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		state:        stateList,
		client:       client,
		feedURL:      client.FeedURL(),
		notes:        make(map[string]api.Note),
		list:         l,
		searchInput:  si,
		titleInput:   ti,
		contentInput: ta,
		spin:         sp,
		loading:      true,
		wsStatus:     "offline",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.loadNotes(), m.connectFeed())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.notes = make(map[string]api.Note)
			m.refreshList()
			return m, m.flashError("Failed to load notes: " + msg.err.Error())
		}
		m.notes = make(map[string]api.Note, len(msg.notes))
		for _, n := range msg.notes {
			m.notes[n.ID] = n
		}
		m.refreshList()
		return m, nil

	case noteSavedMsg:
		if !msg.silent {
			m.loading = false
		}
		if msg.err != nil {
			if msg.silent {
				return m, nil
			}
			return m, m.flashError("Save failed: " + msg.err.Error())
		}
		note := msg.note
		m.notes[note.ID] = note
		// a response from before the editor was repointed still lands
		// in the collection but must not rebind the editor
		if msg.gen == m.editorGen {
			m.editor = editorState{mode: editorEditing, note: &note}
		}
		m.refreshList()
		if msg.silent {
			return m, nil
		}
		return m, m.flashInfo("Saved " + note.Title)

	case noteDeletedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.flashError("Delete failed: " + msg.err.Error())
		}
		delete(m.notes, msg.id)
		if m.editor.mode == editorEditing && m.editor.note.ID == msg.id {
			m.editor = editorState{mode: editorClosed}
			m.editorGen++
			m.state = stateList
		}
		m.refreshList()
		return m, m.flashInfo("Deleted")

	case autoSaveTickMsg:
		// stale tick: a newer edit restarted the timer
		if msg.id != m.autoSaveID || m.editor.mode != editorEditing {
			return m, nil
		}
		return m, m.save(true)

	case statusExpireMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case feedConnectedMsg:
		m.ws = msg.conn
		m.wsStatus = "live"
		return m, m.waitFeedEvent()

	case feedEventMsg:
		m.applyFeedEvent(msg.event)
		return m, m.waitFeedEvent()

	case feedErrorMsg:
		m.ws = nil
		m.wsStatus = "offline"
		return m, nil
	}

	switch m.state {
	case stateList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)

		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "ctrl+c", "q":
				m.closeFeed()
				return m, tea.Quit
			case "enter":
				if it, ok := m.list.SelectedItem().(listItem); ok {
					m.selectNote(it.id)
				}
			case "a":
				m.createNew()
			case "/":
				m.searchInput.SetValue(m.searchTerm)
				m.searchInput.Focus()
				m.state = stateSearch
			case "c":
				if m.searchTerm != "" {
					m.searchTerm = ""
					m.refreshList()
					return m, tea.Batch(cmd, m.flashInfo("Cleared search"))
				}
			case "r":
				m.loading = true
				return m, tea.Batch(cmd, m.loadNotes())
			case "tab":
				if m.editor.mode != editorClosed {
					m.state = stateEdit
				}
			}
		}
		return m, cmd

	case stateSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)

		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter":
				m.searchTerm = m.searchInput.Value()
				m.refreshList()
				m.state = stateList
				if m.searchTerm != "" {
					return m, tea.Batch(cmd, m.flashInfo(
						fmt.Sprintf("Search: %q (%d results)", m.searchTerm, len(m.list.Items()))))
				}
			case "esc":
				m.searchTerm = ""
				m.searchInput.SetValue("")
				m.refreshList()
				m.state = stateList
			}
		}
		return m, cmd

	case stateConfirm:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "y", "Y":
				cmd := m.confirmCmd
				m.confirmCmd = nil
				m.state = stateEdit
				m.loading = true
				return m, cmd
			case "n", "N", "esc":
				m.confirmCmd = nil
				m.state = stateEdit
			}
		}
		return m, nil

	case stateView:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "ctrl+c":
				m.closeFeed()
				return m, tea.Quit
			case "esc", "e", "b":
				m.state = stateEdit
			}
		}
		return m, nil

	case stateEdit:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "ctrl+c":
				m.closeFeed()
				return m, tea.Quit
			case "esc":
				m.cancelEdit()
				return m, nil
			case "tab":
				m.toggleEditorFocus()
				return m, nil
			case "enter":
				if m.titleInput.Focused() {
					m.focusContent()
					return m, nil
				}
			case "ctrl+s":
				return m, m.save(false)
			case "ctrl+d":
				if m.editor.mode == editorEditing {
					n := m.editor.note
					m.confirmMsg = fmt.Sprintf("Delete note %q? (y/N)", n.Title)
					m.confirmCmd = m.deleteNote(n.ID)
					m.state = stateConfirm
				}
				return m, nil
			case "ctrl+p":
				m.viewContent = renderNoteContent(m.contentInput.Value(), m.width)
				m.state = stateView
				return m, nil
			case "ctrl+b":
				m.state = stateList
				return m, nil
			}
		}

		beforeTitle := m.titleInput.Value()
		beforeContent := m.contentInput.Value()

		var cmd tea.Cmd
		if m.titleInput.Focused() {
			m.titleInput, cmd = m.titleInput.Update(msg)
		} else {
			m.contentInput, cmd = m.contentInput.Update(msg)
		}

		changed := m.titleInput.Value() != beforeTitle || m.contentInput.Value() != beforeContent
		if changed && m.editor.mode == editorEditing {
			return m, tea.Batch(cmd, m.armAutoSave())
		}
		return m, cmd
	}

	return m, nil
}

// applyFeedEvent merges a change-feed record into the collection. The
// note currently bound to the editor is never touched so remote
// changes cannot pull fields out from under the user.
func (m *Model) applyFeedEvent(ev api.Event) {
	editingID := ""
	if m.editor.mode == editorEditing {
		editingID = m.editor.note.ID
	}

	switch ev.Type {
	case "sync":
		var edited api.Note
		hasEdited := false
		if editingID != "" {
			edited, hasEdited = m.notes[editingID]
		}
		m.notes = make(map[string]api.Note, len(ev.Notes))
		for _, n := range ev.Notes {
			m.notes[n.ID] = n
		}
		if hasEdited {
			if _, ok := m.notes[editingID]; !ok {
				m.notes[editingID] = edited
			}
		}
	case "create", "update":
		if ev.Note == nil || ev.Note.ID == editingID {
			return
		}
		m.notes[ev.Note.ID] = *ev.Note
	case "delete":
		if ev.Note == nil || ev.Note.ID == editingID {
			return
		}
		delete(m.notes, ev.Note.ID)
	}
	m.refreshList()
}

func (m *Model) closeFeed() {
	if m.ws != nil {
		_ = m.ws.Close()
		m.ws = nil
	}
}

func (m *Model) resize() {
	listWidth := m.width / 3
	if listWidth < 28 {
		listWidth = 28
	}
	m.list.SetWidth(listWidth)
	m.list.SetHeight(m.height - 8)

	editorWidth := m.width - listWidth - 6
	if editorWidth < 40 {
		editorWidth = 40
	}
	m.titleInput.Width = editorWidth - 4
	m.contentInput.SetWidth(editorWidth)
	m.contentInput.SetHeight(m.height - 14)
}
