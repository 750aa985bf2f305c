package model

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

func (m *Model) loadNotes() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		notes, err := client.List(context.Background())
		return notesLoadedMsg{notes: notes, err: err}
	}
}

// save validates the editor fields and issues a create or update
// request for the current editor state. Invalid fields surface an
// error unless silent; silent saves also skip the busy indicator.
// Returns nil when no request is issued.
func (m *Model) save(silent bool) tea.Cmd {
	title := strings.TrimSpace(m.titleInput.Value())
	content := strings.TrimSpace(m.contentInput.Value())
	if title == "" || content == "" {
		if silent {
			return nil
		}
		return m.flashError("Title and content cannot be empty")
	}

	client := m.client
	gen := m.editorGen
	switch m.editor.mode {
	case editorCreating:
		if !silent {
			m.loading = true
		}
		return func() tea.Msg {
			note, err := client.Create(context.Background(), title, content)
			return noteSavedMsg{note: note, silent: silent, gen: gen, err: err}
		}
	case editorEditing:
		id := m.editor.note.ID
		if !silent {
			m.loading = true
		}
		return func() tea.Msg {
			note, err := client.Update(context.Background(), id, title, content)
			return noteSavedMsg{note: note, silent: silent, gen: gen, err: err}
		}
	}
	return nil
}

func (m *Model) deleteNote(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func (m *Model) connectFeed() tea.Cmd {
	url := m.feedURL
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return feedErrorMsg{err: err}
		}
		return feedConnectedMsg{conn: conn}
	}
}

// waitFeedEvent blocks on the next change-feed frame. Re-issued after
// every event so exactly one reader exists per connection.
func (m *Model) waitFeedEvent() tea.Cmd {
	conn := m.ws
	if conn == nil {
		return nil
	}
	return func() tea.Msg {
		var event feedEventMsg
		if err := conn.ReadJSON(&event.event); err != nil {
			return feedErrorMsg{err: err}
		}
		return event
	}
}
