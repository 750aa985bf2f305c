package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
)

type state int

const (
	stateList state = iota
	stateEdit
	stateView
	stateSearch
	stateConfirm
)

type editorMode int

const (
	editorClosed editorMode = iota
	editorCreating
	editorEditing
)

// editorState is the tagged editor variant. note is non-nil exactly
// when mode is editorEditing; the other modes carry no note.
type editorState struct {
	mode editorMode
	note *api.Note
}

const (
	autoSaveDelay = 2 * time.Second
	statusTTL     = 3 * time.Second
	previewLen    = 100
)

type listItem struct {
	id        string
	title     string
	preview   string
	updatedAt time.Time
	active    bool
}

func (i listItem) FilterValue() string { return i.title }

func (i listItem) Title() string {
	if i.active {
		return "* " + i.title
	}
	return i.title
}

func (i listItem) Description() string {
	return fmt.Sprintf("%s  %s", i.updatedAt.Format("2006-01-02 15:04"), i.preview)
}

type Model struct {
	state state

	width  int
	height int

	client  *api.Client
	feedURL string

	notes map[string]api.Note

	list        list.Model
	searchInput textinput.Model
	searchTerm  string

	editor       editorState
	titleInput   textinput.Model
	contentInput textarea.Model
	viewContent  string

	// single-slot debounce: a tick only fires a save when its id still
	// matches, so every qualifying edit cancels the previous timer
	autoSaveID int

	// editorGen increments whenever the editor binding changes. Save
	// responses carry the generation they were issued under and only
	// rebind the editor while it still matches, so a late response
	// cannot hijack an editor the user has since repointed.
	editorGen int

	loading bool
	spin    spinner.Model

	status      string
	statusIsErr bool
	statusID    int

	confirmMsg string
	confirmCmd tea.Cmd

	ws       *websocket.Conn
	wsStatus string
}

// messages produced by this package's commands

type notesLoadedMsg struct {
	notes []api.Note
	err   error
}

type noteSavedMsg struct {
	note   api.Note
	silent bool
	gen    int
	err    error
}

type noteDeletedMsg struct {
	id  string
	err error
}

type autoSaveTickMsg struct {
	id int
}

type statusExpireMsg struct {
	id int
}

type feedConnectedMsg struct {
	conn *websocket.Conn
}

type feedEventMsg struct {
	event api.Event
}

type feedErrorMsg struct {
	err error
}
