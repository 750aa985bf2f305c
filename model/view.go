package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var s strings.Builder
	header := "notes"
	if m.loading {
		header += "  " + m.spin.View()
	}
	s.WriteString(titleStyle.Render(header))
	s.WriteString("\n\n")

	switch m.state {
	case stateSearch:
		s.WriteString("Search notes:\n\n")
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("enter: search  esc: cancel"))

	case stateConfirm:
		s.WriteString(warningStyle.Render(m.confirmMsg))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("y: confirm  n/esc: cancel"))

	case stateView:
		if m.editor.mode == editorEditing {
			s.WriteString(titleStyle.Render(m.editor.note.Title))
			s.WriteString("\n\n")
		}
		s.WriteString(m.viewContent)
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("e/esc: back to editor"))

	case stateList, stateEdit:
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), "  ", m.editorPane()))
		s.WriteString("\n")
		if m.state == stateList {
			var helpParts []string
			helpParts = append(helpParts, "enter:open", "a:new", "/:search")
			if m.searchTerm != "" {
				helpParts = append(helpParts, "c:clear search")
			}
			if m.editor.mode != editorClosed {
				helpParts = append(helpParts, "tab:editor")
			}
			helpParts = append(helpParts, "r:reload", "q:quit")
			s.WriteString(helpStyle.Render(strings.Join(helpParts, "  ")))
		} else {
			s.WriteString(helpStyle.Render("ctrl+s:save  esc:revert  tab:field  ctrl+p:preview  ctrl+d:delete  ctrl+b:list"))
		}

		var statusParts []string
		if m.searchTerm != "" {
			statusParts = append(statusParts, fmt.Sprintf("search: %q", m.searchTerm))
		}
		statusParts = append(statusParts, "feed: "+m.wsStatus)
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(strings.Join(statusParts, " • ")))
	}

	if m.status != "" {
		s.WriteString("\n")
		if m.statusIsErr {
			s.WriteString(errorStyle.Render(m.status))
		} else {
			s.WriteString(successStyle.Render(m.status))
		}
	}

	return s.String()
}

func (m Model) editorPane() string {
	if m.editor.mode == editorClosed {
		return placeholderStyle.Render("No note open.\n\nPress enter on a note to edit it,\nor a to create a new one.")
	}

	var b strings.Builder
	if m.editor.mode == editorCreating {
		b.WriteString(metaStyle.Render("new note"))
	} else {
		n := m.editor.note
		b.WriteString(metaStyle.Render(fmt.Sprintf("created %s • updated %s",
			n.CreatedAt.Format("2006-01-02 15:04"),
			n.UpdatedAt.Format("2006-01-02 15:04"))))
	}
	b.WriteString("\n\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.contentInput.View())
	return b.String()
}
