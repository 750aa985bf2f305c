package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
	"github.com/Swayamnakshane/amazonQ-note-app/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server is the notes collection service: a REST API over a Store plus
// a websocket change feed.
type Server struct {
	store *storage.Store
	hub   *hub
	log   *slog.Logger
}

func New(store *storage.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		store: store,
		hub:   newHub(store.List, log),
		log:   log,
	}
	go s.hub.run()
	return s
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	notes := r.Group("/api/notes")
	notes.GET("", s.listNotes)
	notes.POST("", s.createNote)
	notes.PUT("/:id", s.updateNote)
	notes.DELETE("/:id", s.deleteNote)
	notes.GET("/ws", s.feed)

	return r
}

func (s *Server) Run(addr string) error {
	s.log.Info("collection service listening", "addr", addr)
	return s.Router().Run(addr)
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (p notePayload) validate() (string, string, bool) {
	title := strings.TrimSpace(p.Title)
	content := strings.TrimSpace(p.Content)
	return title, content, title != "" && content != ""
}

func (s *Server) listNotes(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) createNote(c *gin.Context) {
	var payload notePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	title, content, ok := payload.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	note, err := s.store.Create(title, content)
	if err != nil {
		s.log.Error("create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}
	s.hub.Broadcast(api.Event{Type: "create", Note: &note})
	c.JSON(http.StatusCreated, note)
}

func (s *Server) updateNote(c *gin.Context) {
	var payload notePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	title, content, ok := payload.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	note, err := s.store.Update(c.Param("id"), title, content)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		s.log.Error("update failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update note"})
		return
	}
	s.hub.Broadcast(api.Event{Type: "update", Note: &note})
	c.JSON(http.StatusOK, note)
}

func (s *Server) deleteNote(c *gin.Context) {
	id := c.Param("id")
	note, exists := s.store.Get(id)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.log.Error("delete failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}
	s.hub.Broadcast(api.Event{Type: "delete", Note: &note})
	c.Status(http.StatusNoContent)
}

// feed upgrades the connection and keeps it registered until the
// client goes away. Subscribers only receive; inbound frames are read
// and discarded to detect the close.
func (s *Server) feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("feed upgrade failed", "error", err)
		return
	}
	s.hub.register <- conn
	defer func() {
		s.hub.unregister <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
