package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
	"github.com/Swayamnakshane/amazonQ-note-app/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(storage.NewStore(), log).Router())
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL)
}

func TestNotesCRUD(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	notes, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := client.Create(ctx, "Hello", "World")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hello", created.Title)

	updated, err := client.Update(ctx, created.ID, "Hello 2", "World 2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hello 2", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	notes, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Hello 2", notes[0].Title)

	require.NoError(t, client.Delete(ctx, created.ID))
	notes, err = client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCreateRejectsBlankFields(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{
		`{"title":"","content":"something"}`,
		`{"title":"something","content":""}`,
		`{"title":"   ","content":"  "}`,
	} {
		resp, err := http.Post(srv.URL+"/api/notes", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.Update(context.Background(), "missing", "t", "c")
	require.Error(t, err)
	assert.ErrorContains(t, err, "404")
}

func TestDeleteUnknownID(t *testing.T) {
	_, client := newTestServer(t)

	err := client.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorContains(t, err, "404")
}

func TestChangeFeedBroadcastsMutations(t *testing.T) {
	srv, client := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notes/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// First frame is always the sync snapshot.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event api.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "sync", event.Type)
	assert.Empty(t, event.Notes)

	created, err := client.Create(context.Background(), "Hello", "World")
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "create", event.Type)
	require.NotNil(t, event.Note)
	assert.Equal(t, created.ID, event.Note.ID)

	require.NoError(t, client.Delete(context.Background(), created.ID))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "delete", event.Type)
	require.NotNil(t, event.Note)
	assert.Equal(t, created.ID, event.Note.ID)
}
