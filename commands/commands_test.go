package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/storage"
	"github.com/javaloayza/postboard/store"
)

func fakeRemote(t *testing.T) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts":
			write(w, []models.Post{
				{ID: 1, UserID: 1, Title: "sunt aut facere", Body: "quia et suscipit"},
				{ID: 2, UserID: 2, Title: "qui est esse", Body: "est rerum tempore"},
			})
		case "/posts/1":
			write(w, models.Post{ID: 1, UserID: 1, Title: "sunt aut facere", Body: "quia et suscipit"})
		case "/posts/1/comments":
			write(w, []models.Comment{{PostID: 1, ID: 1, Email: "eliseo@gardner.biz", Body: "laudantium"}})
		case "/users":
			write(w, []models.User{{ID: 1, Name: "Leanne Graham"}, {ID: 2, Name: "Ervin Howell"}})
		case "/users/1":
			write(w, models.User{ID: 1, Name: "Leanne Graham", Email: "sincere@april.biz"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig points the CLI at remoteURL with a bolt file under dir.
func writeConfig(t *testing.T, dir, remoteURL string) (string, string) {
	t.Helper()
	boltPath := filepath.Join(dir, "postboard.bolt")
	body := fmt.Sprintf(`
remote:
  BaseURL: %q
  RetryAttempts: 0
storage:
  Driver: bolt
  BoltPath: %q
log:
  Level: error
  Path: %q
`, remoteURL, boltPath, filepath.Join(dir, "postboard.log"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, boltPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedLocal(t *testing.T, boltPath string) {
	t.Helper()
	slots, err := storage.NewBoltSlots(boltPath)
	require.NoError(t, err)
	local := store.NewLocalStore(slots, store.DefaultKeys())
	_, err = local.AddCustomPost(models.PostInput{Title: "local headline", Body: "written on this machine", UserID: 3})
	require.NoError(t, err)
	require.NoError(t, local.MarkDeleted(2))
	require.NoError(t, slots.Close())
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "diagnostics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPostsListJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath, boltPath := writeConfig(t, dir, fakeRemote(t).URL)
	seedLocal(t, boltPath)

	out, err := run(t, "-c", cfgPath, "--format", "json", "posts", "list")
	require.NoError(t, err)

	var snap projector.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Posts, 2)
	assert.Equal(t, models.LocalIDFloor, snap.Posts[0].ID)
	assert.Equal(t, 1, snap.Posts[1].ID)
	assert.Equal(t, 2, snap.Pagination.TotalItems)
}

func TestPostsListTextAndSearch(t *testing.T) {
	dir := t.TempDir()
	cfgPath, _ := writeConfig(t, dir, fakeRemote(t).URL)

	out, err := run(t, "-c", cfgPath, "--no-color", "posts", "list", "--search", "ervin")
	require.NoError(t, err)
	assert.Contains(t, out, "qui est esse")
	assert.NotContains(t, out, "sunt aut facere")
	assert.Contains(t, out, "showing 1-1 of 1")

	_, err = run(t, "-c", cfgPath, "posts", "list", "--page", "9")
	require.Error(t, err)
}

func TestPostsShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath, _ := writeConfig(t, dir, fakeRemote(t).URL)

	out, err := run(t, "-c", cfgPath, "--format", "json", "posts", "show", "1")
	require.NoError(t, err)
	var detail models.PostWithComments
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, "Leanne Graham", detail.User.Name)
	assert.Len(t, detail.Comments, 1)

	out, err = run(t, "-c", cfgPath, "--no-color", "posts", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "editable by the current user")

	_, err = run(t, "-c", cfgPath, "posts", "show", "abc")
	require.Error(t, err)

	_, err = run(t, "-c", cfgPath, "posts", "show", "10050")
	require.ErrorIs(t, err, reconcile.ErrNotFound)
}

func TestDiagnosticsAndClearLocal(t *testing.T) {
	dir := t.TempDir()
	cfgPath, boltPath := writeConfig(t, dir, fakeRemote(t).URL)
	seedLocal(t, boltPath)

	out, err := run(t, "-c", cfgPath, "--format", "json", "diagnostics")
	require.NoError(t, err)
	var diag reconcile.Diagnostics
	require.NoError(t, json.Unmarshal([]byte(out), &diag))
	assert.Equal(t, 1, diag.CustomPostCount)
	assert.Equal(t, []int{2}, diag.DeletedIDs)

	_, err = run(t, "-c", cfgPath, "clear-local")
	require.Error(t, err)

	out, err = run(t, "-c", cfgPath, "--no-color", "clear-local", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "local data cleared")

	out, err = run(t, "-c", cfgPath, "--format", "json", "diagnostics")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &diag))
	assert.Zero(t, diag.CustomPostCount)
	assert.Empty(t, diag.DeletedIDs)
}
