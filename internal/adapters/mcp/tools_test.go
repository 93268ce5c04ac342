package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"satchel/internal/adapters/filesystem"
	"satchel/internal/adapters/jsonstore"
	"satchel/internal/application"
	"satchel/internal/domain"
	"satchel/internal/notify"
	"satchel/internal/ports"
)

// --- fakes ---

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, _ string) (string, string, error) {
	return "Example Domain", "This domain is for use in examples.", nil
}

type stubDB struct {
	tables []string
	cols   []string
	rows   [][]any
}

func (d *stubDB) Tables() ([]string, error)               { return d.tables, nil }
func (d *stubDB) Columns(string) ([]domain.Column, error) { return nil, nil }
func (d *stubDB) Query(string) ([]string, [][]any, error) { return d.cols, d.rows, nil }
func (d *stubDB) Close() error                            { return nil }

type stubOpener struct {
	db *stubDB
}

func (o *stubOpener) Open(string) (ports.Database, error) {
	if o.db == nil {
		return nil, errors.New("unable to open database file")
	}
	return o.db, nil
}

// --- helpers ---

func newTestStack(t *testing.T, opener *stubOpener) (*application.Registry, *Publisher) {
	t.Helper()
	reg := application.NewRegistry(application.Deps{
		Scanner:  filesystem.NewScanner(),
		Fetcher:  stubFetcher{},
		Opener:   opener,
		Store:    jsonstore.New(filepath.Join(t.TempDir(), "registry.json")),
		Notifier: notify.NewEmitter(),
	})
	t.Cleanup(reg.Close)

	srv := server.NewMCPServer("satchel-test", "0.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
	)
	return reg, NewPublisher(srv, reg)
}

func callTool(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// --- tools ---

func TestMountFolderTool(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# a")
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "c.png", "binary")

	result := callTool(t, mountFolderHandler(reg, pub), map[string]any{"path": dir})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "(2 files)") {
		t.Errorf("expected a 2-file mount, got:\n%s", text)
	}
	for _, want := range []string{"a.md", "b.txt"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %s:\n%s", want, text)
		}
	}
	if strings.Contains(text, "c.png") {
		t.Errorf("listing must not include non-text files:\n%s", text)
	}
}

func TestMountFolderToolAlreadyMounted(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()

	callTool(t, mountFolderHandler(reg, pub), map[string]any{"path": dir})
	result := callTool(t, mountFolderHandler(reg, pub), map[string]any{"path": dir})

	if text := resultText(t, result); !strings.Contains(text, "Already mounted") {
		t.Errorf("expected already-mounted, got:\n%s", text)
	}
}

func TestMountFolderToolMissingPath(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})

	result := callTool(t, mountFolderHandler(reg, pub), map[string]any{})
	if !result.IsError {
		t.Fatal("expected a tool error for a missing argument")
	}

	result = callTool(t, mountFolderHandler(reg, pub),
		map[string]any{"path": filepath.Join(t.TempDir(), "nope")})
	if !result.IsError {
		t.Fatal("expected a tool error for a nonexistent folder")
	}
}

func TestUnmountFolderTool(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()

	callTool(t, mountFolderHandler(reg, pub), map[string]any{"path": dir})
	result := callTool(t, unmountFolderHandler(reg, pub), map[string]any{"path": dir})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	result = callTool(t, unmountFolderHandler(reg, pub), map[string]any{"path": dir})
	if !result.IsError {
		t.Fatal("expected a tool error when unmounting twice")
	}
	if text := resultText(t, result); !strings.Contains(text, "not mounted") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestMountURLTool(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})

	result := callTool(t, mountURLHandler(reg, pub), map[string]any{"url": "https://example.com"})
	text := resultText(t, result)
	if !strings.Contains(text, `Mounted "Example Domain"`) {
		t.Errorf("unexpected mount text:\n%s", text)
	}
	if !strings.Contains(text, "Preview: This domain is for use in examples.") {
		t.Errorf("expected a preview:\n%s", text)
	}

	result = callTool(t, mountURLHandler(reg, pub), map[string]any{"url": "https://example.com"})
	if text := resultText(t, result); !strings.Contains(text, "Already mounted") {
		t.Errorf("expected already-mounted, got:\n%s", text)
	}
}

func TestMountSQLiteTool(t *testing.T) {
	opener := &stubOpener{db: &stubDB{tables: []string{"notes", "tags"}}}
	reg, pub := newTestStack(t, opener)
	path := writeFile(t, t.TempDir(), "app.db", "stub")

	result := callTool(t, mountSQLiteHandler(reg, pub), map[string]any{"path": path})
	if text := resultText(t, result); !strings.Contains(text, "Tables: notes, tags") {
		t.Errorf("expected the table list, got:\n%s", text)
	}
}

func TestMountSQLiteToolOpenFailure(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	path := writeFile(t, t.TempDir(), "corrupt.db", "not a database")

	result := callTool(t, mountSQLiteHandler(reg, pub), map[string]any{"path": path})
	if !result.IsError {
		t.Fatal("expected a tool error for an unopenable database")
	}
}

func TestQuerySQLiteTool(t *testing.T) {
	opener := &stubOpener{db: &stubDB{
		tables: []string{"notes"},
		cols:   []string{"id", "title"},
		rows:   [][]any{{int64(1), "first"}},
	}}
	reg, pub := newTestStack(t, opener)
	path := writeFile(t, t.TempDir(), "app.db", "stub")
	callTool(t, mountSQLiteHandler(reg, pub), map[string]any{"path": path})

	result := callTool(t, querySQLiteHandler(reg),
		map[string]any{"path": path, "sql": "SELECT id, title FROM notes"})
	text := resultText(t, result)
	if !strings.Contains(text, "Returned 1 rows") {
		t.Errorf("expected a row count header:\n%s", text)
	}
	if !strings.Contains(text, `"title": "first"`) {
		t.Errorf("expected JSON rows:\n%s", text)
	}
}

func TestQuerySQLiteToolRejectsNonSelect(t *testing.T) {
	opener := &stubOpener{db: &stubDB{tables: []string{"notes"}}}
	reg, pub := newTestStack(t, opener)
	path := writeFile(t, t.TempDir(), "app.db", "stub")
	callTool(t, mountSQLiteHandler(reg, pub), map[string]any{"path": path})

	result := callTool(t, querySQLiteHandler(reg),
		map[string]any{"path": path, "sql": "DELETE FROM notes"})
	if !result.IsError {
		t.Fatal("expected a tool error for a non-SELECT statement")
	}
	if text := resultText(t, result); !strings.Contains(text, "only SELECT statements are allowed") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestListMountsToolEmpty(t *testing.T) {
	reg, _ := newTestStack(t, &stubOpener{})

	result := callTool(t, listMountsHandler(reg), nil)
	if text := resultText(t, result); text != "Nothing mounted." {
		t.Errorf("expected the empty message, got %q", text)
	}
}

func TestListMountsTool(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# a")
	callTool(t, mountFolderHandler(reg, pub), map[string]any{"path": dir})
	callTool(t, mountURLHandler(reg, pub), map[string]any{"url": "https://example.com"})

	text := resultText(t, callTool(t, listMountsHandler(reg), nil))
	for _, want := range []string{"Folders:", "(1 files)", "Pages:", "Example Domain"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %q:\n%s", want, text)
		}
	}
}

// --- publisher ---

func TestPublisherSyncTracksRegistry(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "# a")
	absPath, _ := filepath.Abs(path)
	uri := "file://" + absPath

	if _, err := reg.MountFolder(dir); err != nil {
		t.Fatalf("mount: %v", err)
	}
	pub.Sync()
	if !pub.registered[uri] {
		t.Fatalf("expected %s to be published, have %v", uri, pub.registered)
	}

	if _, err := reg.UnmountFolder(dir); err != nil {
		t.Fatalf("unmount: %v", err)
	}
	pub.Sync()
	if pub.registered[uri] {
		t.Errorf("expected %s to be withdrawn after unmount", uri)
	}
}

func TestPublisherReadResolvesFile(t *testing.T) {
	reg, pub := newTestStack(t, &stubOpener{})
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "# hello")
	absPath, _ := filepath.Abs(path)

	if _, err := reg.MountFolder(dir); err != nil {
		t.Fatalf("mount: %v", err)
	}
	pub.Sync()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "file://" + absPath
	contents, err := pub.read(context.Background(), req)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected one content block, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if text.Text != "# hello" || text.MIMEType != "text/markdown" {
		t.Errorf("unexpected contents: %+v", text)
	}
}
