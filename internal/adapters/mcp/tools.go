package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"satchel/internal/application"
)

const previewLength = 200

// RegisterTools adds the mount, query, and listing tools to the MCP server.
// Mutating tools re-sync the published resource list on success.
func RegisterTools(s *server.MCPServer, reg *application.Registry, pub *Publisher) {
	s.AddTool(mountFolderTool("mount_folder"), mountFolderHandler(reg, pub))
	// add_new_source is a historical alias kept for agents configured
	// against the old tool name.
	s.AddTool(mountFolderTool("add_new_source"), mountFolderHandler(reg, pub))
	s.AddTool(unmountFolderTool(), unmountFolderHandler(reg, pub))
	s.AddTool(mountURLTool(), mountURLHandler(reg, pub))
	s.AddTool(mountSQLiteTool(), mountSQLiteHandler(reg, pub))
	s.AddTool(querySQLiteTool(), querySQLiteHandler(reg))
	s.AddTool(listMountsTool(), listMountsHandler(reg))
}

// --- mount_folder / add_new_source ---

func mountFolderTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Mount a local folder. Its .txt and .md files become readable resources."),
		mcp.WithString("path",
			mcp.Description("Path to the folder to mount"),
			mcp.Required(),
		),
	)
}

func mountFolderHandler(reg *application.Registry, pub *Publisher) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		result, err := reg.MountFolder(path)
		if err != nil {
			return toolError(err)
		}
		pub.Sync()

		var sb strings.Builder
		if result.AlreadyMounted {
			fmt.Fprintf(&sb, "Already mounted: %s (%d files)\n", result.Path, len(result.Files))
		} else {
			fmt.Fprintf(&sb, "Mounted %s (%d files)\n", result.Path, len(result.Files))
		}
		for _, f := range result.Files {
			fmt.Fprintf(&sb, "  %s\n", f.Name)
		}
		appendWarning(&sb, result.Warning)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- unmount_folder ---

func unmountFolderTool() mcp.Tool {
	return mcp.NewTool("unmount_folder",
		mcp.WithDescription("Unmount a previously mounted folder. Its files stop being resources."),
		mcp.WithString("path",
			mcp.Description("Path of the mounted folder to remove"),
			mcp.Required(),
		),
	)
}

func unmountFolderHandler(reg *application.Registry, pub *Publisher) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		result, err := reg.UnmountFolder(path)
		if err != nil {
			return toolError(err)
		}
		pub.Sync()

		var sb strings.Builder
		fmt.Fprintf(&sb, "Unmounted %s\n", result.Path)
		appendWarning(&sb, result.Warning)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- mount_url ---

func mountURLTool() mcp.Tool {
	return mcp.NewTool("mount_url",
		mcp.WithDescription("Fetch a web page, convert it to text, and mount the cached result as a resource. Already-mounted URLs are served from cache without refetching."),
		mcp.WithString("url",
			mcp.Description("URL of the page to fetch"),
			mcp.Required(),
		),
	)
}

func mountURLHandler(reg *application.Registry, pub *Publisher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")
		if url == "" {
			return toolError(fmt.Errorf("url is required"))
		}

		result, err := reg.MountPage(ctx, url)
		if err != nil {
			return toolError(err)
		}
		pub.Sync()

		var sb strings.Builder
		if result.AlreadyMounted {
			fmt.Fprintf(&sb, "Already mounted: %q (fetched %s)\n",
				result.Title, result.FetchedAt.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintf(&sb, "Mounted %q (%d characters)\n", result.Title, len(result.Content))
			fmt.Fprintf(&sb, "Preview: %s\n", truncate(result.Content, previewLength))
		}
		appendWarning(&sb, result.Warning)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- mount_sqlite ---

func mountSQLiteTool() mcp.Tool {
	return mcp.NewTool("mount_sqlite",
		mcp.WithDescription("Open a SQLite database read-only and mount it. Its schema becomes a resource and it can be queried with query_sqlite."),
		mcp.WithString("path",
			mcp.Description("Path to the SQLite database file"),
			mcp.Required(),
		),
	)
}

func mountSQLiteHandler(reg *application.Registry, pub *Publisher) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		result, err := reg.MountDatabase(path)
		if err != nil {
			return toolError(err)
		}
		pub.Sync()

		var sb strings.Builder
		if result.AlreadyMounted {
			fmt.Fprintf(&sb, "Already mounted: %s\n", result.Path)
		} else {
			fmt.Fprintf(&sb, "Mounted %s\n", result.Path)
		}
		if len(result.Tables) == 0 {
			sb.WriteString("No tables.\n")
		} else {
			fmt.Fprintf(&sb, "Tables: %s\n", strings.Join(result.Tables, ", "))
		}
		appendWarning(&sb, result.Warning)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- query_sqlite ---

func querySQLiteTool() mcp.Tool {
	return mcp.NewTool("query_sqlite",
		mcp.WithDescription("Run a SELECT statement against a mounted SQLite database. Results are capped at 100 rows; the true total is reported when truncated."),
		mcp.WithString("path",
			mcp.Description("Path of the mounted database"),
			mcp.Required(),
		),
		mcp.WithString("sql",
			mcp.Description("SELECT statement to execute"),
			mcp.Required(),
		),
	)
}

func querySQLiteHandler(reg *application.Registry) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		query := req.GetString("sql", "")
		if path == "" || query == "" {
			return toolError(fmt.Errorf("path and sql are required"))
		}

		result, err := reg.Query(path, query)
		if err != nil {
			return toolError(err)
		}

		rows, err := json.MarshalIndent(result.Objects(), "", "  ")
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if result.Truncated {
			fmt.Fprintf(&sb, "Returned %d of %d rows (truncated)\n", len(result.Rows), result.Total)
		} else {
			fmt.Fprintf(&sb, "Returned %d rows\n", result.Total)
		}
		sb.Write(rows)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_mounts ---

func listMountsTool() mcp.Tool {
	return mcp.NewTool("list_mounts",
		mcp.WithDescription("List all mounted folders, pages, and databases with live file counts."),
	)
}

func listMountsHandler(reg *application.Registry) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot := reg.ListAll()
		if snapshot.Empty() {
			return mcp.NewToolResultText("Nothing mounted."), nil
		}

		var sb strings.Builder
		if len(snapshot.Folders) > 0 {
			sb.WriteString("Folders:\n")
			for _, f := range snapshot.Folders {
				fmt.Fprintf(&sb, "  %s (%d files)\n", f.Path, f.FileCount)
			}
		}
		if len(snapshot.Pages) > 0 {
			sb.WriteString("Pages:\n")
			for _, p := range snapshot.Pages {
				fmt.Fprintf(&sb, "  %s — %s (fetched %s)\n",
					p.URL, p.Title, p.FetchedAt.Format("2006-01-02 15:04:05"))
			}
		}
		if len(snapshot.Databases) > 0 {
			sb.WriteString("Databases:\n")
			for _, d := range snapshot.Databases {
				fmt.Fprintf(&sb, "  %s\n", d.Path)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func appendWarning(sb *strings.Builder, warning string) {
	if warning != "" {
		fmt.Fprintf(sb, "Warning: %s\n", warning)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
