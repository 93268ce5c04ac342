package main

import (
	"context"
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"satchel/internal/adapters/filesystem"
	"satchel/internal/adapters/jsonstore"
	mcpadapter "satchel/internal/adapters/mcp"
	"satchel/internal/adapters/sqlite"
	"satchel/internal/adapters/tui"
	"satchel/internal/adapters/web"
	"satchel/internal/application"
	"satchel/internal/config"
	"satchel/internal/domain"
	"satchel/internal/notify"
)

const serverInstructions = `Satchel exposes mounted folders, cached web pages, and ` +
	`read-only SQLite databases as resources. Mount sources with mount_folder, ` +
	`mount_url, and mount_sqlite; inspect them with list_mounts; query databases ` +
	`with query_sqlite. Mounts persist across restarts.`

func main() {
	homeFlag := flag.String("home", config.HomePath(), "default mount folder")
	registryFlag := flag.String("registry", config.RegistryPath(), "path of the persisted registry file")
	watchFlag := flag.Bool("watch", false, "render a live activity view on stderr")
	flag.Parse()

	emitter := notify.NewEmitter()

	reg := application.NewRegistry(application.Deps{
		Scanner:  filesystem.NewScanner(),
		Fetcher:  web.NewFetcher(),
		Opener:   sqlite.NewOpener(),
		Store:    jsonstore.New(*registryFlag),
		Notifier: emitter,
	})
	reg.Load(*homeFlag)
	defer reg.Close()

	mcpServer := server.NewMCPServer(
		"satchel",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions(serverInstructions),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	pub := mcpadapter.NewPublisher(mcpServer, reg)
	mcpadapter.RegisterTools(mcpServer, reg, pub)
	pub.Sync()

	if *watchFlag {
		// stdout carries the MCP transport; the activity view renders to
		// stderr with input disabled.
		app := tui.NewApp(emitter.Subscribe())
		p := tea.NewProgram(app, tea.WithOutput(os.Stderr), tea.WithInput(nil))
		go p.Run()
	}

	emitter.Emit(domain.Event{Kind: domain.EventServerOnline})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("satchel-mcp: %v", err)
	}
}
