// Package tui renders the live activity view: mount counts and the most
// recent reads, fed by the notification stream. It is a passive observer
// and never calls into the registry.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"satchel/internal/adapters/tui/styles"
	"satchel/internal/domain"
)

const maxActivity = 12

// App is the activity observer model.
type App struct {
	events <-chan domain.Event
	spin   spinner.Model

	online    bool
	folders   int
	pages     int
	databases int
	activity  []string

	width  int
	height int
}

// NewApp creates an observer over the given event stream.
func NewApp(events <-chan domain.Event) *App {
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Online),
	)
	return &App{events: events, spin: spin}
}

// Init starts the spinner and the event listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.listen())
}

// listen waits for the next notification. Each received event re-arms the
// listener from Update.
func (a *App) listen() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-a.events
		if !ok {
			return tea.Quit()
		}
		return event
	}
}

// Update handles spinner ticks and notification events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case domain.Event:
		a.apply(msg)
		return a, a.listen()
	}

	return a, nil
}

func (a *App) apply(event domain.Event) {
	stamp := styles.EventTime.Render(time.Now().Format("15:04:05"))

	switch event.Kind {
	case domain.EventServerOnline:
		a.online = true
		a.push(fmt.Sprintf("%s %s", stamp, styles.Online.Render("online")))

	case domain.EventResourceRead:
		a.push(fmt.Sprintf("%s %s %s", stamp, styles.EventRead.Render("read"), event.Label))

	case domain.EventFoldersChanged:
		a.folders = len(event.Folders)
		a.push(fmt.Sprintf("%s %s %d folders", stamp, styles.EventChange.Render("mounts"), a.folders))

	case domain.EventPagesChanged:
		a.pages = len(event.Pages)
		a.push(fmt.Sprintf("%s %s %d pages", stamp, styles.EventChange.Render("mounts"), a.pages))

	case domain.EventDatabasesChanged:
		a.databases = len(event.Databases)
		a.push(fmt.Sprintf("%s %s %d databases", stamp, styles.EventChange.Render("mounts"), a.databases))
	}
}

func (a *App) push(line string) {
	a.activity = append(a.activity, line)
	if len(a.activity) > maxActivity {
		a.activity = a.activity[len(a.activity)-maxActivity:]
	}
}

// View renders the header, mount counts, and recent activity.
func (a *App) View() string {
	var sb strings.Builder

	status := styles.Starting.Render("starting " + a.spin.View())
	if a.online {
		status = styles.Online.Render("● online")
	}
	sb.WriteString(styles.Title.Render("satchel") + "  " + status + "\n\n")

	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		styles.CountValue.Render(fmt.Sprintf("%d", a.folders)),
		styles.CountLabel.Render("folders"),
		styles.CountValue.Render(fmt.Sprintf("%d", a.pages)),
		styles.CountLabel.Render("pages"),
		styles.CountValue.Render(fmt.Sprintf("%d", a.databases)),
		styles.CountLabel.Render("databases"),
	))

	if len(a.activity) == 0 {
		sb.WriteString(styles.Subtitle.Render("waiting for activity..."))
	} else {
		sb.WriteString(strings.Join(a.activity, "\n"))
	}

	return styles.App.Render(sb.String())
}
