// ABOUTME: Upload screen for the TUI studio
// ABOUTME: Path entry, validated queue, and live per-file progress

package uploader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
	"github.com/jothyanandanch/ssnapify/internal/tui/widgets"
	"github.com/jothyanandanch/ssnapify/internal/upload"
)

// state represents the current UI state
type state int

const (
	statePicking state = iota
	stateRunning
	stateDone
)

// BackMsg is sent when the user leaves the upload screen
type BackMsg struct{}

// progressMsg carries one queue event to the UI loop
type progressMsg struct{}

// doneMsg is sent when the queue finishes
type doneMsg struct {
	err error
}

// runner uploads queued items; satisfied by *client.Client
type runner = upload.Uploader

// Uploader is the upload screen model
type Uploader struct {
	api    runner
	queue  *upload.Queue
	state  state
	input  textinput.Model
	errMsg string
	runErr error
	events chan struct{}
}

// New creates the upload screen
func New(api runner) *Uploader {
	input := textinput.New()
	input.Placeholder = "/path/to/photo.jpg"
	input.CharLimit = 512
	input.Width = 50
	input.Focus()

	return &Uploader{
		api:   api,
		queue: upload.NewQueue(),
		input: input,
	}
}

// Queue exposes the backing queue, mainly for tests
func (u *Uploader) Queue() *upload.Queue {
	return u.queue
}

// Init implements the child-model convention
func (u *Uploader) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input and queue events
func (u *Uploader) Update(msg tea.Msg) (*Uploader, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		// Keep draining events while the queue runs
		if u.state == stateRunning {
			return u, u.waitForEvent()
		}
		return u, nil

	case doneMsg:
		u.state = stateDone
		u.runErr = msg.err
		return u, nil

	case tea.KeyMsg:
		u.errMsg = ""
		switch u.state {
		case statePicking:
			return u.updatePicking(msg)
		case stateRunning:
			// Uploads keep running; only viewing is possible
			return u, nil
		case stateDone:
			switch msg.String() {
			case "b", "esc", "enter":
				return u, func() tea.Msg { return BackMsg{} }
			}
			return u, nil
		}
	}

	if u.state == statePicking {
		var cmd tea.Cmd
		u.input, cmd = u.input.Update(msg)
		return u, cmd
	}
	return u, nil
}

func (u *Uploader) updatePicking(msg tea.KeyMsg) (*Uploader, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(u.input.Value())
		if path == "" {
			if u.queue.Len() == 0 {
				u.errMsg = "Enter a file path first"
				return u, nil
			}
			// Empty input with queued files starts the run
			return u.startRun()
		}
		if _, err := u.queue.Add(path, ""); err != nil {
			u.errMsg = err.Error()
			return u, nil
		}
		u.input.SetValue("")
		return u, nil

	case "ctrl+s":
		if u.queue.Len() == 0 {
			u.errMsg = "Queue is empty"
			return u, nil
		}
		return u.startRun()

	case "esc":
		return u, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd
}

// startRun launches the queue in the background and arms the event listener
func (u *Uploader) startRun() (*Uploader, tea.Cmd) {
	u.state = stateRunning
	u.events = make(chan struct{}, 64)

	run := func() tea.Msg {
		err := u.queue.Run(context.Background(), u.api, func(item upload.Item) {
			select {
			case u.events <- struct{}{}:
			default:
			}
		})
		close(u.events)
		return doneMsg{err: err}
	}

	return u, tea.Batch(run, u.waitForEvent())
}

// waitForEvent blocks on the next queue event
func (u *Uploader) waitForEvent() tea.Cmd {
	events := u.events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return progressMsg{}
	}
}

// View renders the upload screen
func (u *Uploader) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Upload.String() + " Upload"))
	sb.WriteString("\n")

	if u.state == statePicking {
		sb.WriteString("Add files (jpg, jpeg, png, gif, webp · max 10 MiB each):\n\n")
		sb.WriteString(u.input.View())
		sb.WriteString("\n")
		if u.errMsg != "" {
			sb.WriteString("\n" + styles.StatusCritical.Render(u.errMsg) + "\n")
		}
	}

	if u.queue.Len() > 0 {
		sb.WriteString("\n")
		for _, item := range u.queue.Items() {
			sb.WriteString(u.renderItem(item))
			sb.WriteString("\n")
		}
	}

	if u.state == stateDone {
		done, failed := u.queue.Completed()
		summary := fmt.Sprintf("\n%d uploaded, %d failed", done, failed)
		if failed > 0 {
			sb.WriteString(styles.StatusWarning.Render(summary))
		} else {
			sb.WriteString(styles.StatusOK.Render(summary))
		}
		sb.WriteString("\n")
		if u.runErr != nil {
			sb.WriteString(styles.StatusCritical.Render("Error: "+u.runErr.Error()) + "\n")
		}
	}

	switch u.state {
	case statePicking:
		sb.WriteString(styles.Help.Render("enter add · ctrl+s start · esc back"))
	case stateRunning:
		sb.WriteString(styles.Help.Render("uploading..."))
	case stateDone:
		sb.WriteString(styles.Help.Render("enter back"))
	}
	return sb.String()
}

// renderItem renders one queue row with its progress bar
func (u *Uploader) renderItem(item upload.Item) string {
	name := format.Truncate(item.Name, 24)
	size := format.FileSize(item.Size)

	switch item.Status {
	case upload.StatusPending:
		return fmt.Sprintf("  %-24s %-10s queued", name, size)
	case upload.StatusUploading:
		return fmt.Sprintf("  %-24s %-10s %s", name, size, widgets.UploadBar(item.Progress, 20))
	case upload.StatusCompleted:
		id := ""
		if item.Asset != nil {
			id = fmt.Sprintf("#%d", item.Asset.ID)
		}
		return fmt.Sprintf("  %-24s %-10s %s %s", name, size,
			lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String()), id)
	case upload.StatusError:
		return fmt.Sprintf("  %-24s %-10s %s %v", name, size,
			lipgloss.NewStyle().Foreground(styles.Danger).Render(icons.Critical.String()), item.Err)
	}
	return ""
}
