package command

import (
	"log/slog"
	"sync"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

// Dispatcher turns decoded commands into state transitions. Invalid or
// unknown commands are absorbed silently; nothing here propagates an
// error to the caller.
type Dispatcher struct {
	container *state.Container

	mu       sync.Mutex
	gridView bool
	locale   string
}

// NewDispatcher wires a dispatcher to the state container.
func NewDispatcher(c *state.Container) *Dispatcher {
	return &Dispatcher{container: c, gridView: true, locale: "en"}
}

// HandleTranscript decodes and dispatches one free-form utterance.
func (d *Dispatcher) HandleTranscript(utterance string) {
	cmd := ParseTranscript(utterance)
	slog.Debug("Transcript decoded", "utterance", utterance, "command", commandName(cmd))
	d.Dispatch(cmd)
}

// HandleToolCall decodes and dispatches one structured tool call, and
// acknowledges it with a status keyed by the call id. Unknown tools are
// acknowledged as ignored, never raised.
func (d *Dispatcher) HandleToolCall(call ToolCall) ToolStatus {
	cmd := ParseToolCall(call)
	if _, unknown := cmd.(Unrecognized); unknown {
		slog.Debug("Tool call ignored", "id", call.ID, "name", call.Name)
		return ToolStatus{ID: call.ID, Status: "ignored"}
	}
	d.Dispatch(cmd)
	return ToolStatus{ID: call.ID, Status: "ok"}
}

// Dispatch applies exactly one transition per command.
func (d *Dispatcher) Dispatch(cmd Command) {
	switch c := cmd.(type) {
	case ToggleView:
		d.mu.Lock()
		d.gridView = !d.gridView
		d.mu.Unlock()
	case ToggleLanguage:
		d.mu.Lock()
		if d.locale == "en" {
			d.locale = "zh"
		} else {
			d.locale = "en"
		}
		d.mu.Unlock()
	case CreateFolderAndMove:
		id := models.NewID()
		d.container.Apply(func(s state.State) state.State {
			return state.CreateFolderAndMove(s, id, c.Name)
		})
	case Search:
		d.container.Apply(func(s state.State) state.State {
			s = state.SetSearchQuery(s, c.Query)
			s.Sess.SelectedImageID = ""
			return s
		})
	case CreateFolder:
		id := models.NewID()
		d.container.Apply(func(s state.State) state.State {
			return state.CreateFolder(s, id, c.Name)
		})
	case SearchItems:
		d.container.Apply(func(s state.State) state.State {
			s = state.SetSearchQuery(s, c.Query)
			s.App.CurrentFolderID = models.AllFolderID
			s.Sess.SelectedImageID = ""
			return s
		})
	case Unrecognized:
		// Swallowed.
	}
}

// GridView reports the current display-mode flag.
func (d *Dispatcher) GridView() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gridView
}

// Locale reports the current UI locale.
func (d *Dispatcher) Locale() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locale
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case ToggleView:
		return "toggle_view"
	case ToggleLanguage:
		return "toggle_language"
	case CreateFolderAndMove:
		return "create_folder_and_move"
	case Search:
		return "search"
	case CreateFolder:
		return "create_folder"
	case SearchItems:
		return "search_items"
	default:
		return "unrecognized"
	}
}
