package command

import (
	"reflect"
	"testing"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *state.Container) {
	t.Helper()
	app := models.DefaultAppState()
	app.Images = []models.ImageItem{
		{ID: "img-1", Name: "beach.jpg", Category: "Photos", FolderID: models.AllFolderID},
	}
	c := state.NewContainer(app, nil)
	return NewDispatcher(c), c
}

func TestCreateFolderToolCallIsIdempotent(t *testing.T) {
	d, c := newTestDispatcher(t)
	call := ToolCall{ID: "c1", Name: "create_folder", Args: map[string]any{"name": "Trips"}}

	first := d.HandleToolCall(call)
	second := d.HandleToolCall(ToolCall{ID: "c2", Name: "create_folder", Args: map[string]any{"name": "Trips"}})

	if first.Status != "ok" || second.Status != "ok" {
		t.Errorf("Expected ok acks, got %q and %q", first.Status, second.Status)
	}
	if first.ID != "c1" || second.ID != "c2" {
		t.Error("Acks must be keyed by the call id")
	}

	count := 0
	for _, f := range c.App().Folders {
		if f.Name == "Trips" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one Trips folder, got %d", count)
	}
}

func TestUnknownToolCallLeavesStateUnchanged(t *testing.T) {
	d, c := newTestDispatcher(t)
	before := c.App()

	status := d.HandleToolCall(ToolCall{ID: "c9", Name: "delete_universe"})

	if status.Status != "ignored" || status.ID != "c9" {
		t.Errorf("Expected ignored ack for c9, got %+v", status)
	}
	if !reflect.DeepEqual(before, c.App()) {
		t.Error("Unknown tool call changed the state tree")
	}
}

func TestSearchItemsForcesAllFolderAndClearsSelection(t *testing.T) {
	d, c := newTestDispatcher(t)
	c.Apply(func(s state.State) state.State {
		s = state.CreateFolder(s, "f1", "Trips")
		s = state.SelectFolder(s, "f1")
		return state.SelectImage(s, "img-1")
	})

	d.HandleToolCall(ToolCall{ID: "c1", Name: "search_items", Args: map[string]any{"query": "beach"}})

	snap := c.Snapshot()
	if snap.App.SearchQuery != "beach" {
		t.Errorf("Expected query beach, got %q", snap.App.SearchQuery)
	}
	if snap.App.CurrentFolderID != models.AllFolderID {
		t.Errorf("Expected current folder forced to all, got %q", snap.App.CurrentFolderID)
	}
	if snap.Sess.SelectedImageID != "" {
		t.Error("Expected image selection cleared")
	}
}

func TestFreeformSearchClearsSelection(t *testing.T) {
	d, c := newTestDispatcher(t)
	c.Apply(func(s state.State) state.State { return state.SelectImage(s, "img-1") })

	d.HandleTranscript("sunset photos")

	snap := c.Snapshot()
	if snap.App.SearchQuery != "sunset photos" {
		t.Errorf("Expected query set verbatim, got %q", snap.App.SearchQuery)
	}
	if snap.Sess.SelectedImageID != "" {
		t.Error("Expected image selection cleared")
	}
}

func TestFreeformCreateFolderMovesAndSwitches(t *testing.T) {
	d, c := newTestDispatcher(t)

	d.HandleTranscript("create folder Seaside")

	app := c.App()
	folder, ok := app.FolderByName("Seaside")
	if !ok {
		t.Fatal("Expected folder Seaside to exist")
	}
	if app.CurrentFolderID != folder.ID {
		t.Errorf("Expected new folder active, got %q", app.CurrentFolderID)
	}
	// No batch and no open image: the visible set (everything) moved.
	if img, _ := app.Image("img-1"); img.FolderID != folder.ID {
		t.Errorf("Expected img-1 moved into Seaside, got %q", img.FolderID)
	}
}

func TestToggleViewAndLanguage(t *testing.T) {
	d, _ := newTestDispatcher(t)

	if !d.GridView() {
		t.Fatal("Expected grid view by default")
	}
	d.HandleTranscript("switch view")
	if d.GridView() {
		t.Error("Expected view toggled off")
	}

	if d.Locale() != "en" {
		t.Fatalf("Expected en locale by default, got %q", d.Locale())
	}
	d.HandleTranscript("switch language")
	if d.Locale() != "zh" {
		t.Errorf("Expected zh after toggle, got %q", d.Locale())
	}
	d.HandleTranscript("切换语言")
	if d.Locale() != "en" {
		t.Errorf("Expected en after second toggle, got %q", d.Locale())
	}
}
