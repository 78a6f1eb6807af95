package state

import (
	"sync"
	"testing"

	"github.com/picstash/picstash/internal/models"
)

type recordingPersister struct {
	mu    sync.Mutex
	saves []models.AppState
}

func (p *recordingPersister) Save(app models.AppState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, app)
	return nil
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func TestContainerPersistsAfterEveryTransition(t *testing.T) {
	persister := &recordingPersister{}
	writes := 0
	c := NewContainer(models.DefaultAppState(), persister, func() { writes++ })

	c.Apply(func(s State) State { return CreateFolder(s, "f1", "Trips") })
	c.Apply(func(s State) State { return SetSearchQuery(s, "cat") })

	if persister.count() != 2 {
		t.Errorf("Expected 2 persistence writes, got %d", persister.count())
	}
	if writes != 2 {
		t.Errorf("Expected 2 write notifications, got %d", writes)
	}

	last := persister.saves[len(persister.saves)-1]
	if last.SearchQuery != "cat" {
		t.Errorf("Persisted tree is stale: query %q", last.SearchQuery)
	}
	if _, ok := last.Folder("f1"); !ok {
		t.Error("Persisted tree is missing the created folder")
	}
}

func TestContainerSerializesTransitions(t *testing.T) {
	c := NewContainer(models.DefaultAppState(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Apply(func(s State) State {
				return AddImage(s, models.ImageItem{ID: models.NewID(), FolderID: models.AllFolderID})
			})
		}(i)
	}
	wg.Wait()

	if got := len(c.App().Images); got != 50 {
		t.Errorf("Expected 50 images after concurrent transitions, got %d", got)
	}
}

func TestContainerNormalizesInitialTree(t *testing.T) {
	c := NewContainer(models.AppState{CurrentFolderID: "gone"}, nil)

	app := c.App()
	if app.CurrentFolderID != models.AllFolderID {
		t.Errorf("Expected dangling current folder repaired, got %q", app.CurrentFolderID)
	}
	if _, ok := app.Folder(models.AllFolderID); !ok {
		t.Error("Expected the all folder to exist")
	}
}
