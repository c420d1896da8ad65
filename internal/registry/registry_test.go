package registry

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/session"
)

type stubHost struct {
	id, title string
}

func (h stubHost) ID() string                        { return h.id }
func (h stubHost) Title() string                     { return h.title }
func (h stubHost) Run(session.Driver, Options) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-b", func() Host { return stubHost{"test-b", "Bravo"} })
	Register("test-a", func() Host { return stubHost{"test-a", "Alpha"} })

	if !Exists("test-a") || !Exists("test-b") {
		t.Fatal("registered hosts should exist")
	}
	if Exists("test-missing") {
		t.Error("unregistered host should not exist")
	}

	h, err := Create("test-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if h.ID() != "test-a" || h.Title() != "Alpha" {
		t.Errorf("Create() returned %q/%q", h.ID(), h.Title())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create() of unknown host should fail")
	}
}

func TestListSorted(t *testing.T) {
	Register("test-list-2", func() Host { return stubHost{"test-list-2", "Two"} })
	Register("test-list-1", func() Host { return stubHost{"test-list-1", "One"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	titles := make(map[string]string)
	for _, info := range list {
		titles[info.ID] = info.Title
	}
	if titles["test-list-1"] != "One" || titles["test-list-2"] != "Two" {
		t.Errorf("List() titles = %v", titles)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Host { return stubHost{"test-dup", "Dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", func() Host { return stubHost{"test-dup", "Dup"} })
}
