package registry

import (
	"testing"

	"github.com/vovakirdan/wrapsnake/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register(Info{ID: "zz_stub", Title: "Stub"}, func() Game { return &stubGame{id: "zz_stub"} })
	Register(Info{ID: "aa_stub", Title: "Stub"}, func() Game { return &stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("Create() returned %q", g.ID())
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}

	if info, ok := Lookup("aa_stub"); !ok || info.Title != "Stub" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Info{ID: "dup_stub"}, func() Game { return &stubGame{} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(Info{ID: "dup_stub"}, func() Game { return &stubGame{} })
}
