package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-fifteen/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Resize(int, int) {}
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Description() string { return "stub " + g.id }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.state.Moves++
	return core.StepResult{State: g.state, Changed: true}
}

func stubFactory(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", stubFactory("stub_b"))
	Register("stub_a", stubFactory("stub_a"))

	if !Exists("stub_a") || !Exists("stub_b") {
		t.Fatal("registered games should exist")
	}
	if Exists("stub_missing") {
		t.Error("unregistered game should not exist")
	}

	g1, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("stub_a")
	g1.Step(core.NewInputFrame())
	if g2.State().Moves != 0 {
		t.Error("Create() should return independent instances")
	}

	info, ok := Info("stub_b")
	if !ok {
		t.Fatal("Info() should find stub_b")
	}
	if info.Title != "STUB_B" || info.Description != "stub stub_b" {
		t.Errorf("Info() = %+v", info)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create() should fail for an unknown id")
	}
}

func TestListSorted(t *testing.T) {
	Register("stub_z", stubFactory("stub_z"))
	Register("stub_m", stubFactory("stub_m"))

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", stubFactory("stub_dup"))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("stub_dup", stubFactory("stub_dup"))
}
