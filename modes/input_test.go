package modes

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/systems"
)

func newTestHandler(t *testing.T) (*InputHandler, *systems.Simulation, *engine.GameContext) {
	t.Helper()
	ctx := engine.NewGameContext(engine.ContextConfig{
		Mode:         constants.ModeHangul,
		Difficulty:   1,
		TimeProvider: engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	sim := systems.NewSimulation(ctx)
	sim.Start()
	return NewInputHandler(sim), sim, ctx
}

func addEnemy(ctx *engine.GameContext, answer string) *components.EnemyComponent {
	p := ctx.Player()
	e := &components.EnemyComponent{
		ID: ctx.NextID(), X: p.X + 100, Y: p.Y,
		Type: components.EnemyTypes[components.EnemyNormal], HP: 1000, MaxHP: 1000,
		Question: answer, Answer: answer,
	}
	ctx.World.Enemies = append(ctx.World.Enemies, e)
	return e
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestKeyToRune verifies the two-set layout and passthrough
func TestKeyToRune(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'r', 'ㄱ'},
		{'R', 'ㄱ'},
		{'k', 'ㅏ'},
		{'m', 'ㅡ'},
		{'7', '7'},
		{'ㅎ', 'ㅎ'},
		{'-', '-'},
	}
	for _, tt := range tests {
		if got := KeyToRune(tt.in); got != tt.want {
			t.Errorf("KeyToRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if len(KeyToHangul) != 26 {
		t.Errorf("Expected 26 mapped letters, got %d", len(KeyToHangul))
	}
}

// TestTypeable verifies which runes reach the simulation
func TestTypeable(t *testing.T) {
	for _, r := range []rune{'0', '9', '-', 'a', 'Z', 'ㄱ', 'ㅣ', '사', '５'} {
		if !Typeable(r) {
			t.Errorf("Expected %q typeable", r)
		}
	}
	for _, r := range []rune{' ', '!', '\t', 'é'} {
		if Typeable(r) {
			t.Errorf("Expected %q ignored", r)
		}
	}
}

// TestHandlerTypesMappedJamo verifies QWERTY keys hit jamo prompts
func TestHandlerTypesMappedJamo(t *testing.T) {
	h, _, ctx := newTestHandler(t)
	e := addEnemy(ctx, "ㄱㅏ")

	h.HandleEvent(runeKey('r'))
	if e.InputProgress != 1 {
		t.Fatalf("Expected progress 1, got %d", e.InputProgress)
	}
	h.HandleEvent(runeKey('k'))
	if e.InputProgress != 0 || len(ctx.World.Bullets) != 1 {
		t.Errorf("Expected completed prompt to fire, progress %d bullets %d", e.InputProgress, len(ctx.World.Bullets))
	}
}

// TestHandlerIgnoresUntypeable verifies punctuation does not count as a miss
func TestHandlerIgnoresUntypeable(t *testing.T) {
	h, _, ctx := newTestHandler(t)
	addEnemy(ctx, "ㄱ")
	hp := ctx.Player().HP

	h.HandleEvent(runeKey('!'))
	if ctx.Player().HP != hp {
		t.Errorf("Expected no miss penalty, hp %d -> %d", hp, ctx.Player().HP)
	}

	// A mapped but wrong key is a miss
	h.HandleEvent(runeKey('a'))
	if ctx.Player().HP != hp-constants.MissPenalty {
		t.Errorf("Expected miss penalty, hp %d -> %d", hp, ctx.Player().HP)
	}
}

// TestHandlerControlKeys verifies quit, lobby and resize actions
func TestHandlerControlKeys(t *testing.T) {
	h, _, _ := newTestHandler(t)

	tests := []struct {
		name string
		ev   tcell.Event
		want Action
	}{
		{"CtrlC", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionQuit},
		{"CtrlQ", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionQuit},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionLobby},
		{"Resize", tcell.NewEventResize(100, 40), ActionResize},
		{"Rune", runeKey('x'), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("Expected action %d, got %d", tt.want, got)
			}
		})
	}
}

// TestHandlerChoiceKeys verifies digits pick artifacts while paused
func TestHandlerChoiceKeys(t *testing.T) {
	h, sim, ctx := newTestHandler(t)
	ctx.World.RunSafe(func() {
		ctx.State.ArtifactOptions = []components.Artifact{components.Artifacts[0], components.Artifacts[5]}
		ctx.EnterChoice(engine.PhaseArtifactSelect)
	})

	// Out of range is ignored
	h.HandleEvent(runeKey('3'))
	if sim.Phase() != engine.PhaseArtifactSelect {
		t.Fatalf("Expected choice to stay open, got %s", sim.Phase())
	}

	h.HandleEvent(runeKey('2'))
	if sim.Phase() != engine.PhasePlaying {
		t.Fatalf("Expected playing after pick, got %s", sim.Phase())
	}
	if !ctx.Player().Artifacts.Has(components.Artifacts[5].ID) {
		t.Error("Expected second option owned")
	}
}

// TestHandlerRestart verifies Enter starts a new run after game over
func TestHandlerRestart(t *testing.T) {
	h, sim, ctx := newTestHandler(t)
	ctx.World.RunSafe(func() { ctx.EndRun(engine.ReasonDefeated) })
	firstRun := ctx.RunID

	if got := h.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); got != ActionRestart {
		t.Fatalf("Expected restart, got %d", got)
	}
	if sim.Phase() != engine.PhasePlaying || ctx.RunID == firstRun {
		t.Errorf("Expected fresh playing run, phase %s", sim.Phase())
	}
}
