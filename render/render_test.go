package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// dump returns every screen row joined by newlines
func dump(screen tcell.Screen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func fg(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	f, _, _ := style.Decompose()
	return f
}

// baseSnapshot is an 800x440 world so an 80x24 screen maps 10 units per column and 20 per row
func baseSnapshot() *engine.Snapshot {
	return &engine.Snapshot{
		Phase:           engine.PhasePlaying,
		Mode:            constants.ModeHangul,
		Difficulty:      2,
		Width:           800,
		Height:          440,
		Player:          components.NewPlayer(400, 220, components.StatBonus{}),
		TimeRemainingMs: 272_000,
		IsPlaying:       true,
	}
}

// TestRenderHUD verifies both status rows
func TestRenderHUD(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	s := baseSnapshot()
	s.Player.HP = 50
	s.Player.Level = 3
	s.Kills = 1234
	r.RenderFrame(s)

	out := dump(screen)
	for _, want := range []string{"HP 50/100", "Lv 3", "Kills 1,234", "Time 4:32", "hangul D2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q on screen:\n%s", want, out)
		}
	}
}

// TestRenderPlayerPosition verifies world to cell mapping below the HUD
func TestRenderPlayerPosition(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	r.RenderFrame(baseSnapshot())

	// 400/800*80 = 40, 220/440*22 = 11, plus 2 HUD rows
	if got, _, _, _ := screen.GetContent(40, 13); got != playerGlyph {
		t.Errorf("Expected player glyph at 40,13, got %q", got)
	}
	if w, h := r.FieldSize(); w != 80 || h != 22 {
		t.Errorf("Expected field 80x22, got %dx%d", w, h)
	}
}

// TestRenderPromptProgress verifies typed runes are recolored in place
func TestRenderPromptProgress(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	s := baseSnapshot()
	s.Enemies = []components.EnemyComponent{{
		ID: 1, X: 400, Y: 100, Type: components.EnemyTypes[components.EnemyNormal],
		HP: 10, MaxHP: 10, Question: "abc", Answer: "abc", InputProgress: 1,
	}}
	r.RenderFrame(s)

	// Enemy at row 2+5, prompt one row above, centered on column 40
	if got, _, _, _ := screen.GetContent(40, 7); got != 'E' {
		t.Errorf("Expected enemy glyph, got %q", got)
	}
	if got, _, _, _ := screen.GetContent(39, 6); got != 'a' {
		t.Fatalf("Expected prompt start at 39,6, got %q", got)
	}
	if fg(screen, 39, 6) != ParseColor(constants.ColorPromptTyped) {
		t.Error("Expected typed rune in typed color")
	}
	if fg(screen, 40, 6) != ParseColor(constants.ColorPromptRemain) {
		t.Error("Expected remaining rune in remaining color")
	}
}

// TestRenderMathPrompt verifies answers that differ from the question are appended
func TestRenderMathPrompt(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	s := baseSnapshot()
	s.Enemies = []components.EnemyComponent{{
		ID: 1, X: 400, Y: 300, Type: components.EnemyTypes[components.EnemyTank],
		Question: "3 × 4", Answer: "12", InputProgress: 1,
	}}
	r.RenderFrame(s)

	if out := dump(screen); !strings.Contains(out, "3 × 4 1") {
		t.Errorf("Expected question with typed answer prefix:\n%s", out)
	}
}

// TestRenderDeadEnemiesHidden verifies dead enemies are not drawn
func TestRenderDeadEnemiesHidden(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	s := baseSnapshot()
	s.Enemies = []components.EnemyComponent{{
		ID: 1, X: 100, Y: 100, Dead: true, Type: components.EnemyTypes[components.EnemyNormal],
		Question: "zzz", Answer: "zzz",
	}}
	r.RenderFrame(s)

	if strings.Contains(dump(screen), "zzz") {
		t.Error("Expected dead enemy prompt hidden")
	}
}

// TestRenderOverlays verifies each blocking phase draws its box
func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *engine.Snapshot)
		want  []string
	}{
		{
			name: "LevelUp",
			setup: func(s *engine.Snapshot) {
				s.Phase = engine.PhaseLevelUp
				s.Upgrades = []components.Upgrade{
					{Kind: components.UpgradeDamage, Name: "Damage", Description: "+10", Rarity: components.RarityRare},
				}
			},
			want: []string{"LEVEL UP", "1) Damage - +10 [Rare]", constants.PausedHint},
		},
		{
			name: "Artifact",
			setup: func(s *engine.Snapshot) {
				s.Phase = engine.PhaseArtifactSelect
				s.ArtifactOptions = []components.Artifact{{ID: components.ArtifactDrone, Name: "Drone", Description: "auto"}}
			},
			want: []string{"ARTIFACT", "1) Drone - auto"},
		},
		{
			name: "GameOver",
			setup: func(s *engine.Snapshot) {
				s.Phase = engine.PhaseGameOver
				s.GameOverReason = "custom_reason"
				s.IsPlaying = false
			},
			want: []string{"GAME OVER", "custom_reason", "Enter:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 80, 24)
			r := NewTerminalRenderer(screen)
			s := baseSnapshot()
			tt.setup(s)
			r.RenderFrame(s)

			out := dump(screen)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Expected %q on screen:\n%s", want, out)
				}
			}
		})
	}
}

// TestRenderTooSmall verifies tiny terminals get a notice instead of a frame
func TestRenderTooSmall(t *testing.T) {
	screen := newTestScreen(t, 30, 8)
	NewTerminalRenderer(screen).RenderFrame(baseSnapshot())

	out := dump(screen)
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("Expected size notice:\n%s", out)
	}
	if strings.Contains(out, "HP ") {
		t.Error("Expected no HUD")
	}
}

// TestRenderBeamAndBullets verifies beams, bullets and trails land on cells
func TestRenderBeamAndBullets(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	s := baseSnapshot()
	s.Beams = []components.BeamComponent{{ID: 1, X1: 0, Y1: 400, X2: 50, Y2: 400, Life: 1}}
	s.Bullets = []components.BulletComponent{{
		ID: 2, X: 700, Y: 40, Trail: []components.Point{{X: 690, Y: 40}}, IsDrone: true,
	}}
	r.RenderFrame(s)

	// 400/440*22 = 20, plus HUD
	for x := 0; x <= 5; x++ {
		if got, _, _, _ := screen.GetContent(x, 22); got != beamGlyph {
			t.Errorf("Expected beam at %d,22, got %q", x, got)
		}
	}
	if got, _, _, _ := screen.GetContent(70, 4); got != bulletGlyph {
		t.Errorf("Expected bullet at 70,4, got %q", got)
	}
	if got, _, _, _ := screen.GetContent(69, 4); got != trailGlyph {
		t.Errorf("Expected trail at 69,4, got %q", got)
	}
	if fg(screen, 70, 4) != ParseColor(constants.ColorDroneBullet) {
		t.Error("Expected drone bullet color")
	}
}
