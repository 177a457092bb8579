package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// Glyphs per enemy shape
var shapeGlyphs = map[components.EnemyShape]rune{
	components.ShapeRect:     'E',
	components.ShapeTriangle: '▲',
	components.ShapeSquare:   '■',
	components.ShapeBoss:     '◆',
}

const (
	playerGlyph   = '@'
	bulletGlyph   = '•'
	trailGlyph    = '·'
	particleGlyph = '.'
	beamGlyph     = '∙'
)

// TerminalRenderer draws snapshots; it holds no game state
type TerminalRenderer struct {
	screen tcell.Screen
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// FieldSize returns the playfield size in cells for the current screen
func (r *TerminalRenderer) FieldSize() (w, h int) {
	sw, sh := r.screen.Size()
	return sw, max(0, sh-constants.HUDHeight)
}

// RenderFrame draws one complete frame of s
func (r *TerminalRenderer) RenderFrame(s *engine.Snapshot) {
	w, h := r.screen.Size()
	r.screen.Clear()

	c := &canvas{
		screen: r.screen,
		width:  w,
		height: h,
		fieldY: constants.HUDHeight,
		fieldW: w,
		fieldH: h - constants.HUDHeight,
		worldW: s.Width,
		worldH: s.Height,
	}

	if w < constants.MinTerminalWidth || h < constants.MinTerminalHeight {
		c.centered(w/2, h/2, "Terminal too small", tcell.StyleDefault.Foreground(ParseColor(constants.ColorMiss)))
		r.screen.Show()
		return
	}

	r.drawHUD(c, s)
	r.drawBeams(c, s)
	r.drawParticles(c, s)
	r.drawBullets(c, s)
	r.drawEnemies(c, s)
	r.drawPlayer(c, s)
	r.drawFloatingTexts(c, s)

	switch s.Phase {
	case engine.PhaseLevelUp:
		r.drawUpgradeChoice(c, s)
	case engine.PhaseArtifactSelect:
		r.drawArtifactChoice(c, s)
	case engine.PhaseGameOver:
		r.drawGameOver(c, s)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawPlayer(c *canvas, s *engine.Snapshot) {
	x, y, ok := c.cell(s.Player.X, s.Player.Y)
	if !ok {
		return
	}
	color := constants.ColorPlayer
	// Blink while invincible
	if s.Player.InvincibleTimer > 0 && (s.Player.InvincibleTimer/4)%2 == 0 {
		color = constants.ColorPlayerHit
	}
	c.put(x, y, playerGlyph, tcell.StyleDefault.Foreground(ParseColor(color)).Bold(true))
}

func (r *TerminalRenderer) drawEnemies(c *canvas, s *engine.Snapshot) {
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if e.Dead {
			continue
		}
		x, y, ok := c.cell(e.X, e.Y)
		if !ok {
			continue
		}

		color := e.Type.Color
		if e.Poisoned {
			color = constants.ColorPoison
		}
		glyph, ok := shapeGlyphs[e.Type.Shape]
		if !ok {
			glyph = 'E'
		}
		style := tcell.StyleDefault.Foreground(ParseColor(color))
		if e.IsBoss {
			style = style.Bold(true)
		}
		c.put(x, y, glyph, style)

		// Prompt above the glyph, or below when the enemy hugs the top edge
		py := y - 1
		if py < c.fieldY {
			py = y + 1
		}
		r.drawPrompt(c, x, py, e)
	}
}

// drawPrompt writes the question with typed progress highlighted
// When the question is the answer itself the typed prefix is recolored in place,
// otherwise the typed part of the answer follows the question
func (r *TerminalRenderer) drawPrompt(c *canvas, cx, y int, e *components.EnemyComponent) {
	typed := tcell.StyleDefault.Foreground(ParseColor(constants.ColorPromptTyped)).Bold(true)
	remain := tcell.StyleDefault.Foreground(ParseColor(constants.ColorPromptRemain))

	question := e.Question
	answer := []rune(e.Answer)
	progress := min(e.InputProgress, len(answer))

	if strings.HasSuffix(question, e.Answer) && e.Answer != "" {
		// Prefix such as "BOSS:" stays in the remaining style
		prefix := strings.TrimSuffix(question, e.Answer)
		x := cx - StringWidth(question)/2
		x = c.text(x, y, prefix, remain)
		x = c.text(x, y, string(answer[:progress]), typed)
		c.text(x, y, string(answer[progress:]), remain)
		return
	}

	label := question
	if progress > 0 {
		label += " " + string(answer[:progress])
	}
	x := cx - StringWidth(label)/2
	x = c.text(x, y, question, remain)
	if progress > 0 {
		c.text(x+1, y, string(answer[:progress]), typed)
	}
}

func (r *TerminalRenderer) drawBullets(c *canvas, s *engine.Snapshot) {
	for i := range s.Bullets {
		b := &s.Bullets[i]
		color := constants.ColorBullet
		if b.IsDrone {
			color = constants.ColorDroneBullet
		}
		style := tcell.StyleDefault.Foreground(ParseColor(color))
		for _, p := range b.Trail {
			if x, y, ok := c.cell(p.X, p.Y); ok {
				c.put(x, y, trailGlyph, style.Dim(true))
			}
		}
		if x, y, ok := c.cell(b.X, b.Y); ok {
			c.put(x, y, bulletGlyph, style)
		}
	}
}

func (r *TerminalRenderer) drawParticles(c *canvas, s *engine.Snapshot) {
	for i := range s.Particles {
		p := &s.Particles[i]
		if x, y, ok := c.cell(p.X, p.Y); ok {
			c.put(x, y, particleGlyph, tcell.StyleDefault.Foreground(ParseColor(p.Color)).Dim(p.Life < 0.5))
		}
	}
}

func (r *TerminalRenderer) drawBeams(c *canvas, s *engine.Snapshot) {
	style := tcell.StyleDefault.Foreground(ParseColor(constants.ColorBeam))
	for i := range s.Beams {
		b := &s.Beams[i]
		x0, y0, ok0 := c.cell(b.X1, b.Y1)
		x1, y1, ok1 := c.cell(b.X2, b.Y2)
		if !ok0 || !ok1 {
			continue
		}
		c.line(x0, y0, x1, y1, beamGlyph, style.Dim(b.Life < 0.5))
	}
}

func (r *TerminalRenderer) drawFloatingTexts(c *canvas, s *engine.Snapshot) {
	for i := range s.FloatingTexts {
		t := &s.FloatingTexts[i]
		if x, y, ok := c.cell(t.X, t.Y); ok {
			c.centered(x, y, t.Text, tcell.StyleDefault.Foreground(ParseColor(t.Color)))
		}
	}
}
