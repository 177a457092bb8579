package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// Game over headlines per reason
var reasonText = map[engine.GameOverReason]string{
	engine.ReasonTimeUp:      "시간 종료! 시스템을 지켜냈습니다",
	engine.ReasonDefeated:    "시스템이 함락되었습니다",
	engine.ReasonBossContact: "보스에게 침투당했습니다",
}

// overlayLine is one row of a centered box
type overlayLine struct {
	text  string
	color string
}

// drawBox paints a bordered box centered on the playfield
func (r *TerminalRenderer) drawBox(c *canvas, title string, lines []overlayLine) {
	inner := StringWidth(title)
	for _, l := range lines {
		inner = max(inner, StringWidth(l.text))
	}
	w := min(inner+4, c.width)
	h := min(len(lines)+2, c.fieldH)
	x := (c.width - w) / 2
	y := c.fieldY + (c.fieldH-h)/2

	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	border := bg.Foreground(ParseColor(constants.ColorHUD))
	c.fill(x, y, w, h, bg)
	for col := x; col < x+w; col++ {
		c.put(col, y, '─', border)
		c.put(col, y+h-1, '─', border)
	}
	for row := y; row < y+h; row++ {
		c.put(x, row, '│', border)
		c.put(x+w-1, row, '│', border)
	}
	c.put(x, y, '┌', border)
	c.put(x+w-1, y, '┐', border)
	c.put(x, y+h-1, '└', border)
	c.put(x+w-1, y+h-1, '┘', border)
	c.centered(x+w/2, y, title, border.Bold(true))

	for i, l := range lines {
		if 1+i >= h-1 {
			break
		}
		c.text(x+2, y+1+i, l.text, bg.Foreground(ParseColor(l.color)))
	}
}

func (r *TerminalRenderer) drawUpgradeChoice(c *canvas, s *engine.Snapshot) {
	lines := make([]overlayLine, 0, len(s.Upgrades)+2)
	for i, u := range s.Upgrades {
		color, ok := constants.RarityColors[string(u.Rarity)]
		if !ok {
			color = constants.ColorHUD
		}
		lines = append(lines, overlayLine{
			text:  fmt.Sprintf("%d) %s - %s [%s]", i+1, u.Name, u.Description, u.Rarity),
			color: color,
		})
	}
	lines = append(lines, overlayLine{}, overlayLine{text: constants.PausedHint, color: constants.ColorHUD})
	r.drawBox(c, constants.LevelUpTitle, lines)
}

func (r *TerminalRenderer) drawArtifactChoice(c *canvas, s *engine.Snapshot) {
	lines := make([]overlayLine, 0, len(s.ArtifactOptions)+2)
	for i, a := range s.ArtifactOptions {
		lines = append(lines, overlayLine{
			text:  fmt.Sprintf("%d) %s - %s", i+1, a.Name, a.Description),
			color: constants.ColorCrit,
		})
	}
	lines = append(lines, overlayLine{}, overlayLine{text: constants.PausedHint, color: constants.ColorHUD})
	r.drawBox(c, constants.ArtifactSelectTitle, lines)
}

func (r *TerminalRenderer) drawGameOver(c *canvas, s *engine.Snapshot) {
	headline, ok := reasonText[s.GameOverReason]
	if !ok {
		headline = string(s.GameOverReason)
	}
	lines := []overlayLine{
		{text: headline, color: constants.ColorWarning},
		{},
		{text: numbers.Sprintf("처치 %d  레벨 %d", s.Kills, s.Player.Level), color: constants.ColorHUD},
		{text: "Enter: 다시 시작  Esc: 로비", color: constants.ColorHUD},
	}
	r.drawBox(c, constants.GameOverTitle, lines)
}
