package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// numbers formats counters with digit grouping
var numbers = message.NewPrinter(language.English)

// FormatClock renders milliseconds as m:ss, clamping negatives to zero
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// HPBar renders hp/max as a fixed-width bar
func HPBar(hp, maxHP, cells int) string {
	if cells <= 0 {
		return ""
	}
	filled := 0
	if maxHP > 0 {
		filled = max(0, min(cells, hp*cells/maxHP))
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}

// StatusLine returns the first HUD row: health, level and experience
func StatusLine(s *engine.Snapshot) string {
	p := s.Player
	return numbers.Sprintf("HP %d/%d %s  Lv %d  EXP %d/%d",
		p.HP, p.MaxHP, HPBar(p.HP, p.MaxHP, constants.HPBarWidth),
		p.Level, p.Exp, p.ExpToNextLevel)
}

// InfoLine returns the second HUD row: kills, clock, mode and artifacts
func InfoLine(s *engine.Snapshot) string {
	return numbers.Sprintf("Kills %d  Time %s  %s D%d  Artifacts %d",
		s.Kills, FormatClock(s.TimeRemainingMs), s.Mode, s.Difficulty, len(s.Artifacts))
}

// drawHUD fills the reserved rows at the top of the screen
func (r *TerminalRenderer) drawHUD(c *canvas, s *engine.Snapshot) {
	base := tcell.StyleDefault.Foreground(ParseColor(constants.ColorHUD))
	c.fill(0, 0, c.width, constants.HUDHeight, tcell.StyleDefault)

	hpStyle := base
	if s.Player.MaxHP > 0 && s.Player.HP*4 <= s.Player.MaxHP {
		hpStyle = base.Foreground(ParseColor(constants.ColorMiss))
	}
	c.text(0, 0, StatusLine(s), hpStyle)
	c.text(0, 1, InfoLine(s), base)
}
