package constants

import "time"

// Terminal Layout
const (
	// HUDHeight is the number of rows reserved for the status bar
	HUDHeight = 2

	// MinTerminalWidth and MinTerminalHeight are the smallest usable terminal size
	MinTerminalWidth  = 40
	MinTerminalHeight = 12

	// HPBarWidth is the cell width of the health bar in the HUD
	HPBarWidth = 20
)

// Overlay text
const (
	LevelUpTitle        = " LEVEL UP "
	ArtifactSelectTitle = " ARTIFACT "
	GameOverTitle       = " GAME OVER "
	PausedHint          = "1-3 to choose"
)

// Colors used by the terminal renderer, as hex strings understood by tcell.GetColor
const (
	ColorPlayer       = "#00ff88"
	ColorPlayerHit    = "#ffffff"
	ColorBullet       = "#ffff00"
	ColorDroneBullet  = "#00ffff"
	ColorBeam         = "#4488ff"
	ColorPromptTyped  = "#00ff00"
	ColorPromptRemain = "#ffffff"
	ColorMiss         = "#ff0000"
	ColorCrit         = "#ffaa00"
	ColorHeal         = "#00ff00"
	ColorPoison       = "#aa00ff"
	ColorWarning      = "#ff00ff"
	ColorHUD          = "#cccccc"
)

// Rarity colors, keyed by components.Rarity string value
var RarityColors = map[string]string{
	"Common":    "#aaaaaa",
	"Rare":      "#4488ff",
	"Epic":      "#aa44ff",
	"Legendary": "#ffaa00",
}

// RenderFrameBudget bounds a single terminal draw before the frame is skipped
const RenderFrameBudget = 12 * time.Millisecond
