package modes

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/systems"
)

// Action tells the game loop what to do after an event
type Action int

const (
	ActionNone    Action = iota
	ActionQuit           // Leave the program
	ActionLobby          // Return to the lobby
	ActionResize         // Recompute the playfield
	ActionRestart        // A new run was started
)

// InputHandler routes terminal events to the simulation
type InputHandler struct {
	sim *systems.Simulation
}

// NewInputHandler creates a handler bound to sim
func NewInputHandler(sim *systems.Simulation) *InputHandler {
	return &InputHandler{sim: sim}
}

// HandleEvent processes a tcell event
func (h *InputHandler) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKeyEvent(ev)
	case *tcell.EventResize:
		return ActionResize
	}
	return ActionNone
}

// handleKeyEvent processes keyboard events
func (h *InputHandler) handleKeyEvent(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionLobby
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'q') {
			return ActionQuit
		}
	}

	phase := h.sim.Phase()
	switch {
	case phase.Paused():
		return h.handleChoice(ev)
	case phase == engine.PhaseGameOver:
		if ev.Key() == tcell.KeyEnter {
			h.sim.Start()
			return ActionRestart
		}
	case phase == engine.PhasePlaying:
		if ev.Key() == tcell.KeyRune && Typeable(ev.Rune()) {
			h.sim.TypeCharacter(KeyToRune(ev.Rune()))
		}
	}
	return ActionNone
}

// handleChoice maps 1-9 onto option indices; out of range picks are ignored
func (h *InputHandler) handleChoice(ev *tcell.EventKey) Action {
	if ev.Key() != tcell.KeyRune {
		return ActionNone
	}
	r := ev.Rune()
	if r < '1' || r > '9' {
		return ActionNone
	}
	h.sim.SelectOption(int(r - '1'))
	return ActionNone
}
