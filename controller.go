package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/filemanager"
	"github.com/LFroesch/burrow/internal/logger"
	"github.com/LFroesch/burrow/internal/overlay"
)

// Terminal dimension constants
const (
	minTerminalWidth  = 60
	minTerminalHeight = 16
)

// controller owns every UI mode, the index of the active one and the
// shared FileManager. It is the tea.Model handed to bubbletea.
type controller struct {
	states  [windowCount]state
	current window
	fm      *filemanager.FileManager
	frame   frame
}

func newController(fm *filemanager.FileManager) *controller {
	c := &controller{
		states: [windowCount]state{
			windowExplorer:          newExplorer(fm.ErrorLogCapacity()),
			windowSortingPopup:      newSortingPopup(),
			windowKeyMappingPopup:   newKeyMappingPopup(),
			windowConfirmationPopup: newConfirmationPopup(),
			windowTextFieldPopup:    newTextFieldPopup(),
			windowNewFilePopup:      newNewFilePopup(),
		},
		current: windowExplorer,
		fm:      fm,
		frame:   frame{width: minTerminalWidth, height: minTerminalHeight},
	}
	c.states[c.current].enter(c.fm)
	return c
}

func (c *controller) Init() tea.Cmd {
	return tea.SetWindowTitle("burrow")
}

func (c *controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.frame = frame{
			width:  max(msg.Width, minTerminalWidth),
			height: max(msg.Height, minTerminalHeight),
		}
		return c, nil

	case tea.KeyMsg:
		// bubbletea only reports key presses, never releases or repeats.
		if c.handleKeyEvent(msg) == eventExit {
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c *controller) View() string {
	return c.draw()
}

// handleKeyEvent forwards one key press to the active state and performs
// the mode switch it asks for. The returned event is eventNone unless the
// application should exit.
func (c *controller) handleKeyEvent(msg tea.KeyMsg) appEvent {
	event := c.states[c.current].handleKeyEvent(msg, c.fm)
	if event == eventExit {
		return eventExit
	}
	if target, ok := event.target(); ok {
		c.changeState(target)
	}
	return eventNone
}

// changeState always runs exit on the active state and enter on the
// target, even when both are the same. Any payload left by the old state
// is delivered to the new one once it has entered.
func (c *controller) changeState(target window) {
	old := c.states[c.current]
	old.exit(c.fm)

	var msg message
	if sender, ok := old.(messageSender); ok {
		msg = sender.takeMessage()
	}

	logger.Info("switching from %s to %s", c.current, target)
	c.current = target
	next := c.states[c.current]
	next.enter(c.fm)

	if receiver, ok := next.(messageReceiver); ok {
		receiver.handleMessage(msg, c.fm)
	}
}

// draw renders the active state. Overlay popups are spliced onto the
// explorer view so the listing stays visible behind them.
func (c *controller) draw() string {
	active := c.states[c.current]
	if o, ok := active.(overlayState); ok && o.overlay() {
		base := c.states[windowExplorer].draw(c.frame, c.fm)
		popup := active.draw(c.frame, c.fm)
		return overlay.Center(base, popup, c.frame.width, c.frame.height)
	}
	return active.draw(c.frame, c.fm)
}
