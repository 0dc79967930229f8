package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/filemanager"
)

// appEvent is the outcome of handling one key press.
type appEvent int

const (
	eventNone appEvent = iota
	eventExit
	eventOpenExplorer
	eventOpenSortingPopup
	eventOpenKeyMappingPopup
	eventOpenConfirmationPopup
	eventOpenTextFieldPopup
	eventOpenNewFilePopup
)

// window indexes the controller's state array.
type window int

const (
	windowExplorer window = iota
	windowSortingPopup
	windowKeyMappingPopup
	windowConfirmationPopup
	windowTextFieldPopup
	windowNewFilePopup
	windowCount
)

// target maps a transition request to the window it opens.
func (e appEvent) target() (window, bool) {
	switch e {
	case eventOpenExplorer:
		return windowExplorer, true
	case eventOpenSortingPopup:
		return windowSortingPopup, true
	case eventOpenKeyMappingPopup:
		return windowKeyMappingPopup, true
	case eventOpenConfirmationPopup:
		return windowConfirmationPopup, true
	case eventOpenTextFieldPopup:
		return windowTextFieldPopup, true
	case eventOpenNewFilePopup:
		return windowNewFilePopup, true
	}
	return 0, false
}

func (w window) String() string {
	switch w {
	case windowExplorer:
		return "explorer"
	case windowSortingPopup:
		return "sorting"
	case windowKeyMappingPopup:
		return "key mapping"
	case windowConfirmationPopup:
		return "confirmation"
	case windowTextFieldPopup:
		return "text field"
	case windowNewFilePopup:
		return "new file"
	}
	return "unknown"
}

// frame is the screen region a state draws into.
type frame struct {
	width  int
	height int
}

// state is one UI mode. The controller calls exit on the old state and
// enter on the new one on every switch.
type state interface {
	enter(fm *filemanager.FileManager)
	exit(fm *filemanager.FileManager)
	handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent
	draw(f frame, fm *filemanager.FileManager) string
}

// overlayState is implemented by popups drawn on top of the explorer
// instead of replacing it.
type overlayState interface {
	overlay() bool
}

// message carries a popup request or reply across a state switch.
// It is one of stringMessage, boolMessage or twoStringsMessage.
type message interface {
	isMessage()
}

type stringMessage string

type boolMessage bool

type twoStringsMessage struct {
	label string
	value string
}

func (stringMessage) isMessage()     {}
func (boolMessage) isMessage()       {}
func (twoStringsMessage) isMessage() {}

// messageSender hands over the payload produced for the next state.
// takeMessage clears it so a payload is delivered at most once.
type messageSender interface {
	takeMessage() message
}

// messageReceiver accepts the payload left by the previous state. msg is
// nil when the previous state produced nothing, e.g. a cancelled popup.
type messageReceiver interface {
	handleMessage(msg message, fm *filemanager.FileManager)
}
