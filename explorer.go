package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/burrow/internal/filemanager"
	"github.com/LFroesch/burrow/internal/git"
	"github.com/LFroesch/burrow/internal/ringbuf"
)

const (
	deletePermanentlyPrompt = "The selected files will be deleted permanently, are you sure?"
	deleteToTrashPrompt     = "The selected files will be moved to the trash, are you sure?"
)

// pendingAction records why the explorer opened its last popup so the
// reply can be routed to the right operation.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionDelete
	actionChangePath
	actionJump
)

// explorer is the main listing mode.
type explorer struct {
	cursor       int
	scrollOffset int

	pending  pendingAction
	outgoing message

	// status is a one-line hint about the last key, cleared on the next one.
	status string

	errorRing *ringbuf.Buffer
	branches  *git.BranchCache

	// Replaced in tests.
	openPath      func(path string) error
	copyClipboard func(text string) error
}

func newExplorer(errorCapacity int) *explorer {
	return &explorer{
		errorRing:     ringbuf.New(errorCapacity),
		branches:      git.NewBranchCache(),
		openPath:      open.Start,
		copyClipboard: clipboard.WriteAll,
	}
}

func (e *explorer) enter(fm *filemanager.FileManager) {
	fm.Update()
	e.clampCursor(fm)
}

func (e *explorer) exit(fm *filemanager.FileManager) {}

func (e *explorer) takeMessage() message {
	msg := e.outgoing
	e.outgoing = nil
	return msg
}

// handleMessage routes a popup reply according to the pending action.
// Each action accepts exactly one reply type; anything else, including
// no reply, cancels. The pending action is reset afterwards.
func (e *explorer) handleMessage(msg message, fm *filemanager.FileManager) {
	action := e.pending
	e.pending = actionNone

	switch action {
	case actionDelete:
		if confirmed, ok := msg.(boolMessage); ok && bool(confirmed) {
			fm.DeleteSelection()
		}
	case actionChangePath:
		if path, ok := msg.(stringMessage); ok {
			if fm.ChangeDir(string(path)) {
				e.cursor = 0
			}
		}
	case actionJump:
		if query, ok := msg.(stringMessage); ok {
			e.jumpTo(string(query), fm)
		}
	}
	e.clampCursor(fm)
}

// request stores the payload for the next popup and remembers why it was opened.
func (e *explorer) request(action pendingAction, msg message, event appEvent) appEvent {
	e.pending = action
	e.outgoing = msg
	return event
}

func (e *explorer) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	e.status = ""

	switch {
	case key.Matches(msg, explorerKeys.Quit):
		return eventExit

	case key.Matches(msg, explorerKeys.SortingPopup):
		return eventOpenSortingPopup

	case key.Matches(msg, explorerKeys.KeyMapping):
		return eventOpenKeyMappingPopup

	case key.Matches(msg, explorerKeys.NewFile):
		return eventOpenNewFilePopup

	case key.Matches(msg, explorerKeys.CycleDirSorting):
		fm.CycleDirSorting()

	case key.Matches(msg, explorerKeys.Down):
		e.moveDown(fm)

	case key.Matches(msg, explorerKeys.Up):
		e.moveUp(fm)

	case key.Matches(msg, explorerKeys.Enter):
		if entry, ok := e.entryUnderCursor(fm); ok && entry.IsDir {
			e.changeDir(entry.Path, fm)
		}

	case key.Matches(msg, explorerKeys.Parent):
		e.changeDir("..", fm)

	case key.Matches(msg, explorerKeys.Open):
		entry, ok := e.entryUnderCursor(fm)
		if !ok {
			break
		}
		if entry.IsDir {
			e.changeDir(entry.Path, fm)
		} else if err := e.openPath(entry.Path); err != nil {
			fm.RecordError(fmt.Errorf("cannot open %s: %w", entry.Path, err))
		}

	case key.Matches(msg, explorerKeys.ToggleSelect):
		if entry, ok := e.entryUnderCursor(fm); ok {
			fm.ToggleSelection(entry.Path)
		}

	case key.Matches(msg, explorerKeys.ClearSelection):
		fm.ClearSelection()

	case key.Matches(msg, explorerKeys.Paste):
		fm.Paste()
		fm.ClearSelection()

	case key.Matches(msg, explorerKeys.Delete):
		if fm.SelectionLen() == 0 {
			e.status = "Nothing selected to delete"
			break
		}
		return e.request(actionDelete, stringMessage(deletePrompt(fm)), eventOpenConfirmationPopup)

	case key.Matches(msg, explorerKeys.ToggleHidden):
		fm.ToggleHidden()

	case key.Matches(msg, explorerKeys.ChangeDir):
		return e.request(actionChangePath, twoStringsMessage{label: "Change Path", value: fm.CurrentDir()}, eventOpenTextFieldPopup)

	case key.Matches(msg, explorerKeys.Jump):
		return e.request(actionJump, twoStringsMessage{label: "Jump To", value: ""}, eventOpenTextFieldPopup)

	case key.Matches(msg, explorerKeys.Refresh):
		fm.Update()
		e.branches.Invalidate()

	case key.Matches(msg, explorerKeys.CopyPath):
		if entry, ok := e.entryUnderCursor(fm); ok {
			if err := e.copyClipboard(entry.Path); err != nil {
				fm.RecordError(fmt.Errorf("cannot copy %s to clipboard: %w", entry.Path, err))
			}
		}
	}

	e.clampCursor(fm)
	return eventNone
}

// moveDown advances the cursor, wrapping from the last entry to the first.
func (e *explorer) moveDown(fm *filemanager.FileManager) {
	if fm.NumFiles() == 0 {
		return
	}
	if e.cursor >= fm.NumFiles()-1 {
		e.cursor = 0
		return
	}
	e.cursor++
}

// moveUp retreats the cursor, wrapping from the first entry to the last.
func (e *explorer) moveUp(fm *filemanager.FileManager) {
	if fm.NumFiles() == 0 {
		return
	}
	if e.cursor <= 0 {
		e.cursor = fm.NumFiles() - 1
		return
	}
	e.cursor--
}

func (e *explorer) changeDir(path string, fm *filemanager.FileManager) {
	previous := fm.CurrentDir()
	if !fm.ChangeDir(path) {
		return
	}
	e.cursor = 0
	// Land on the directory we came from when going up.
	for i, entry := range fm.Entries() {
		if entry.Path == previous {
			e.cursor = i
			break
		}
	}
}

// entryUnderCursor returns the entry at the cursor. An out-of-range
// cursor counts as no entry.
func (e *explorer) entryUnderCursor(fm *filemanager.FileManager) (filemanager.Entry, bool) {
	entry, err := fm.GetEntryAtIndex(e.cursor)
	if err != nil {
		return filemanager.Entry{}, false
	}
	return entry, true
}

func (e *explorer) clampCursor(fm *filemanager.FileManager) {
	if e.cursor >= fm.NumFiles() {
		e.cursor = fm.NumFiles() - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

func deletePrompt(fm *filemanager.FileManager) string {
	prompt := deletePermanentlyPrompt
	if fm.UseTrash() {
		prompt = deleteToTrashPrompt
	}
	return fmt.Sprintf("%s (%d item(s))", prompt, fm.SelectionLen())
}

// entryNames adapts a listing to fuzzy.Source.
type entryNames []filemanager.Entry

func (n entryNames) String(i int) string { return n[i].Name }
func (n entryNames) Len() int            { return len(n) }

// jumpTo moves the cursor to the best fuzzy match for query.
func (e *explorer) jumpTo(query string, fm *filemanager.FileManager) {
	if query == "" {
		return
	}
	matches := fuzzy.FindFrom(query, entryNames(fm.Entries()))
	if len(matches) == 0 {
		e.status = fmt.Sprintf("No entry matches %q", query)
		return
	}
	e.cursor = matches[0].Index
}
