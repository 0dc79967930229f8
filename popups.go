package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/filemanager"
)

// Sorting popup

// sortingOption is one row of the sorting popup. A nil sorting marks the
// hidden files row.
type sortingOption struct {
	label   string
	sorting *filemanager.DirSorting
}

type sortingPopup struct {
	options []sortingOption
	cursor  int
}

func newSortingPopup() *sortingPopup {
	var options []sortingOption
	for _, d := range []filemanager.DirSorting{
		filemanager.Unsorted,
		filemanager.Start,
		filemanager.End,
	} {
		options = append(options, sortingOption{label: d.Label(), sorting: &d})
	}
	options = append(options, sortingOption{label: "Show hidden files"})
	return &sortingPopup{options: options}
}

func (p *sortingPopup) overlay() bool { return true }

func (p *sortingPopup) enter(fm *filemanager.FileManager) {
	p.cursor = 0
	for i, opt := range p.options {
		if opt.sorting != nil && *opt.sorting == fm.DirSorting() {
			p.cursor = i
		}
	}
}

func (p *sortingPopup) exit(fm *filemanager.FileManager) {}

func (p *sortingPopup) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	switch {
	case key.Matches(msg, popupKeys.Cancel),
		msg.String() == "q",
		key.Matches(msg, explorerKeys.SortingPopup):
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Up):
		p.cursor = (p.cursor - 1 + len(p.options)) % len(p.options)

	case key.Matches(msg, popupKeys.Down):
		p.cursor = (p.cursor + 1) % len(p.options)

	case key.Matches(msg, popupKeys.Confirm):
		opt := p.options[p.cursor]
		if opt.sorting == nil {
			fm.ToggleHidden()
			return eventNone
		}
		fm.SetDirSorting(*opt.sorting)
		return eventOpenExplorer
	}
	return eventNone
}

// Key mapping popup

type keyMappingPopup struct {
	help help.Model
}

func newKeyMappingPopup() *keyMappingPopup {
	h := help.New()
	h.ShowAll = true
	return &keyMappingPopup{help: h}
}

func (p *keyMappingPopup) enter(fm *filemanager.FileManager) {}

func (p *keyMappingPopup) exit(fm *filemanager.FileManager) {}

func (p *keyMappingPopup) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	switch {
	case key.Matches(msg, popupKeys.Cancel),
		key.Matches(msg, explorerKeys.KeyMapping),
		msg.String() == "q":
		return eventOpenExplorer
	}
	return eventNone
}

// Confirmation popup

const defaultConfirmationPrompt = "Are you sure?"

type confirmationPopup struct {
	prompt   string
	yes      bool
	outgoing message
}

func newConfirmationPopup() *confirmationPopup {
	return &confirmationPopup{prompt: defaultConfirmationPrompt}
}

func (p *confirmationPopup) overlay() bool { return true }

func (p *confirmationPopup) enter(fm *filemanager.FileManager) {
	p.prompt = defaultConfirmationPrompt
	p.yes = false
	p.outgoing = nil
}

func (p *confirmationPopup) exit(fm *filemanager.FileManager) {}

func (p *confirmationPopup) handleMessage(msg message, fm *filemanager.FileManager) {
	if prompt, ok := msg.(stringMessage); ok && prompt != "" {
		p.prompt = string(prompt)
	}
}

func (p *confirmationPopup) takeMessage() message {
	msg := p.outgoing
	p.outgoing = nil
	return msg
}

func (p *confirmationPopup) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	switch {
	case key.Matches(msg, popupKeys.Accept):
		p.outgoing = boolMessage(true)
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Reject):
		p.outgoing = boolMessage(false)
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Confirm):
		p.outgoing = boolMessage(p.yes)
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Switch):
		p.yes = !p.yes

	case key.Matches(msg, popupKeys.Cancel):
		return eventOpenExplorer
	}
	return eventNone
}

// Text field popup

func newInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 50
	ti.Prompt = "> "
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

type textFieldPopup struct {
	label    string
	input    textinput.Model
	outgoing message
}

func newTextFieldPopup() *textFieldPopup {
	return &textFieldPopup{input: newInput()}
}

func (p *textFieldPopup) overlay() bool { return true }

func (p *textFieldPopup) enter(fm *filemanager.FileManager) {
	p.label = ""
	p.outgoing = nil
	p.input.Reset()
	p.input.Focus()
}

func (p *textFieldPopup) exit(fm *filemanager.FileManager) {
	p.input.Blur()
}

// handleMessage takes the label and the initial value of the field.
func (p *textFieldPopup) handleMessage(msg message, fm *filemanager.FileManager) {
	switch m := msg.(type) {
	case twoStringsMessage:
		p.label = m.label
		p.input.SetValue(m.value)
		p.input.CursorEnd()
	case stringMessage:
		p.label = string(m)
	}
}

func (p *textFieldPopup) takeMessage() message {
	msg := p.outgoing
	p.outgoing = nil
	return msg
}

func (p *textFieldPopup) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	switch {
	case key.Matches(msg, popupKeys.Confirm):
		p.outgoing = stringMessage(p.input.Value())
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Cancel):
		return eventOpenExplorer
	}
	p.input, _ = p.input.Update(msg)
	return eventNone
}

// New file popup

type newFilePopup struct {
	input textinput.Model
}

func newNewFilePopup() *newFilePopup {
	ti := newInput()
	ti.Placeholder = "name, or name/ for a directory"
	return &newFilePopup{input: ti}
}

func (p *newFilePopup) overlay() bool { return true }

func (p *newFilePopup) enter(fm *filemanager.FileManager) {
	p.input.Reset()
	p.input.Focus()
}

func (p *newFilePopup) exit(fm *filemanager.FileManager) {
	p.input.Blur()
}

// handleKeyEvent creates the entry in the current directory on enter. A
// trailing separator asks for a directory.
func (p *newFilePopup) handleKeyEvent(msg tea.KeyMsg, fm *filemanager.FileManager) appEvent {
	switch {
	case key.Matches(msg, popupKeys.Confirm):
		name := strings.TrimSpace(p.input.Value())
		if name == "" {
			return eventOpenExplorer
		}
		if strings.HasSuffix(name, "/") {
			fm.CreateDir(strings.TrimRight(name, "/"))
		} else {
			fm.CreateFile(name)
		}
		return eventOpenExplorer

	case key.Matches(msg, popupKeys.Cancel):
		return eventOpenExplorer
	}
	p.input, _ = p.input.Update(msg)
	return eventNone
}
