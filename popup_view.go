package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/burrow/internal/filemanager"
)

const dialogWidth = 56

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("105")).
			Padding(1, 2).
			Width(dialogWidth)

	warningDialogStyle = dialogStyle.
				BorderForeground(lipgloss.Color("196"))

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("105"))

	warningTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	dialogTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(dialogWidth - 4)

	dialogHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("57"))
)

func (p *sortingPopup) draw(f frame, fm *filemanager.FileManager) string {
	lines := []string{dialogTitleStyle.Render("Sorting"), ""}
	for i, opt := range p.options {
		mark := "( )"
		if opt.sorting == nil {
			mark = "[ ]"
			if fm.ShowHidden() {
				mark = "[x]"
			}
		} else if *opt.sorting == fm.DirSorting() {
			mark = "(•)"
		}
		line := mark + " " + opt.label
		if i == p.cursor {
			line = cursorRowStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", dialogHintStyle.Render("enter: apply • esc: close"))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (p *keyMappingPopup) draw(f frame, fm *filemanager.FileManager) string {
	p.help.Width = f.width - 4
	body := p.help.FullHelpView(explorerKeys.FullHelp())
	content := dialogTitleStyle.Render("Key Mappings") + "\n\n" + body + "\n\n" +
		dialogHintStyle.Render("esc/q/m: back")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("105")).
		Padding(1, 2).
		Width(f.width - 2).
		Height(f.height - 2).
		Render(content)
}

func (p *confirmationPopup) draw(f frame, fm *filemanager.FileManager) string {
	yes, no := buttonStyle.Render("Yes"), activeButtonStyle.Render("No")
	if p.yes {
		yes, no = activeButtonStyle.Render("Yes"), buttonStyle.Render("No")
	}
	content := warningTitleStyle.Render("⚠️  Confirm") + "\n\n" +
		dialogTextStyle.Render(p.prompt) + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no) + "\n\n" +
		dialogHintStyle.Render("y: yes • n: no • esc: cancel")
	return warningDialogStyle.Render(content)
}

func (p *textFieldPopup) draw(f frame, fm *filemanager.FileManager) string {
	label := p.label
	if label == "" {
		label = "Input"
	}
	p.input.Width = dialogWidth - 8
	content := dialogTitleStyle.Render(label) + "\n\n" +
		p.input.View() + "\n\n" +
		dialogHintStyle.Render("enter: confirm • esc: cancel")
	return dialogStyle.Render(content)
}

func (p *newFilePopup) draw(f frame, fm *filemanager.FileManager) string {
	p.input.Width = dialogWidth - 8
	content := dialogTitleStyle.Render("📄 New File") + "\n" +
		dialogTextStyle.Render("in "+fm.CurrentDir()) + "\n\n" +
		p.input.View() + "\n\n" +
		dialogHintStyle.Render("end with / for a directory • esc: cancel")
	return dialogStyle.Render(content)
}
