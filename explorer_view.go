package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/burrow/internal/filemanager"
	"github.com/LFroesch/burrow/internal/utils"
)

const (
	sizeColumnWidth = 10
	pathPanelHeight = 4
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("230"))

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("255"))

	dirRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	fileRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	unreadableRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

// draw renders the path panel, the listing and the error panel. Pending
// errors are moved from the FileManager into the display ring here.
func (e *explorer) draw(f frame, fm *filemanager.FileManager) string {
	for _, msg := range fm.TakeErrors() {
		e.errorRing.Push(msg)
	}

	mainHeight := max(f.height-pathPanelHeight-1, 5)
	tableWidth := f.width * 7 / 10
	errorWidth := f.width - tableWidth

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		e.renderTable(fm, tableWidth, mainHeight),
		e.renderErrors(errorWidth, mainHeight),
	)

	hint := hintStyle.Render(fmt.Sprintf("Key Mappings:%s", explorerKeys.KeyMapping.Help().Key))
	if e.status != "" {
		hint += "  " + statusStyle.Render(e.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		e.renderPathPanel(fm, f.width),
		body,
		hint,
	)
}

func (e *explorer) renderPathPanel(fm *filemanager.FileManager, width int) string {
	inner := width - 2
	path := headerStyle.Render(utils.TruncateName("📂 "+fm.CurrentDir(), inner))

	info := []string{fmt.Sprintf("%d entries", fm.NumFiles())}
	if branch := e.branches.Get(fm.CurrentDir()); branch != "" {
		info = append(info, "Branch: "+branch)
	}
	if n := fm.SelectionLen(); n > 0 {
		info = append(info, fmt.Sprintf("%d selected", n))
	}
	info = append(info, "Dirs: "+fm.DirSorting().Label())
	if fm.ShowHidden() {
		info = append(info, "Hidden: shown")
	} else {
		info = append(info, "Hidden: off")
	}
	line := infoStyle.Render(utils.TruncateName(strings.Join(info, " | "), inner))

	return panelStyle.Width(inner).Render(path + "\n" + line)
}

// visibleRows keeps the cursor inside the scroll window and returns the
// index range to render.
func (e *explorer) visibleRows(total, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if e.cursor < e.scrollOffset {
		e.scrollOffset = e.cursor
	}
	if e.cursor >= e.scrollOffset+rows {
		e.scrollOffset = e.cursor - rows + 1
	}
	e.scrollOffset = utils.Clamp(e.scrollOffset, 0, max(total-rows, 0))
	return e.scrollOffset, min(e.scrollOffset+rows, total)
}

func (e *explorer) renderTable(fm *filemanager.FileManager, width, height int) string {
	inner := width - 2
	nameWidth := max(inner-sizeColumnWidth-1, 4)

	header := headerStyle.Render(utils.PadName("FILENAME", nameWidth) + " " +
		fmt.Sprintf("%*s", sizeColumnWidth, "SIZE"))

	lines := []string{header}
	entries := fm.Entries()
	if len(entries) == 0 {
		lines = append(lines, infoStyle.Render("(empty)"))
	}

	start, end := e.visibleRows(len(entries), height-3)
	for i := start; i < end; i++ {
		lines = append(lines, e.renderRow(entries[i], i, fm, nameWidth))
	}

	return panelStyle.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (e *explorer) renderRow(entry filemanager.Entry, i int, fm *filemanager.FileManager, nameWidth int) string {
	name := utils.GetFileIcon(entry.Name, entry.IsDir) + " " + entry.Name
	if entry.IsDir {
		name += "/"
	}
	if entry.Symlink {
		name += " →"
	}

	size := ""
	if !entry.IsDir {
		size = utils.FormatFileSize(entry.Size)
	}

	namePart := utils.PadName(utils.TruncateName(name, nameWidth), nameWidth) + " "
	sizePart := fmt.Sprintf("%*s", sizeColumnWidth, size)

	switch {
	case i == e.cursor:
		return cursorRowStyle.Render(namePart + sizePart)
	case fm.IsSelected(entry.Path):
		return selectedRowStyle.Render(namePart + sizePart)
	case !entry.Readable:
		return unreadableRowStyle.Render(namePart + sizePart)
	case entry.IsDir:
		return dirRowStyle.Render(namePart + sizePart)
	}
	if size != "" {
		sizePart = strings.Repeat(" ", max(sizeColumnWidth-len(size), 0)) + utils.FormatFileSizeColored(entry.Size)
	}
	return fileRowStyle.Render(namePart) + sizePart
}

func (e *explorer) renderErrors(width, height int) string {
	inner := width - 2
	rows := max(height-3, 1)

	items := e.errorRing.Items()
	if len(items) > rows {
		items = items[len(items)-rows:]
	}

	lines := []string{headerStyle.Render(fmt.Sprintf("Errors (%d)", e.errorRing.Len()))}
	for _, msg := range items {
		lines = append(lines, errorTextStyle.Render(utils.TruncateName(msg, inner)))
	}

	return panelStyle.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}
