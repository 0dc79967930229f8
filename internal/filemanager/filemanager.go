// Package filemanager holds the directory state shared by every UI mode:
// the current directory and its listing, a selection set that outlives
// the listing, sort and hidden-file policy, and a bounded log of failed
// filesystem operations.
//
// Filesystem failures never escape as panics or returned errors from the
// mutating operations. They are converted to strings and queued in the
// error log, which the UI drains with TakeErrors.
package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/logger"
	"github.com/LFroesch/burrow/internal/ringbuf"
)

// DefaultErrorLogCapacity is the number of failures kept when Options
// does not say otherwise.
const DefaultErrorLogCapacity = 20

// Options configure a FileManager.
type Options struct {
	StartDir         string // "" means the working directory
	ShowHidden       bool
	DirSorting       DirSorting
	ErrorLogCapacity int
	HidePatterns     []string // glob patterns hidden like dotfiles
	UseTrash         bool     // move deleted paths to the system trash when possible
}

// FileManager is the single mutable domain object threaded through the UI.
// It is not safe for concurrent use.
type FileManager struct {
	currentDir string
	entries    []Entry
	numFiles   int

	dirSorting DirSorting
	showHidden bool
	patterns   []glob.Glob
	useTrash   bool

	selection map[string]struct{}
	errorLog  *ringbuf.Buffer
}

// New builds a FileManager rooted at opts.StartDir and lists it.
func New(opts Options) (*FileManager, error) {
	patterns, err := compilePatterns(opts.HidePatterns)
	if err != nil {
		return nil, err
	}

	capacity := opts.ErrorLogCapacity
	if capacity <= 0 {
		capacity = DefaultErrorLogCapacity
	}

	start := opts.StartDir
	if start == "" {
		if start, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
	}
	dir, err := resolveDir(expandHome(start))
	if err != nil {
		return nil, &NavigationError{Path: start, Err: err}
	}

	fm := &FileManager{
		currentDir: dir,
		dirSorting: opts.DirSorting,
		showHidden: opts.ShowHidden,
		patterns:   patterns,
		useTrash:   opts.UseTrash,
		selection:  make(map[string]struct{}),
		errorLog:   ringbuf.New(capacity),
	}
	fm.Update()
	return fm, nil
}

// Update rebuilds the listing of the current directory from scratch.
// On an enumeration failure the error is queued and the listing holds
// whatever could be read, possibly nothing.
func (fm *FileManager) Update() {
	raw, statErrs, err := readEntries(fm.currentDir)
	for _, statErr := range statErrs {
		fm.RecordError(statErr)
	}
	if err != nil {
		fm.RecordError(&ListingError{Path: fm.currentDir, Err: err})
	}

	fm.entries = filterAndSort(raw, fm.showHidden, fm.patterns, fm.dirSorting)
	fm.numFiles = len(fm.entries)
}

// ChangeDir moves to path, which may be absolute or relative to the
// current directory ("..", "~" and symlinks are resolved). On failure
// the error is queued, the current directory is left unchanged and
// false is returned.
func (fm *FileManager) ChangeDir(path string) bool {
	target := expandHome(strings.TrimRight(path, "\r\n"))
	if target == "" {
		fm.RecordError(&NavigationError{Path: path, Err: os.ErrInvalid})
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(fm.currentDir, target)
	}

	dir, err := resolveDir(target)
	if err != nil {
		fm.RecordError(&NavigationError{Path: target, Err: err})
		return false
	}

	fm.currentDir = dir
	fm.Update()
	return true
}

// resolveDir canonicalizes path and checks it is a directory we can open.
func resolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", ErrNotDirectory
	}

	f, err := os.Open(resolved)
	if err != nil {
		return "", err
	}
	f.Close()
	return resolved, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// CurrentDir returns the absolute, canonical current directory.
func (fm *FileManager) CurrentDir() string { return fm.currentDir }

// Entries returns the current listing. Callers must not modify it.
func (fm *FileManager) Entries() []Entry { return fm.entries }

// NumFiles is always len(Entries()).
func (fm *FileManager) NumFiles() int { return fm.numFiles }

// GetEntryAtIndex returns the i-th listed entry or ErrIndexOutOfRange.
func (fm *FileManager) GetEntryAtIndex(i int) (Entry, error) {
	if i < 0 || i >= len(fm.entries) {
		return Entry{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(fm.entries))
	}
	return fm.entries[i], nil
}

func (fm *FileManager) DirSorting() DirSorting { return fm.dirSorting }

// SetDirSorting changes the directory partition and re-lists.
func (fm *FileManager) SetDirSorting(d DirSorting) {
	fm.dirSorting = d
	fm.Update()
}

// CycleDirSorting advances Unsorted → Start → End → Unsorted and re-lists.
func (fm *FileManager) CycleDirSorting() {
	fm.SetDirSorting(fm.dirSorting.Next())
}

func (fm *FileManager) ShowHidden() bool { return fm.showHidden }

// SetShowHidden changes the hidden-file filter and re-lists.
func (fm *FileManager) SetShowHidden(show bool) {
	fm.showHidden = show
	fm.Update()
}

// ToggleHidden flips the hidden-file filter and re-lists.
func (fm *FileManager) ToggleHidden() {
	fm.SetShowHidden(!fm.showHidden)
}

// AddToSelection marks path. Selecting an already selected path is a no-op.
func (fm *FileManager) AddToSelection(path string) {
	fm.selection[path] = struct{}{}
}

// RemoveFromSelection unmarks path. Removing an absent path is a no-op.
func (fm *FileManager) RemoveFromSelection(path string) {
	delete(fm.selection, path)
}

// ToggleSelection flips the membership of path.
func (fm *FileManager) ToggleSelection(path string) {
	if fm.IsSelected(path) {
		fm.RemoveFromSelection(path)
	} else {
		fm.AddToSelection(path)
	}
}

func (fm *FileManager) ClearSelection() {
	clear(fm.selection)
}

func (fm *FileManager) IsSelected(path string) bool {
	_, ok := fm.selection[path]
	return ok
}

// Selection returns the selected paths in lexical order.
func (fm *FileManager) Selection() []string {
	paths := make([]string, 0, len(fm.selection))
	for p := range fm.selection {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (fm *FileManager) SelectionLen() int { return len(fm.selection) }

// Paste copies every selected path into the current directory. Directories
// are copied recursively and nothing is ever overwritten. Failures are
// queued per item and the remaining items are still attempted. The
// selection is left untouched. It returns the number of items copied.
func (fm *FileManager) Paste() int {
	copied := 0
	for _, src := range fm.Selection() {
		if _, err := fileops.CopyInto(src, fm.currentDir); err != nil {
			fm.RecordError(&PasteError{Path: src, Dest: fm.currentDir, Err: err})
			continue
		}
		copied++
	}
	fm.Update()
	return copied
}

// DeleteSelection recursively removes every selected path. Removed paths
// leave the selection; failures are queued and stay selected. A selected
// path inside a directory removed earlier in the same pass goes with it
// and is dropped from the selection without being counted. It returns
// the number of paths removed.
func (fm *FileManager) DeleteSelection() int {
	removed := 0
	var gone []string
	for _, path := range fm.Selection() {
		if underAny(path, gone) {
			delete(fm.selection, path)
			continue
		}
		if err := fileops.Remove(path, fm.useTrash); err != nil {
			fm.RecordError(&DeletionError{Path: path, Err: err})
			continue
		}
		delete(fm.selection, path)
		gone = append(gone, path)
		removed++
	}
	fm.recoverCurrentDir()
	fm.Update()
	return removed
}

// underAny reports whether path lies strictly inside one of dirs.
func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// recoverCurrentDir climbs to the nearest existing ancestor when the
// current directory itself was removed.
func (fm *FileManager) recoverCurrentDir() {
	dir := fm.currentDir
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			fm.currentDir = dir
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// CreateFile creates an empty file named name in the current directory.
func (fm *FileManager) CreateFile(name string) bool {
	return fm.create(name, fileops.CreateFile)
}

// CreateDir creates a directory named name in the current directory.
func (fm *FileManager) CreateDir(name string) bool {
	return fm.create(name, fileops.CreateDir)
}

func (fm *FileManager) create(name string, mk func(dir, name string) error) bool {
	path := filepath.Join(fm.currentDir, name)
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		fm.RecordError(&CreateError{Path: path, Err: os.ErrInvalid})
		return false
	}
	if err := mk(fm.currentDir, name); err != nil {
		fm.RecordError(&CreateError{Path: path, Err: err})
		return false
	}
	fm.Update()
	return true
}

// RecordError queues err in the bounded error log and writes it to the
// log file. The oldest entry is dropped once the log is full.
func (fm *FileManager) RecordError(err error) {
	if err == nil {
		return
	}
	logger.Error("%v", err)
	fm.errorLog.Push(err.Error())
}

// UseTrash reports whether deletions go to the system trash.
func (fm *FileManager) UseTrash() bool { return fm.useTrash }

// ErrorLogCapacity is the number of failures the log retains.
func (fm *FileManager) ErrorLogCapacity() int { return fm.errorLog.Cap() }

// PendingErrors returns the queued errors without draining them.
func (fm *FileManager) PendingErrors() []string { return fm.errorLog.Items() }

// TakeErrors drains the errors queued since the last call.
func (fm *FileManager) TakeErrors() []string { return fm.errorLog.Drain() }
