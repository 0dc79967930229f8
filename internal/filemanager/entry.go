package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// HiddenPrefix marks dotfiles.
const HiddenPrefix = "."

// Entry is one row of a directory listing.
type Entry struct {
	Name     string
	Path     string // absolute
	Size     int64
	IsDir    bool
	Symlink  bool
	Readable bool // metadata was available and at least one read bit is set
}

// DirSorting controls where directories are placed relative to files.
type DirSorting int

const (
	Unsorted DirSorting = iota // filesystem enumeration order
	Start                      // directories before files
	End                        // directories after files
)

// Next returns the following mode in the Unsorted → Start → End cycle.
func (d DirSorting) Next() DirSorting {
	switch d {
	case Unsorted:
		return Start
	case Start:
		return End
	default:
		return Unsorted
	}
}

func (d DirSorting) String() string {
	switch d {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unsorted"
	}
}

// Label is the human readable description shown in the UI.
func (d DirSorting) Label() string {
	switch d {
	case Start:
		return "Directories first"
	case End:
		return "Directories last"
	default:
		return "Unsorted"
	}
}

// ParseDirSorting maps "unsorted", "start" and "end" to a DirSorting.
func ParseDirSorting(s string) (DirSorting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unsorted", "none":
		return Unsorted, nil
	case "start", "first":
		return Start, nil
	case "end", "last":
		return End, nil
	}
	return Unsorted, fmt.Errorf("unknown dir sorting %q (want unsorted, start or end)", s)
}

// readEntries lists dir in raw enumeration order. A partial listing is
// returned together with the error when enumeration stops midway.
// Per-entry stat failures are returned in statErrs.
func readEntries(dir string) (entries []Entry, statErrs []error, err error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	for _, d := range dirents {
		path := filepath.Join(dir, d.Name())
		info, infoErr := d.Info()
		if infoErr != nil {
			statErrs = append(statErrs, &ListingError{Path: path, Err: infoErr})
			entries = append(entries, Entry{Name: d.Name(), Path: path, IsDir: d.IsDir()})
			continue
		}

		entry := Entry{
			Name:     d.Name(),
			Path:     path,
			Size:     info.Size(),
			IsDir:    info.IsDir(),
			Readable: info.Mode().Perm()&0444 != 0,
		}

		// Follow symlinks so links to directories behave like directories.
		if info.Mode()&os.ModeSymlink != 0 {
			entry.Symlink = true
			if target, statErr := os.Stat(path); statErr == nil {
				entry.IsDir = target.IsDir()
				entry.Size = target.Size()
				entry.Readable = target.Mode().Perm()&0444 != 0
			} else {
				entry.Readable = false
			}
		}

		entries = append(entries, entry)
	}

	return entries, statErrs, err
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid hide pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func isHidden(name string, patterns []glob.Glob) bool {
	if strings.HasPrefix(name, HiddenPrefix) {
		return true
	}
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// filterAndSort drops hidden entries (unless showHidden) and applies the
// directory partition. Unsorted keeps the enumeration order; Start and End
// are stable so relative order inside each partition is preserved.
func filterAndSort(entries []Entry, showHidden bool, patterns []glob.Glob, sorting DirSorting) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !showHidden && isHidden(e.Name, patterns) {
			continue
		}
		out = append(out, e)
	}

	switch sorting {
	case Start:
		slices.SortStableFunc(out, func(a, b Entry) int { return rank(a.IsDir) - rank(b.IsDir) })
	case End:
		slices.SortStableFunc(out, func(a, b Entry) int { return rank(b.IsDir) - rank(a.IsDir) })
	}
	return out
}

func rank(isDir bool) int {
	if isDir {
		return 0
	}
	return 1
}
