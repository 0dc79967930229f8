package filemanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager builds a FileManager over a fresh temp dir populated by
// setup. Paths inside tests are derived from fm.CurrentDir() because the
// temp dir may sit behind a symlink.
func newTestManager(t *testing.T, opts Options, setup func(dir string)) *FileManager {
	t.Helper()
	dir := t.TempDir()
	if setup != nil {
		setup(dir)
	}
	opts.StartDir = dir
	fm, err := New(opts)
	require.NoError(t, err)
	return fm
}

func mkfile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestListingScenario(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Start}, func(dir string) {
		mkfile(t, filepath.Join(dir, "a.txt"), "a")
		mkfile(t, filepath.Join(dir, ".hidden"), "h")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))
	})

	assert.Equal(t, []string{"subdir", "a.txt"}, names(fm.Entries()))
	assert.Equal(t, 2, fm.NumFiles())
}

func populateMixed(t *testing.T) func(dir string) {
	return func(dir string) {
		for i := 0; i < 4; i++ {
			mkfile(t, filepath.Join(dir, fmt.Sprintf("file%d.txt", i)), "x")
			require.NoError(t, os.Mkdir(filepath.Join(dir, fmt.Sprintf("dir%d", i)), 0755))
		}
	}
}

// rawOrder returns the unsorted enumeration order of dir.
func rawOrder(t *testing.T, dir string) []string {
	t.Helper()
	f, err := os.Open(dir)
	require.NoError(t, err)
	defer f.Close()
	dirents, err := f.ReadDir(-1)
	require.NoError(t, err)
	out := make([]string, 0, len(dirents))
	for _, d := range dirents {
		out = append(out, d.Name())
	}
	return out
}

func TestDirSortingStartPartitionsStably(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Start}, populateMixed(t))
	raw := rawOrder(t, fm.CurrentDir())

	var wantDirs, wantFiles []string
	for _, name := range raw {
		if info, _ := os.Stat(filepath.Join(fm.CurrentDir(), name)); info.IsDir() {
			wantDirs = append(wantDirs, name)
		} else {
			wantFiles = append(wantFiles, name)
		}
	}

	assert.Equal(t, append(wantDirs, wantFiles...), names(fm.Entries()))

	seenFile := false
	for _, e := range fm.Entries() {
		if !e.IsDir {
			seenFile = true
		}
		assert.False(t, seenFile && e.IsDir, "directory %s listed after a file", e.Name)
	}
}

func TestDirSortingEndPutsFilesFirst(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: End}, populateMixed(t))

	seenDir := false
	for _, e := range fm.Entries() {
		if e.IsDir {
			seenDir = true
		}
		assert.False(t, seenDir && !e.IsDir, "file %s listed after a directory", e.Name)
	}
	assert.Equal(t, 8, fm.NumFiles())
}

func TestDirSortingUnsortedKeepsEnumerationOrder(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Unsorted}, populateMixed(t))
	assert.Equal(t, rawOrder(t, fm.CurrentDir()), names(fm.Entries()))
}

func TestCycleDirSorting(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Unsorted}, nil)

	fm.CycleDirSorting()
	assert.Equal(t, Start, fm.DirSorting())
	fm.CycleDirSorting()
	assert.Equal(t, End, fm.DirSorting())
	fm.CycleDirSorting()
	assert.Equal(t, Unsorted, fm.DirSorting())
}

func TestParseDirSorting(t *testing.T) {
	tests := []struct {
		in      string
		want    DirSorting
		wantErr bool
	}{
		{"unsorted", Unsorted, false},
		{"start", Start, false},
		{"END", End, false},
		{" first ", Start, false},
		{"sideways", Unsorted, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirSorting(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHiddenToggleRoundTrip(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Start}, func(dir string) {
		mkfile(t, filepath.Join(dir, "visible.txt"), "v")
		mkfile(t, filepath.Join(dir, ".dotfile"), "d")
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".config"), 0755))
	})

	before := names(fm.Entries())
	assert.Equal(t, []string{"visible.txt"}, before)

	fm.ToggleHidden()
	assert.True(t, fm.ShowHidden())
	assert.ElementsMatch(t, []string{".config", ".dotfile", "visible.txt"}, names(fm.Entries()))
	assert.Equal(t, ".config", fm.Entries()[0].Name)

	fm.ToggleHidden()
	assert.Equal(t, before, names(fm.Entries()))
}

func TestHidePatterns(t *testing.T) {
	fm := newTestManager(t, Options{HidePatterns: []string{"*.pyc", "node_modules"}}, func(dir string) {
		mkfile(t, filepath.Join(dir, "main.py"), "")
		mkfile(t, filepath.Join(dir, "main.pyc"), "")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0755))
	})

	assert.Equal(t, []string{"main.py"}, names(fm.Entries()))

	fm.SetShowHidden(true)
	assert.Len(t, fm.Entries(), 3)
}

func TestInvalidHidePattern(t *testing.T) {
	_, err := New(Options{StartDir: t.TempDir(), HidePatterns: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestSelectionIndependentOfListing(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Start}, func(dir string) {
		mkfile(t, filepath.Join(dir, "f.txt"), "f")
		mkfile(t, filepath.Join(dir, ".secret"), "s")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "other"), 0755))
	})
	root := fm.CurrentDir()
	file := filepath.Join(root, "f.txt")
	secret := filepath.Join(root, ".secret")

	fm.AddToSelection(file)
	fm.AddToSelection(secret) // selected while not listed
	assert.True(t, fm.IsSelected(secret))

	require.True(t, fm.ChangeDir("other"))
	assert.True(t, fm.IsSelected(file))
	require.True(t, fm.ChangeDir(".."))
	assert.Equal(t, root, fm.CurrentDir())
	assert.True(t, fm.IsSelected(file))

	fm.CycleDirSorting()
	fm.ToggleHidden()
	fm.ToggleHidden()
	assert.True(t, fm.IsSelected(file))
	assert.True(t, fm.IsSelected(secret))
	assert.Equal(t, 2, fm.SelectionLen())

	// Idempotent add/remove
	fm.AddToSelection(file)
	assert.Equal(t, 2, fm.SelectionLen())
	fm.RemoveFromSelection(file)
	fm.RemoveFromSelection(file)
	assert.False(t, fm.IsSelected(file))

	fm.ToggleSelection(file)
	assert.True(t, fm.IsSelected(file))
	fm.ClearSelection()
	assert.Equal(t, 0, fm.SelectionLen())
}

func TestErrorLogKeepsMostRecent(t *testing.T) {
	fm := newTestManager(t, Options{ErrorLogCapacity: 3}, nil)
	root := fm.CurrentDir()

	var want []string
	for i := 0; i < 5; i++ {
		missing := filepath.Join(root, fmt.Sprintf("missing%d", i))
		assert.False(t, fm.ChangeDir(missing))
		want = append(want, missing)
	}

	pending := fm.PendingErrors()
	require.Len(t, pending, 3)
	for i, msg := range pending {
		assert.Contains(t, msg, want[i+2])
	}

	assert.Len(t, fm.TakeErrors(), 3)
	assert.Empty(t, fm.TakeErrors())
}

func TestChangeDirFailures(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "plain.txt"), "p")
	})
	root := fm.CurrentDir()

	assert.False(t, fm.ChangeDir("does-not-exist"))
	assert.Equal(t, root, fm.CurrentDir())

	assert.False(t, fm.ChangeDir("plain.txt"))
	assert.Equal(t, root, fm.CurrentDir())

	assert.False(t, fm.ChangeDir("   "))

	errs := fm.TakeErrors()
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "cannot open directory")
	assert.Contains(t, errs[1], ErrNotDirectory.Error())
}

func TestChangeDirPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	fm := newTestManager(t, Options{}, func(dir string) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "locked"), 0000))
	})
	t.Cleanup(func() { os.Chmod(filepath.Join(fm.CurrentDir(), "locked"), 0755) })

	assert.False(t, fm.ChangeDir("locked"))
	assert.Len(t, fm.TakeErrors(), 1)
}

func TestChangeDirFollowsSymlink(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0755))
		if err := os.Symlink("real", filepath.Join(dir, "link")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	})
	root := fm.CurrentDir()

	var link Entry
	for _, e := range fm.Entries() {
		if e.Name == "link" {
			link = e
		}
	}
	assert.True(t, link.Symlink)
	assert.True(t, link.IsDir)

	require.True(t, fm.ChangeDir("link"))
	assert.Equal(t, filepath.Join(root, "real"), fm.CurrentDir())
}

func TestGetEntryAtIndex(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "only.txt"), "12345")
	})

	e, err := fm.GetEntryAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "only.txt", e.Name)
	assert.Equal(t, filepath.Join(fm.CurrentDir(), "only.txt"), e.Path)
	assert.Equal(t, int64(5), e.Size)
	assert.True(t, e.Readable)

	_, err = fm.GetEntryAtIndex(1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = fm.GetEntryAtIndex(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestPasteScenario(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "F.txt"), "payload")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "D"), 0755))
	})
	src := filepath.Join(fm.CurrentDir(), "F.txt")

	fm.AddToSelection(src)
	require.True(t, fm.ChangeDir("D"))
	assert.Equal(t, 1, fm.Paste())

	got, err := os.ReadFile(filepath.Join(fm.CurrentDir(), "F.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	_, err = os.Stat(src)
	assert.NoError(t, err, "original must survive a paste")
	assert.True(t, fm.IsSelected(src), "paste does not clear the selection")
	assert.Equal(t, []string{"F.txt"}, names(fm.Entries()))
	assert.Empty(t, fm.TakeErrors())
}

func TestPasteDirectoryRecursive(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "tree", "a", "b.txt"), "deep")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "dest"), 0755))
	})
	fm.AddToSelection(filepath.Join(fm.CurrentDir(), "tree"))
	require.True(t, fm.ChangeDir("dest"))

	assert.Equal(t, 1, fm.Paste())
	got, err := os.ReadFile(filepath.Join(fm.CurrentDir(), "tree", "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(got))
}

func TestPasteCollisionContinues(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "one.txt"), "1")
		mkfile(t, filepath.Join(dir, "two.txt"), "2")
		mkfile(t, filepath.Join(dir, "dest", "one.txt"), "existing")
	})
	root := fm.CurrentDir()
	fm.AddToSelection(filepath.Join(root, "one.txt"))
	fm.AddToSelection(filepath.Join(root, "two.txt"))
	fm.AddToSelection(filepath.Join(root, "vanished.txt"))
	require.True(t, fm.ChangeDir("dest"))

	assert.Equal(t, 1, fm.Paste())

	kept, _ := os.ReadFile(filepath.Join(fm.CurrentDir(), "one.txt"))
	assert.Equal(t, "existing", string(kept), "paste must not overwrite")
	_, err := os.Stat(filepath.Join(fm.CurrentDir(), "two.txt"))
	assert.NoError(t, err)

	errs := fm.TakeErrors()
	require.Len(t, errs, 2)
	for _, msg := range errs {
		assert.Contains(t, msg, "cannot paste")
	}
}

func TestDeleteSelection(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "keep.txt"), "k")
		mkfile(t, filepath.Join(dir, "gone.txt"), "g")
		mkfile(t, filepath.Join(dir, "tree", "nested", "x.txt"), "x")
	})
	root := fm.CurrentDir()
	gone := filepath.Join(root, "gone.txt")
	tree := filepath.Join(root, "tree")
	missing := filepath.Join(root, "never-existed")

	fm.AddToSelection(gone)
	fm.AddToSelection(tree)
	fm.AddToSelection(missing)

	assert.Equal(t, 2, fm.DeleteSelection())

	_, err := os.Stat(gone)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(tree)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, []string{"keep.txt"}, names(fm.Entries()))

	assert.Equal(t, []string{missing}, fm.Selection(), "failed deletions stay selected")
	errs := fm.TakeErrors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "cannot delete")
}

func TestDeleteSelectionNestedPaths(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		mkfile(t, filepath.Join(dir, "tree", "x.txt"), "x")
		mkfile(t, filepath.Join(dir, "tree-b.txt"), "b")
	})
	root := fm.CurrentDir()
	tree := filepath.Join(root, "tree")
	sibling := filepath.Join(root, "tree-b.txt")

	fm.AddToSelection(tree)
	require.True(t, fm.ChangeDir("tree"))
	fm.AddToSelection(filepath.Join(tree, "x.txt"))
	require.True(t, fm.ChangeDir(".."))

	assert.Equal(t, 1, fm.DeleteSelection())
	assert.Empty(t, fm.Selection())
	assert.Empty(t, fm.TakeErrors())
	assert.NoDirExists(t, tree)
	assert.FileExists(t, sibling, "a name sharing the prefix is not inside the removed directory")
}

func TestDeleteSelectionReportsTrashFailure(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("gio is only consulted on Linux and BSD")
	}
	fm := newTestManager(t, Options{UseTrash: true}, func(dir string) {
		mkfile(t, filepath.Join(dir, "keep.txt"), "k")
	})
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "gio"), []byte("#!/bin/sh\nexit 1\n"), 0755))
	t.Setenv("PATH", bin)

	target := filepath.Join(fm.CurrentDir(), "keep.txt")
	fm.AddToSelection(target)

	assert.Zero(t, fm.DeleteSelection())
	assert.FileExists(t, target)
	assert.Equal(t, []string{target}, fm.Selection())
	errs := fm.TakeErrors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "move to trash")
}

func TestChangeDirKeepsSurroundingSpaces(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, " padded "), 0755))
	})
	root := fm.CurrentDir()

	require.True(t, fm.ChangeDir(" padded "))
	assert.Equal(t, filepath.Join(root, " padded "), fm.CurrentDir())

	require.True(t, fm.ChangeDir("..\n"))
	assert.Equal(t, root, fm.CurrentDir())
	assert.Empty(t, fm.TakeErrors())
}

func TestDeleteCurrentDirectoryClimbsUp(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))
	})
	root := fm.CurrentDir()
	require.True(t, fm.ChangeDir(filepath.Join("a", "b")))

	fm.AddToSelection(filepath.Join(root, "a"))
	assert.Equal(t, 1, fm.DeleteSelection())
	assert.Equal(t, root, fm.CurrentDir())
	assert.Empty(t, fm.TakeErrors())
}

func TestCreateFileAndDir(t *testing.T) {
	fm := newTestManager(t, Options{DirSorting: Start}, nil)

	assert.True(t, fm.CreateFile("notes.md"))
	assert.True(t, fm.CreateDir("docs"))
	assert.Equal(t, []string{"docs", "notes.md"}, names(fm.Entries()))

	assert.False(t, fm.CreateFile("notes.md"))
	assert.False(t, fm.CreateFile(filepath.Join("a", "b")))
	assert.False(t, fm.CreateDir(""))
	assert.Len(t, fm.TakeErrors(), 3)
}

func TestListingErrorWhenDirectoryVanishes(t *testing.T) {
	fm := newTestManager(t, Options{}, func(dir string) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tmp"), 0755))
		mkfile(t, filepath.Join(dir, "tmp", "f"), "")
	})
	require.True(t, fm.ChangeDir("tmp"))
	require.NoError(t, os.RemoveAll(fm.CurrentDir()))

	fm.Update()
	assert.Equal(t, 0, fm.NumFiles())
	assert.Empty(t, fm.Entries())
	errs := fm.TakeErrors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "cannot list")
}
