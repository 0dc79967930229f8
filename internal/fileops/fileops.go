package fileops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrDestinationExists is returned when a copy would overwrite an existing path.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrCopyIntoSelf is returned when a directory would be copied into its own subtree.
	ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")
	// ErrTrashUnavailable is returned when no trash command can be found.
	ErrTrashUnavailable = errors.New("trash command not available (install trash-cli or gvfs)")
)

// MoveToTrash moves a file or directory to the system trash/recycle bin
func MoveToTrash(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	name, args, err := trashCommand(runtime.GOOS, path, info.IsDir(), commandExists)
	if err != nil {
		return err
	}
	if out, err := exec.Command(name, args...).CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// trashCommand builds the command line that trashes path. The path is
// always passed as its own argument or as an escaped string literal,
// never spliced into script text unquoted.
func trashCommand(goos, path string, isDir bool, have func(string) bool) (string, []string, error) {
	switch goos {
	case "darwin":
		return "osascript", []string{
			"-e", "on run argv",
			"-e", `tell application "Finder" to delete POSIX file (item 1 of argv)`,
			"-e", "end run",
			path,
		}, nil

	case "windows":
		method := "DeleteFile"
		if isDir {
			method = "DeleteDirectory"
		}
		quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
		script := fmt.Sprintf(
			"Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::%s(%s, 'OnlyErrorDialogs', 'SendToRecycleBin')",
			method, quoted)
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil

	default:
		if have("gio") {
			return "gio", []string{"trash", "--", path}, nil
		}
		if have("trash-put") {
			return "trash-put", []string{"--", path}, nil
		}
		return "", nil, ErrTrashUnavailable
	}
}

// Remove deletes path recursively. With useTrash set the path is moved to
// the system trash instead, and a trash failure is returned without
// falling back to permanent removal. A path that no longer exists is an
// error rather than a silent no-op.
func Remove(path string, useTrash bool) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	if useTrash {
		if err := MoveToTrash(path); err != nil {
			return fmt.Errorf("move to trash: %w", err)
		}
		return nil
	}
	return os.RemoveAll(path)
}

// CreateFile creates a new empty file. It fails if the name is taken.
func CreateFile(dir, name string) error {
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// CreateDir creates a new directory
func CreateDir(dir, name string) error {
	return os.Mkdir(filepath.Join(dir, name), 0755)
}

// CopyInto copies src into destDir under its own base name and returns the
// destination path. Existing destinations are never overwritten.
func CopyInto(src, destDir string) (string, error) {
	dst := filepath.Join(destDir, filepath.Base(src))
	return dst, CopyFileOrDir(src, dst)
}

// CopyFileOrDir copies a file, symlink or directory tree from src to dst.
func CopyFileOrDir(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	switch {
	case srcInfo.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst)
	case srcInfo.IsDir():
		if isWithin(dst, src) {
			return ErrCopyIntoSelf
		}
		return copyDir(src, dst)
	default:
		return copyFile(src, dst)
	}
}

// copyFile copies a single file, keeping its permission bits
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	return os.Symlink(target, dst)
}

// copyDir copies a directory recursively
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.Mkdir(dst, srcInfo.Mode().Perm()|0700); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := CopyFileOrDir(srcPath, dstPath); err != nil {
			return err
		}
	}

	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// isWithin reports whether path equals root or lies below it.
func isWithin(path, root string) bool {
	absPath, err1 := filepath.Abs(path)
	absRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		return false
	}
	if absPath == absRoot {
		return true
	}
	return strings.HasPrefix(absPath, absRoot+string(filepath.Separator))
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
