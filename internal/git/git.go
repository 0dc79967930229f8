package git

import (
	"os/exec"
	"strings"
)

// Branch returns the checked-out branch of the repository containing dir,
// or "" when dir is not inside a git work tree or git is unavailable.
func Branch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// BranchCache remembers the branch of the last directory asked about so a
// redraw does not spawn git again until the directory changes.
type BranchCache struct {
	dir    string
	branch string
	valid  bool
	lookup func(string) string
}

// NewBranchCache returns a cache backed by Branch.
func NewBranchCache() *BranchCache {
	return &BranchCache{lookup: Branch}
}

// Get returns the branch for dir, consulting git only when dir differs
// from the previous call.
func (c *BranchCache) Get(dir string) string {
	if c.valid && c.dir == dir {
		return c.branch
	}
	c.dir = dir
	c.branch = c.lookup(dir)
	c.valid = true
	return c.branch
}

// Invalidate forces the next Get to ask git again.
func (c *BranchCache) Invalidate() { c.valid = false }
