// Package git reports the revision a schema manifest was read from, so
// generated templates can be traced back to a commit.
package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info holds the revision state of the repository containing a path.
type Info struct {
	// CommitHash is the current HEAD commit hash
	CommitHash string
	// Branch is the current branch name
	Branch string
	// Tags lists the tags pointing to the current commit
	Tags []string
	// IsDirty indicates if the working tree has uncommitted changes
	IsDirty bool
}

// ShortHash returns the abbreviated commit hash.
func (i *Info) ShortHash() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Inspect returns the revision state of the repository that path belongs to,
// seeking upwards for the .git directory. path may name a file.
func Inspect(path string) (*Info, error) {
	dir := path
	if filepath.Ext(path) != "" {
		dir = filepath.Dir(path)
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to find a Git repository that path %q belongs to: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree for repository %q: %w", path, err)
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD reference for repository %q: %w", path, err)
	}

	// Find all tags pointing to the current commit
	var tags []string
	tagRefs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	err = tagRefs.ForEach(func(ref *plumbing.Reference) error {
		revHash, err := repo.ResolveRevision(plumbing.Revision(ref.Name()))
		if err != nil {
			return fmt.Errorf("failed to get tag commit object for tag %q: %w", ref.Name().Short(), err)
		}
		if *revHash == headRef.Hash() {
			tags = append(tags, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over tags: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status for repository %q: %w", path, err)
	}

	return &Info{
		CommitHash: headRef.Hash().String(),
		Branch:     headRef.Name().Short(),
		Tags:       tags,
		IsDirty:    !status.IsClean(),
	}, nil
}

// Header renders a comment block identifying source at this revision.
//
//	# Generated from envschema.yaml
//	# Revision: 1a2b3c4 (main, v1.2.0, dirty)
func (i *Info) Header(source string) string {
	refs := []string{i.Branch}
	refs = append(refs, i.Tags...)
	if i.IsDirty {
		refs = append(refs, "dirty")
	}
	return fmt.Sprintf("# Generated from %s\n# Revision: %s (%s)\n", source, i.ShortHash(), strings.Join(refs, ", "))
}

// Stamp prefixes template with the revision header of the repository holding
// source. When source is not tracked by git only the source line is added.
func Stamp(template, source string) string {
	info, err := Inspect(source)
	if err != nil {
		return fmt.Sprintf("# Generated from %s\n", filepath.Base(source)) + template
	}
	return info.Header(filepath.Base(source)) + template
}
