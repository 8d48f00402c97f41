package git

import (
	"errors"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Library selects files with go-git, so no git binary is required.
type Library struct {
	Root string
}

func (l Library) open() (*gogit.Repository, error) {
	root, err := validateRoot(l.Root)
	if err != nil {
		return nil, err
	}
	return gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
}

func libraryTopLevel(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// ChangedFiles mirrors the CLI fallback chain: merge-base(base, HEAD) to
// HEAD, then HEAD~1 to the working tree, then the staged set.
func (l Library) ChangedFiles(base string) ([]string, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	if base != "" {
		if files, err := sinceMergeBase(repo, base); err == nil && len(files) > 0 {
			return files, nil
		}
	}
	if files, err := sinceParent(repo); err == nil && len(files) > 0 {
		return files, nil
	}
	return staged(repo)
}

// TrackedFiles lists index entries in path order.
func (l Library) TrackedFiles() ([]string, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		files = append(files, e.Name)
	}
	return sortedUnique(files), nil
}

func commitAt(repo *gogit.Repository, rev string) (*object.Commit, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	return repo.CommitObject(*h)
}

func sinceMergeBase(repo *gogit.Repository, base string) ([]string, error) {
	head, err := commitAt(repo, "HEAD")
	if err != nil {
		return nil, err
	}
	other, err := commitAt(repo, base)
	if err != nil {
		return nil, err
	}
	bases, err := other.MergeBase(head)
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return nil, errors.New("no merge base")
	}
	return treeDiff(bases[0], head)
}

func sinceParent(repo *gogit.Repository) ([]string, error) {
	head, err := commitAt(repo, "HEAD")
	if err != nil {
		return nil, err
	}
	parent, err := commitAt(repo, "HEAD~1")
	if err != nil {
		return nil, err
	}
	files, err := treeDiff(parent, head)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return sortedUnique(files), nil
	}
	st, err := wt.Status()
	if err != nil {
		return sortedUnique(files), nil
	}
	for path, fs := range st {
		if fs.Worktree == gogit.Untracked {
			continue
		}
		if fs.Worktree != gogit.Unmodified || fs.Staging != gogit.Unmodified {
			files = append(files, path)
		}
	}
	return sortedUnique(files), nil
}

func staged(repo *gogit.Repository) ([]string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, err
	}
	var files []string
	for path, fs := range st {
		if fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			files = append(files, path)
		}
	}
	return sortedUnique(files), nil
}

func treeDiff(from, to *object.Commit) ([]string, error) {
	a, err := from.Tree()
	if err != nil {
		return nil, err
	}
	b, err := to.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(a, b)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(changes))
	for _, c := range changes {
		name := c.To.Name
		if name == "" {
			name = c.From.Name
		}
		files = append(files, name)
	}
	return sortedUnique(files), nil
}

func sortedUnique(in []string) []string {
	sort.Strings(in)
	var out []string
	for _, s := range in {
		if len(out) == 0 || out[len(out)-1] != s {
			out = append(out, s)
		}
	}
	return out
}
