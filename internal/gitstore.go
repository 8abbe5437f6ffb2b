package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	DefaultAuthor = "kotae"
	DefaultEmail  = "kotae@local"
)

var ErrNoChanges = errors.New("no changes to commit")

// Commit is one recorded revision of the knowledge directory.
type Commit struct {
	Hash      string
	Message   string
	Timestamp time.Time
}

// KnowledgeRepo versions the knowledge directory with go-git. Topic
// documents are hand-edited; the repo gives editors history and an undo
// trail without leaving the tool.
type KnowledgeRepo struct {
	repo     *git.Repository
	worktree *git.Worktree
	dir      string
}

// InitKnowledgeRepo creates a git repository in the knowledge directory
// and commits whatever documents already exist.
func InitKnowledgeRepo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create knowledge directory: %w", err)
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage documents: %w", err)
	}

	_, err = worktree.Commit("init: version knowledge directory", &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  DefaultAuthor,
			Email: DefaultEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	return nil
}

func OpenKnowledgeRepo(dir string) (*KnowledgeRepo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	return &KnowledgeRepo{
		repo:     repo,
		worktree: worktree,
		dir:      dir,
	}, nil
}

// CommitAll stages every change under the directory and commits it.
// Returns ErrNoChanges when the worktree is clean.
func (r *KnowledgeRepo) CommitAll(ctx context.Context, message string) (*Commit, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return nil, ErrNoChanges
	}

	if err := r.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("stage changes: %w", err)
	}

	hash, err := r.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  DefaultAuthor,
			Email: DefaultEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}

	return &Commit{
		Hash:      commit.Hash.String(),
		Message:   commit.Message,
		Timestamp: commit.Author.When,
	}, nil
}

func (r *KnowledgeRepo) Log(ctx context.Context, limit int) ([]*Commit, error) {
	iter, err := r.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []*Commit
	count := 0

	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && count >= limit {
			return io.EOF
		}
		commits = append(commits, &Commit{
			Hash:      c.Hash.String(),
			Message:   c.Message,
			Timestamp: c.Author.When,
		})
		count++
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}

	return commits, nil
}

// Diff renders pending worktree changes against HEAD, one character-level
// diff per touched document.
func (r *KnowledgeRepo) Diff(ctx context.Context) (string, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return "", fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("get HEAD commit: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return "", fmt.Errorf("get HEAD tree: %w", err)
	}

	dmp := diffmatchpatch.New()
	var buf strings.Builder

	for path, s := range status {
		old, _ := headFileContents(headTree, path)
		current := ""
		if s.Worktree != git.Deleted && s.Staging != git.Deleted {
			data, readErr := os.ReadFile(filepath.Join(r.dir, path))
			if readErr == nil {
				current = string(data)
			}
		}
		if old == current {
			continue
		}

		diffs := dmp.DiffMain(old, current, false)
		fmt.Fprintf(&buf, "=== %s\n%s\n", path, dmp.DiffPrettyText(diffs))
	}

	return buf.String(), nil
}

func headFileContents(tree *object.Tree, path string) (string, error) {
	f, err := tree.File(path)
	if err != nil {
		return "", err
	}
	return f.Contents()
}
