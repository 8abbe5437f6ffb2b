package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoDir(t *testing.T) (string, *KnowledgeRepo) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hours.yaml"), []byte("營業時間:\n  平日: 09:00-18:00\n"), 0644))
	require.NoError(t, InitKnowledgeRepo(dir))

	repo, err := OpenKnowledgeRepo(dir)
	require.NoError(t, err)
	return dir, repo
}

func TestInitAndLog(t *testing.T) {
	_, repo := initRepoDir(t)

	commits, err := repo.Log(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Contains(t, commits[0].Message, "init")
}

func TestCommitAll(t *testing.T) {
	dir, repo := initRepoDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "store.yaml"), []byte("門市資訊:\n  地址: 台北市\n"), 0644))

	commit, err := repo.CommitAll(context.Background(), "add store info")
	require.NoError(t, err)
	assert.Equal(t, "add store info", commit.Message)
	assert.NotEmpty(t, commit.Hash)

	commits, err := repo.Log(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, commits, 2)
}

func TestCommitAllClean(t *testing.T) {
	_, repo := initRepoDir(t)

	_, err := repo.CommitAll(context.Background(), "nothing")
	assert.True(t, errors.Is(err, ErrNoChanges))
}

func TestLogLimit(t *testing.T) {
	dir, repo := initRepoDir(t)

	for i, name := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("T:\n  f: v\n"), 0644))
		_, err := repo.CommitAll(context.Background(), name)
		require.NoError(t, err, "commit %d", i)
	}

	commits, err := repo.Log(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, commits, 2)
	// newest first
	assert.Contains(t, commits[0].Message, "c.yaml")
}

func TestDiffPendingChanges(t *testing.T) {
	dir, repo := initRepoDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "hours.yaml"), []byte("營業時間:\n  平日: 10:00-19:00\n"), 0644))

	diff, err := repo.Diff(context.Background())
	require.NoError(t, err)
	assert.Contains(t, diff, "hours.yaml")
	assert.Contains(t, diff, "10:00")
}

func TestDiffClean(t *testing.T) {
	_, repo := initRepoDir(t)

	diff, err := repo.Diff(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestOpenMissingRepo(t *testing.T) {
	_, err := OpenKnowledgeRepo(t.TempDir())
	assert.Error(t, err)
}
