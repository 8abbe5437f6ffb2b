package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch knowledge edits and auto-commit",
		Long:  `Watch the knowledge directory for document changes and automatically commit them to its history.`,
		RunE:  runWatch,
	}

	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")

	repo, err := internal.OpenKnowledgeRepo(cfg.Knowledge.Dir)
	if err != nil {
		return fmt.Errorf("open knowledge repo (run kotae init first): %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Knowledge.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Knowledge.Dir, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", cfg.Knowledge.Dir)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			if !pending {
				timer.Reset(debounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		case <-timer.C:
			pending = false
			commit, commitErr := repo.CommitAll(cmd.Context(), "auto: knowledge update")
			if errors.Is(commitErr, internal.ErrNoChanges) {
				continue
			}
			if commitErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "commit error: %v\n", commitErr)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", commit.Hash[:7], strings.TrimSpace(commit.Message))
		}
	}
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	if strings.Contains(event.Name, "/.git/") || strings.HasSuffix(event.Name, "/.git") {
		return true
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}

	return false
}
