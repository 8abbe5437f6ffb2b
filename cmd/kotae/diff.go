package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show uncommitted knowledge changes",
		RunE:  runDiff,
	}

	return cmd
}

func runDiff(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repo, err := internal.OpenKnowledgeRepo(cfg.Knowledge.Dir)
	if err != nil {
		return fmt.Errorf("open knowledge repo (run kotae init first): %w", err)
	}

	diff, err := repo.Diff(cmd.Context())
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}

	if diff == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending changes")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), diff)
	return nil
}
