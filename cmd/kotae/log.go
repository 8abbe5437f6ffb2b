package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show knowledge directory history",
		RunE:  runLog,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum commits to show")
	return cmd
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	repo, err := internal.OpenKnowledgeRepo(cfg.Knowledge.Dir)
	if err != nil {
		return fmt.Errorf("open knowledge repo (run kotae init first): %w", err)
	}

	commits, err := repo.Log(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("get log: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(commits)
	}

	for _, c := range commits {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
			c.Hash[:7], c.Timestamp.Format("2006-01-02 15:04"), strings.TrimSpace(c.Message))
	}
	return nil
}
