package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold config and knowledge directory",
		Long:  `Write a default config file, create the knowledge directory, and put it under version control.`,
		RunE:  runInit,
	}

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = internal.DefaultConfigFile
	}

	cfg := internal.DefaultConfig()
	if dir, _ := cmd.Flags().GetString("knowledge"); dir != "" {
		cfg.Knowledge.Dir = dir
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}

	if err := internal.SaveConfig(path, cfg); err != nil {
		return err
	}

	if err := internal.InitKnowledgeRepo(cfg.Knowledge.Dir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", path)
	fmt.Fprintf(out, "Initialized knowledge directory %s\n", cfg.Knowledge.Dir)
	return nil
}
