package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kotae",
		Short:         "Knowledge-base chat responder with LLM fallback",
		Long:          `Answers user utterances from curated topic documents and falls back to a chat completion service with per-user conversation memory.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	addSubcommands(rootCmd)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file path (default kotae.yaml)")
	cmd.PersistentFlags().String("knowledge", "", "Knowledge directory (overrides config)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command) {
	root.AddCommand(
		NewInitCmd(),
		NewRespondCmd(),
		NewChatCmd(),
		NewTopicsCmd(),
		NewWatchCmd(),
		NewLogCmd(),
		NewDiffCmd(),
	)
}
