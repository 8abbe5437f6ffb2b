package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

func NewTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List loaded topics",
		Long:  `Load the knowledge directory, list every merged topic with its keyword and field counts, and report documents that failed to load.`,
		RunE:  runTopics,
	}

	return cmd
}

func runTopics(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loader := internal.NewLoader(osfs.New(cfg.Knowledge.Dir), ".", logger)
	kb, report := loader.Load()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputTopicsJSON(cmd, kb, report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d documents, %d topics\n", report.Files, kb.Len())
	for _, t := range kb.Topics() {
		fmt.Fprintf(out, "  %s  (%d keywords, %d fields)\n",
			t.Name, len(t.Entry.Keywords.Flatten()), len(t.Entry.Fields))
	}

	if len(report.Failures) > 0 {
		fmt.Fprintln(out, "\nSkipped documents:")
		for _, f := range report.Failures {
			fmt.Fprintf(out, "  %s: %v\n", f.File, f.Err)
		}
	}

	return nil
}

func outputTopicsJSON(cmd *cobra.Command, kb *internal.KnowledgeBase, report *internal.LoadReport) error {
	type topicInfo struct {
		Name     string `json:"name"`
		Keywords int    `json:"keywords"`
		Fields   int    `json:"fields"`
	}
	type failureInfo struct {
		File  string `json:"file"`
		Error string `json:"error"`
	}

	topics := make([]topicInfo, 0, kb.Len())
	for _, t := range kb.Topics() {
		topics = append(topics, topicInfo{
			Name:     t.Name,
			Keywords: len(t.Entry.Keywords.Flatten()),
			Fields:   len(t.Entry.Fields),
		})
	}
	failures := make([]failureInfo, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, failureInfo{File: f.File, Error: f.Err.Error()})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"documents": report.Files,
		"topics":    topics,
		"failures":  failures,
	})
}
