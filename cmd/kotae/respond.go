package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func NewRespondCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond <user-id> [text...]",
		Short: "Answer one utterance",
		Long:  `Answer a single user utterance. Reads the utterance from stdin when no text argument is given.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRespond,
	}

	return cmd
}

func runRespond(cmd *cobra.Command, args []string) error {
	userID := args[0]

	text := strings.Join(args[1:], " ")
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	reply := a.responder.Respond(cmd.Context(), userID, text)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(map[string]string{"user": userID, "reply": reply})
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
