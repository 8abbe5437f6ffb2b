package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <user-id>",
		Short: "Interactive chat session",
		Long:  `Run an interactive chat loop against the knowledge base and the completion service, keeping conversation memory across turns.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	userID := args[0]

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Chatting as", userID, "(ctrl-d to quit)")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if cmd.Context().Err() != nil {
			return nil
		}

		reply := a.responder.Respond(cmd.Context(), userID, text)
		fmt.Fprintln(out, reply)
	}

	return scanner.Err()
}
