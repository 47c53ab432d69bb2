// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/manyagarg23/HackathonTwin/pkg/logging"
	"github.com/manyagarg23/HackathonTwin/services/agent"
	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// runChat drives a line-oriented conversation with the planning agent until
// the user types a quit word or the input stream ends.
func runChat(in io.Reader, out io.Writer, logger *logging.Logger) error {
	ctx := context.Background()

	client, err := llm.NewFromEnv()
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	a := agent.New(client)

	welcome, err := a.WelcomeMessage(ctx)
	if err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}
	fmt.Fprintf(out, "\nAgent: %s\n", welcome)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Fprintln(out, "\nAgent: Good luck with your hackathon!")
			logger.Info("chat session ended", "turns", a.HistoryLen())
			return scanner.Err()
		case "summary":
			summary, err := a.Summary(ctx)
			if err != nil {
				logger.Error("summary failed", "error", err)
				fmt.Fprintf(out, "\nAgent: Sorry, I could not build a summary right now (%v).\n", err)
				continue
			}
			fmt.Fprintf(out, "\nAgent: %s\n", summary)
		default:
			reply, err := a.Chat(ctx, input)
			if err != nil {
				logger.Error("chat turn failed", "error", err)
				fmt.Fprintf(out, "\nAgent: Sorry, something went wrong (%v). Try again.\n", err)
				continue
			}
			fmt.Fprintf(out, "\nAgent: %s\n", reply)
		}
	}
	logger.Info("chat session ended", "turns", a.HistoryLen())
	return scanner.Err()
}
