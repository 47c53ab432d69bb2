// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/manyagarg23/HackathonTwin/pkg/logging"
)

var logDir string

var rootCmd = &cobra.Command{
	Use:   "hackathon-agent",
	Short: "Terminal chat with the hackathon planning agent",
	Long: `hackathon-agent runs the hackathon planning assistant in the terminal.

Type your hackathon details turn by turn. Reserved words:
  summary            print the collected configuration so far
  quit, exit, bye    end the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(logging.Config{LogDir: logDir, Service: "cli"})
		defer logger.Close()
		return runChat(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&logDir, "log-dir", "", "directory for JSON log files (default: no file logging)")
}

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded configuration from .env")
	}
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
