// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

func TestChatAppendsHistory(t *testing.T) {
	mock := llm.NewMockClient().WithDefaultResponse("Sounds great!")
	a := New(mock)

	reply, err := a.Chat(context.Background(), "We want a 48-hour AI hackathon")
	require.NoError(t, err)
	assert.Equal(t, "Sounds great!", reply)
	assert.Equal(t, 1, a.HistoryLen())
}

func TestChatErrorLeavesHistoryUntouched(t *testing.T) {
	mock := llm.NewMockClient().WithError(errors.New("backend down"))
	a := New(mock)

	_, err := a.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 0, a.HistoryLen())
}

func TestChatPromptCarriesRecentWindow(t *testing.T) {
	mock := llm.NewMockClient().WithResponseFunc(func(prompt string) (string, error) {
		return "ok", nil
	})
	a := New(mock)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := a.Chat(ctx, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	prompts := mock.Prompts()
	last := prompts[len(prompts)-1]

	// Only the most recent three exchanges appear as context; older turns
	// stay in stored history but drop out of the prompt.
	assert.Contains(t, last, "User: turn 2")
	assert.Contains(t, last, "User: turn 3")
	assert.Contains(t, last, "User: turn 4")
	assert.NotContains(t, last, "User: turn 1\n")
	assert.Contains(t, last, "User: turn 5") // the current input line
	assert.Equal(t, 5, a.HistoryLen())
}

func TestChatPromptIncludesPersona(t *testing.T) {
	mock := llm.NewMockClient()
	a := New(mock)

	_, err := a.Chat(context.Background(), "hello")
	require.NoError(t, err)

	prompt := mock.Prompts()[0]
	assert.True(t, strings.HasPrefix(prompt, "You are a friendly AI assistant"))
	assert.Contains(t, prompt, "ESSENTIAL DETAILS")
}

func TestWelcomeMessageIsARegularTurn(t *testing.T) {
	mock := llm.NewMockClient().WithDefaultResponse("Welcome! Tell me about your event.")
	a := New(mock)

	msg, err := a.WelcomeMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Welcome! Tell me about your event.", msg)
	assert.Equal(t, 1, a.HistoryLen())
}

func TestSummaryEmptyHistory(t *testing.T) {
	mock := llm.NewMockClient()
	a := New(mock)

	summary, err := a.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No hackathon details collected yet.", summary)
	// No LLM call is made for an empty conversation.
	assert.Equal(t, 0, mock.CallCount())
}

func TestSummaryAppendsToHistory(t *testing.T) {
	mock := llm.NewMockClient().WithDefaultResponse("Basic Information: ...")
	a := New(mock)
	ctx := context.Background()

	_, err := a.Chat(ctx, "HackUMD, March 15-17, 300 students")
	require.NoError(t, err)

	summary, err := a.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basic Information: ...", summary)
	assert.Equal(t, 2, a.HistoryLen())

	prompts := mock.Prompts()
	assert.Contains(t, prompts[1], "well-organized summary")
	assert.Contains(t, prompts[1], "HackUMD")
}
