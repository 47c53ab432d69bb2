// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package agent implements the scripted conversational agent that collects
// hackathon configuration details, plus the in-memory session store.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// contextWindow is how many of the most recent exchanges are included in the
// prompt. Older turns stay stored for summaries but are excluded from the
// live context.
const contextWindow = 3

const systemPrompt = `You are a friendly AI assistant helping clients set up their hackathon. Your goal is to collect all the important details about their hackathon in a conversational way.

You need to gather the following information:

ESSENTIAL DETAILS:
- Hackathon name
- Theme/description
- Start date and end date
- Duration (how many hours/days)
- Type: Virtual, In-person, or Hybrid
- Expected number of participants
- Target audience (students, professionals, beginners, etc.)
- Organizer name and contact information

ADDITIONAL DETAILS (ask about these naturally during conversation):
- Registration deadline
- Team size limits
- Prizes and awards
- Key events/schedule highlights
- Judging criteria
- Required skills or technologies
- Sponsors (if any)
- Special features (mentorship, workshops, etc.)

CONVERSATION GUIDELINES:
- Start with a warm welcome and brief explanation of what you're helping with
- Ask questions naturally, 1-3 related questions at a time
- Be conversational and encouraging
- Show enthusiasm about their hackathon
- Summarize information back to confirm understanding
- When you have most essential details, offer to create a summary
- Don't overwhelm with too many questions at once

Remember: You're helping them plan an amazing hackathon! Be supportive and excited about their event.`

const summaryPrompt = `Based on our conversation, please create a well-organized summary of the hackathon details we've discussed.

Format it clearly with sections like:
- Basic Information
- Event Details
- Participation
- Additional Features

If any important details are missing, mention what else we might need to know.`

// Exchange is one user/agent turn pair.
type Exchange struct {
	User  string `json:"user"`
	Agent string `json:"agent"`
}

// Agent holds the full conversation history for one session. Methods are
// safe for concurrent use; calls to the same agent serialize.
type Agent struct {
	mu      sync.Mutex
	client  llm.Client
	history []Exchange
}

func New(client llm.Client) *Agent {
	return &Agent{client: client}
}

// Chat sends the user input together with the recent context window,
// appends the exchange to history and returns the reply.
func (a *Agent) Chat(ctx context.Context, input string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chatLocked(ctx, input)
}

func (a *Agent) chatLocked(ctx context.Context, input string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nConversation so far:\n%s\n\nUser: %s",
		systemPrompt, a.recentHistory(), input)

	reply, err := a.client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	a.history = append(a.history, Exchange{User: input, Agent: reply})
	return reply, nil
}

// recentHistory formats the last contextWindow exchanges for the prompt.
func (a *Agent) recentHistory() string {
	start := 0
	if len(a.history) > contextWindow {
		start = len(a.history) - contextWindow
	}
	var b strings.Builder
	for _, ex := range a.history[start:] {
		fmt.Fprintf(&b, "User: %s\nAgent: %s\n", ex.User, ex.Agent)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// WelcomeMessage produces the opening greeting as a regular chat turn.
func (a *Agent) WelcomeMessage(ctx context.Context) (string, error) {
	return a.Chat(ctx, "Hi there! I'm ready to help you set up your hackathon.")
}

// Summary asks the agent for an organized summary of the collected details.
// The summary request and its answer are appended to history like any other
// exchange.
func (a *Agent) Summary(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.history) == 0 {
		return "No hackathon details collected yet.", nil
	}
	return a.chatLocked(ctx, summaryPrompt)
}

// HistoryLen reports the number of stored exchanges.
func (a *Agent) HistoryLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.history)
}
