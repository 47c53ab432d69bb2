// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"sync"
)

// MockClient is a scriptable LLM client for tests.
//
// Responses are returned in queue order; when the queue is exhausted the
// default response is returned. Safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	responses       []string
	defaultResponse string
	errorToReturn   error

	// responseFunc, when set, takes precedence over the queue.
	responseFunc func(prompt string) (string, error)

	// prompts records every prompt passed to Generate.
	prompts []string
}

func NewMockClient() *MockClient {
	return &MockClient{defaultResponse: "mock response"}
}

// QueueResponse appends a response to be returned by a future Generate call.
func (m *MockClient) QueueResponse(resp string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	return m
}

// WithDefaultResponse sets the response used once the queue is empty.
func (m *MockClient) WithDefaultResponse(resp string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResponse = resp
	return m
}

// WithError makes every Generate call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorToReturn = err
	return m
}

// WithResponseFunc generates responses dynamically from the prompt.
func (m *MockClient) WithResponseFunc(fn func(prompt string) (string, error)) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseFunc = fn
	return m
}

// Prompts returns a copy of all prompts seen so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns how many times Generate has been invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Generate implements the Client interface.
func (m *MockClient) Generate(_ context.Context, prompt string, _ GenerationParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)

	if m.errorToReturn != nil {
		return "", m.errorToReturn
	}
	if m.responseFunc != nil {
		return m.responseFunc(prompt)
	}
	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		return resp, nil
	}
	return m.defaultResponse, nil
}

var _ Client = (*MockClient)(nil)
