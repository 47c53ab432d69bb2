// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"context"
	"time"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// TimedClient wraps an LLM client and records round-trip latency under the
// given operation label. Failed calls are timed too.
type TimedClient struct {
	inner     llm.Client
	operation string
}

func NewTimedClient(inner llm.Client, operation string) *TimedClient {
	return &TimedClient{inner: inner, operation: operation}
}

func (c *TimedClient) Generate(ctx context.Context, prompt string, params llm.GenerationParams) (string, error) {
	start := time.Now()
	resp, err := c.inner.Generate(ctx, prompt, params)
	if DefaultMetrics != nil {
		DefaultMetrics.LLMDurationSeconds.WithLabelValues(c.operation).
			Observe(time.Since(start).Seconds())
	}
	return resp, err
}

var _ llm.Client = (*TimedClient)(nil)
