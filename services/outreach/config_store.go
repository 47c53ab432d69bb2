// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import "sync"

// ConfigStore holds the current SMTP credentials set through the API.
// Campaigns read an immutable snapshot at call time, so a concurrent
// reconfigure never observes a half-updated credential set.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg SMTPConfig
}

func NewConfigStore(base SMTPConfig) *ConfigStore {
	return &ConfigStore{cfg: base}
}

// SetCredentials replaces the stored credentials.
func (s *ConfigStore) SetCredentials(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = s.cfg.WithCredentials(email, password)
}

// Snapshot returns a copy of the current configuration.
func (s *ConfigStore) Snapshot() SMTPConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}
