// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package agent

import (
	"container/list"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// ErrSessionNotFound is returned for lookups of unknown session identifiers.
var ErrSessionNotFound = errors.New("session not found")

const (
	// DefaultMaxSessions caps the store; the least recently used session is
	// evicted when the cap is reached.
	DefaultMaxSessions = 256

	// DefaultIdleTTL evicts sessions untouched for this long.
	DefaultIdleTTL = 2 * time.Hour
)

// Store maps session identifiers to agents. Unlike a plain map it is
// thread-safe and bounded: LRU eviction at capacity plus a periodic sweep of
// idle sessions.
type Store struct {
	mu       sync.Mutex
	client   llm.Client
	capacity int
	idleTTL  time.Duration

	items map[string]*list.Element
	order *list.List // front = most recently used

	stopSweep chan struct{}
	sweepOnce sync.Once
}

type storeEntry struct {
	id       string
	agent    *Agent
	lastUsed time.Time
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithCapacity overrides the maximum session count.
func WithCapacity(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithIdleTTL overrides the idle expiry.
func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.idleTTL = d
		}
	}
}

// NewStore creates a bounded session store backed by the given LLM client.
func NewStore(client llm.Client, opts ...StoreOption) *Store {
	s := &Store{
		client:    client,
		capacity:  DefaultMaxSessions,
		idleTTL:   DefaultIdleTTL,
		items:     make(map[string]*list.Element),
		order:     list.New(),
		stopSweep: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSweeper launches the background idle-session sweep. Call StopSweeper
// on shutdown.
func (s *Store) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				evicted := s.sweepIdle(time.Now())
				if evicted > 0 {
					slog.Info("Swept idle chat sessions", "evicted", evicted)
				}
			case <-s.stopSweep:
				return
			}
		}
	}()
}

// StopSweeper terminates the background sweep. Safe to call multiple times.
func (s *Store) StopSweeper() {
	s.sweepOnce.Do(func() { close(s.stopSweep) })
}

// New creates a fresh session and returns its identifier and agent.
func (s *Store) New() (string, *Agent) {
	id := uuid.New().String()
	a := New(s.client)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(id, a)
	slog.Info("Created chat session", "session_id", id, "active", s.order.Len())
	return id, a
}

// Get returns the agent for an existing session, refreshing its recency.
func (s *Store) Get(id string) (*Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry := elem.Value.(*storeEntry)
	entry.lastUsed = time.Now()
	s.order.MoveToFront(elem)
	return entry.agent, nil
}

// GetOrCreate returns the agent for id, or a fresh session when id is empty
// or unknown. The returned identifier is the one actually in use.
func (s *Store) GetOrCreate(id string) (string, *Agent) {
	if id != "" {
		if a, err := s.Get(id); err == nil {
			return id, a
		}
	}
	return s.New()
}

// Delete removes a session if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.items[id]; ok {
		s.order.Remove(elem)
		delete(s.items, id)
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *Store) insertLocked(id string, a *Agent) {
	for s.order.Len() >= s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*storeEntry)
		s.order.Remove(oldest)
		delete(s.items, evicted.id)
		slog.Warn("Evicted least recently used chat session", "session_id", evicted.id)
	}
	s.items[id] = s.order.PushFront(&storeEntry{id: id, agent: a, lastUsed: time.Now()})
}

func (s *Store) sweepIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for elem := s.order.Back(); elem != nil; {
		entry := elem.Value.(*storeEntry)
		if now.Sub(entry.lastUsed) < s.idleTTL {
			break // list is recency ordered, the rest are fresher
		}
		prev := elem.Prev()
		s.order.Remove(elem)
		delete(s.items, entry.id)
		evicted++
		elem = prev
	}
	return evicted
}
