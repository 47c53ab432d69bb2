// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rag

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// ErrIndexNotFound is returned when retrieval is attempted before any
// documents have been indexed.
var ErrIndexNotFound = errors.New("similarity index not found; upload documents first")

// currentGenKey points at the live index generation. Chunk records live
// under per-generation prefixes so a rebuild can stage a full replacement
// before readers see any of it.
var currentGenKey = []byte("meta/current_gen")

func genPrefix(gen uint64) []byte {
	return fmt.Appendf(nil, "gen/%d/chunk/", gen)
}

// currentGen reads the live generation inside txn; 0 means nothing was ever
// indexed.
func currentGen(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(currentGenKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var gen uint64
	err = item.Value(func(val []byte) error {
		g, perr := strconv.ParseUint(string(val), 10, 64)
		gen = g
		return perr
	})
	return gen, err
}

// Chunk is one embedded text window stored in the index.
type Chunk struct {
	ID      string    `json:"id"`
	Source  string    `json:"source"`
	Content string    `json:"content"`
	Vector  []float32 `json:"vector"`
}

// Match is a retrieved chunk with its similarity score.
type Match struct {
	Chunk Chunk
	Score float64
}

// Index is the on-disk similarity index, a badger database of embedded
// chunks searched by brute-force cosine similarity. Document sets here are
// small (one event's wiki), so a scan beats the operational cost of an
// external vector store.
type Index struct {
	db *badger.DB
}

// OpenIndex opens (creating if necessary) the index at path.
func OpenIndex(path string) (*Index, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open index at %s: %w", path, err)
	}
	return &Index{db: db}, nil
}

// OpenInMemoryIndex opens an index with no disk persistence, for tests.
func OpenInMemoryIndex() (*Index, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory index: %w", err)
	}
	return &Index{db: db}, nil
}

func (idx *Index) Close() error {
	return idx.db.Close()
}

// Rebuild replaces the index contents with the given chunks. The new chunk
// set is staged under a fresh generation and promoted only after it is fully
// written, so a failed rebuild leaves the previous index serving.
func (idx *Index) Rebuild(chunks []Chunk) error {
	var oldGen uint64
	if err := idx.db.View(func(txn *badger.Txn) error {
		g, err := currentGen(txn)
		oldGen = g
		return err
	}); err != nil {
		return fmt.Errorf("failed to read index generation: %w", err)
	}
	newGen := oldGen + 1
	prefix := genPrefix(newGen)

	wb := idx.db.NewWriteBatch()
	defer wb.Cancel()
	for _, chunk := range chunks {
		data, err := json.Marshal(chunk)
		if err != nil {
			return fmt.Errorf("failed to encode chunk %s: %w", chunk.ID, err)
		}
		key := append(append([]byte{}, prefix...), chunk.ID...)
		if err := wb.Set(key, data); err != nil {
			return fmt.Errorf("failed to write chunk %s: %w", chunk.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		idx.dropGeneration(newGen)
		return fmt.Errorf("failed to flush index batch: %w", err)
	}

	if err := idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set(currentGenKey, []byte(strconv.FormatUint(newGen, 10)))
	}); err != nil {
		idx.dropGeneration(newGen)
		return fmt.Errorf("failed to promote index generation: %w", err)
	}

	idx.dropGeneration(oldGen)
	return nil
}

// dropGeneration deletes all chunk keys of a generation, best effort. Stale
// keys are invisible to readers either way; this just reclaims space.
func (idx *Index) dropGeneration(gen uint64) {
	if gen == 0 {
		return
	}
	prefix := genPrefix(gen)
	var keys [][]byte
	_ = idx.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if len(keys) == 0 {
		return
	}
	wb := idx.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			break
		}
	}
	if err := wb.Flush(); err != nil {
		slog.Warn("Failed to remove stale index generation", "generation", gen, "error", err)
	}
}

// Count returns the number of stored chunks.
func (idx *Index) Count() (int, error) {
	count := 0
	err := idx.db.View(func(txn *badger.Txn) error {
		gen, err := currentGen(txn)
		if err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = genPrefix(gen)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Search returns the k stored chunks most similar to the query vector.
// An empty index yields ErrIndexNotFound.
func (idx *Index) Search(query []float32, k int) ([]Match, error) {
	var matches []Match
	err := idx.db.View(func(txn *badger.Txn) error {
		gen, err := currentGen(txn)
		if err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.Prefix = genPrefix(gen)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var chunk Chunk
				if err := json.Unmarshal(val, &chunk); err != nil {
					return fmt.Errorf("corrupt chunk record: %w", err)
				}
				matches = append(matches, Match{
					Chunk: chunk,
					Score: cosineSimilarity(query, chunk.Vector),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrIndexNotFound
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
