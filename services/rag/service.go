// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rag

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200

	// topK is how many chunks are stuffed into the answer prompt.
	topK = 4
)

// Service wires document ingestion and question answering together.
type Service struct {
	index    *Index
	embedder Embedder
	client   llm.Client
}

func NewService(index *Index, embedder Embedder, client llm.Client) *Service {
	return &Service{index: index, embedder: embedder, client: client}
}

// Answer embeds the query, retrieves the most similar chunks and has the
// LLM compose a grounded answer. Returns ErrIndexNotFound before any
// documents have been indexed.
func (s *Service) Answer(ctx context.Context, query string) (string, []string, error) {
	if n, err := s.index.Count(); err != nil {
		return "", nil, fmt.Errorf("failed to inspect index: %w", err)
	} else if n == 0 {
		return "", nil, ErrIndexNotFound
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("failed to embed query: %w", err)
	}
	matches, err := s.index.Search(vector, topK)
	if err != nil {
		return "", nil, err
	}

	var contextText strings.Builder
	seen := make(map[string]bool)
	var sources []string
	for _, m := range matches {
		contextText.WriteString(m.Chunk.Content)
		contextText.WriteString("\n\n")
		if !seen[m.Chunk.Source] {
			seen[m.Chunk.Source] = true
			sources = append(sources, m.Chunk.Source)
		}
	}

	prompt := fmt.Sprintf(`You are a helpful support agent. Use the following pieces of context from the knowledge base to answer the user's question.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

Context:
%s

Question:
%s

Helpful Answer:`, strings.TrimSpace(contextText.String()), query)

	answer, err := s.client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		return "", nil, fmt.Errorf("answer generation failed: %w", err)
	}
	slog.Info("Answered RAG query", "chunks", len(matches), "sources", len(sources))
	return answer, sources, nil
}

// IngestDirectory rebuilds the index from every readable document under dir:
// plain text and markdown directly, PDFs through the document loader.
// Unreadable files are skipped, never fatal.
func (s *Service) IngestDirectory(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read document directory: %w", err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var chunks []Chunk
	var texts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".md":
			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				slog.Warn("Failed to read document, skipping", "file", name, "error", err)
				continue
			}
			text = string(content)
		case ".pdf":
			text, err = extractPDFText(ctx, filepath.Join(dir, name))
			if err != nil {
				slog.Warn("Failed to extract PDF text, skipping", "file", name, "error", err)
				continue
			}
		default:
			slog.Debug("Skipping unsupported document during ingestion", "file", name)
			continue
		}
		if strings.TrimSpace(text) == "" {
			slog.Warn("Document has no extractable text, skipping", "file", name)
			continue
		}

		pieces, err := splitter.SplitText(text)
		if err != nil {
			slog.Warn("Failed to split document, skipping", "file", name, "error", err)
			continue
		}
		for i, piece := range pieces {
			source := fmt.Sprintf("%s_part_%d", name, i+1)
			chunks = append(chunks, Chunk{
				ID:      chunkID(source, piece),
				Source:  source,
				Content: piece,
			})
			texts = append(texts, piece)
		}
	}

	if len(chunks) == 0 {
		slog.Warn("No indexable text found in document directory", "dir", dir)
		return 0, nil
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed document chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding service returned mismatched vector count")
	}
	for i := range chunks {
		chunks[i].Vector = vectors[i]
	}

	if err := s.index.Rebuild(chunks); err != nil {
		return 0, err
	}
	slog.Info("Rebuilt similarity index", "dir", dir, "chunks", len(chunks))
	return len(chunks), nil
}

// extractPDFText concatenates the page text of one PDF file.
func extractPDFText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.PageContent)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// chunkID derives a stable identifier from the chunk's source and content,
// so identical text in two documents keeps both attributions.
func chunkID(source, content string) string {
	hash := sha256.Sum256([]byte(source + "\x00" + content))
	id, _ := uuid.FromBytes(hash[:16])
	return id.String()
}
