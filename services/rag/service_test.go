// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rag

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// fakeEmbedder maps texts onto a two-dimensional space: anything mentioning
// prizes points one way, everything else the other.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.Contains(strings.ToLower(text), "prize") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (f fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, _ := f.Embed(context.Background(), text)
		vectors[i] = v
	}
	return vectors, nil
}

func newTestService(t *testing.T, client llm.Client) *Service {
	t.Helper()
	return NewService(newTestIndex(t), fakeEmbedder{}, client)
}

func TestAnswerBeforeAnyIngestion(t *testing.T) {
	svc := newTestService(t, llm.NewMockClient())

	_, _, err := svc.Answer(context.Background(), "what are the prizes?")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestAnswerGroundsPromptInRetrievedChunks(t *testing.T) {
	mock := llm.NewMockClient().WithDefaultResponse("The prize pool is $25,000.")
	svc := newTestService(t, mock)
	require.NoError(t, svc.index.Rebuild([]Chunk{
		{ID: "a", Source: "wiki.txt_part_1", Content: "The prize pool is $25,000 in cash.", Vector: []float32{1, 0}},
		{ID: "b", Source: "wiki.txt_part_2", Content: "Doors open at 9am on Friday.", Vector: []float32{0, 1}},
	}))

	answer, sources, err := svc.Answer(context.Background(), "what is the prize pool?")
	require.NoError(t, err)
	assert.Equal(t, "The prize pool is $25,000.", answer)
	assert.Contains(t, sources, "wiki.txt_part_1")

	prompt := mock.Prompts()[0]
	assert.Contains(t, prompt, "helpful support agent")
	assert.Contains(t, prompt, "The prize pool is $25,000 in cash.")
	assert.Contains(t, prompt, "what is the prize pool?")
}

func TestAnswerDeduplicatesSources(t *testing.T) {
	mock := llm.NewMockClient()
	svc := newTestService(t, mock)
	require.NoError(t, svc.index.Rebuild([]Chunk{
		{ID: "a", Source: "wiki.txt_part_1", Content: "prizes one", Vector: []float32{1, 0}},
		{ID: "b", Source: "wiki.txt_part_1", Content: "prizes two", Vector: []float32{1, 0.1}},
		{ID: "c", Source: "faq.md_part_1", Content: "prizes three", Vector: []float32{1, 0.2}},
	}))

	_, sources, err := svc.Answer(context.Background(), "prizes?")
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki.txt_part_1", "faq.md_part_1"}, sources)
}

// writeMinimalPDF emits a single-page PDF carrying one line of text, with a
// hand-assembled xref table so the loader can parse it offline.
func writeMinimalPDF(t *testing.T, path, text string) {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 6)
	write := func(obj int, s string) {
		offsets[obj] = buf.Len()
		buf.WriteString(s)
	}
	buf.WriteString("%PDF-1.4\n")
	write(1, "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(2, "2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	write(3, "3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>\nendobj\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	write(4, fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		len(stream), stream))
	write(5, "5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wiki.txt"),
		[]byte("The hackathon offers a large prize pool."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedule.md"),
		[]byte("Check-in starts Friday at 9am."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.docx"),
		[]byte("unsupported format"), 0o644))

	svc := newTestService(t, llm.NewMockClient().WithDefaultResponse("indexed answer"))
	count, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count) // one chunk per small text file, docx skipped

	answer, sources, err := svc.Answer(context.Background(), "what about prizes?")
	require.NoError(t, err)
	assert.Equal(t, "indexed answer", answer)
	assert.Contains(t, sources, "wiki.txt_part_1")
}

func TestIngestDirectoryIndexesPDF(t *testing.T) {
	dir := t.TempDir()
	writeMinimalPDF(t, filepath.Join(dir, "handbook.pdf"),
		"The prize pool is 25000 dollars in cash and gadgets.")

	mock := llm.NewMockClient().WithDefaultResponse("answer from the handbook")
	svc := newTestService(t, mock)
	count, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	answer, sources, err := svc.Answer(context.Background(), "what are the prizes?")
	require.NoError(t, err)
	assert.Equal(t, "answer from the handbook", answer)
	assert.Equal(t, []string{"handbook.pdf_part_1"}, sources)
	assert.Contains(t, mock.Prompts()[0], "prize pool is 25000 dollars")
}

func TestIngestDirectorySkipsUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"),
		[]byte("%PDF-1.4 garbage with no xref"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wiki.txt"),
		[]byte("Doors open Friday morning."), 0o644))

	svc := newTestService(t, llm.NewMockClient())
	count, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count) // the broken PDF is skipped, not fatal
}

func TestIngestDirectoryEmpty(t *testing.T) {
	svc := newTestService(t, llm.NewMockClient())

	count, err := svc.IngestDirectory(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, _, err = svc.Answer(context.Background(), "anything?")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestIngestDirectoryMissing(t *testing.T) {
	svc := newTestService(t, llm.NewMockClient())

	_, err := svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestIngestDirectoryKeepsDuplicateContentPerSource(t *testing.T) {
	dir := t.TempDir()
	content := []byte("The prize pool is shared between tracks.")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), content, 0o644))

	svc := newTestService(t, llm.NewMockClient())
	count, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, sources, err := svc.Answer(context.Background(), "prizes?")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt_part_1", "b.txt_part_1"}, sources)
}

func TestChunkIDIsStable(t *testing.T) {
	assert.Equal(t, chunkID("a.txt_part_1", "same text"), chunkID("a.txt_part_1", "same text"))
	assert.NotEqual(t, chunkID("a.txt_part_1", "same text"), chunkID("a.txt_part_1", "other text"))
	// Identical text in two documents keeps two distinct records.
	assert.NotEqual(t, chunkID("a.txt_part_1", "same text"), chunkID("b.txt_part_1", "same text"))
}
