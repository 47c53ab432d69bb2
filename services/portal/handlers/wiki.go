// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/manyagarg23/HackathonTwin/services/portal/datatypes"
	"github.com/manyagarg23/HackathonTwin/services/rag"
)

var wikiTracer = otel.Tracer("hackathontwin.portal.handlers")

// saveUpload writes the multipart file into dir under its base filename,
// rejecting path traversal in the client-supplied name.
func saveUpload(c *gin.Context, dir string) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("no file provided: %w", err)
	}
	name := filepath.Base(fileHeader.Filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid filename %q", fileHeader.Filename)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return name, nil
}

// HandleAddLogistics stores a logistics document under the document
// directory without touching the similarity index.
func HandleAddLogistics(docsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := wikiTracer.Start(c.Request.Context(), "HandleAddLogistics")
		defer span.End()

		name, err := saveUpload(c, docsDir)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.UploadResponse{Error: err.Error()})
			return
		}
		span.SetAttributes(attribute.String("filename", name))

		slog.Info("Logistics document stored", "filename", name)
		c.JSON(http.StatusOK, datatypes.UploadResponse{
			Success: true,
			Message: fmt.Sprintf("%s uploaded successfully", name),
		})
	}
}

// HandleAddWiki stores a wiki document and rebuilds the similarity index
// from everything in the document directory.
func HandleAddWiki(svc *rag.Service, docsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := wikiTracer.Start(c.Request.Context(), "HandleAddWiki")
		defer span.End()

		name, err := saveUpload(c, docsDir)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.UploadResponse{Error: err.Error()})
			return
		}
		span.SetAttributes(attribute.String("filename", name))

		chunks, err := svc.IngestDirectory(ctx, docsDir)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Index rebuild failed", "filename", name, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.UploadResponse{
				Error: fmt.Sprintf("document stored but indexing failed: %v", err),
			})
			return
		}

		slog.Info("Wiki document indexed", "filename", name, "chunks", chunks)
		c.JSON(http.StatusOK, datatypes.UploadResponse{
			Success: true,
			Message: fmt.Sprintf("%s uploaded and indexed", name),
			Chunks:  chunks,
		})
	}
}

// HandleGetWiki serves the first PDF found in the document directory,
// 404 when none exists.
func HandleGetWiki(docsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := wikiTracer.Start(c.Request.Context(), "HandleGetWiki")
		defer span.End()

		entries, err := os.ReadDir(docsDir)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no wiki documents found"})
			return
		}
		var pdfs []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				pdfs = append(pdfs, e.Name())
			}
		}
		if len(pdfs) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no wiki documents found"})
			return
		}
		sort.Strings(pdfs)
		span.SetAttributes(attribute.String("filename", pdfs[0]))
		c.FileAttachment(filepath.Join(docsDir, pdfs[0]), pdfs[0])
	}
}
