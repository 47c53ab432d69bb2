// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/manyagarg23/HackathonTwin/services/portal/datatypes"
	"github.com/manyagarg23/HackathonTwin/services/portal/observability"
	"github.com/manyagarg23/HackathonTwin/services/rag"
)

var ragTracer = otel.Tracer("hackathontwin.portal.handlers")

// HandleRAGChat answers a question grounded in the uploaded wiki documents.
// Returns 404 before any index has been built.
func HandleRAGChat(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := ragTracer.Start(c.Request.Context(), "HandleRAGChat")
		defer span.End()

		var req datatypes.RAGChatRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		answer, sources, err := svc.Answer(ctx, req.Message)
		observability.RecordChat("rag_chat", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if errors.Is(err, rag.ErrIndexNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			slog.Error("RAG answer failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.RAGChatResponse{
			Response:  answer,
			SessionID: uuid.NewString(),
			Sources:   sources,
		})
	}
}
