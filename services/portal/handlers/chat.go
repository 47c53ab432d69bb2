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
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/manyagarg23/HackathonTwin/services/agent"
	"github.com/manyagarg23/HackathonTwin/services/portal/datatypes"
	"github.com/manyagarg23/HackathonTwin/services/portal/observability"
)

var chatTracer = otel.Tracer("hackathontwin.portal.handlers")

// HandleChat processes one chat turn, creating a session when the request
// carries no known session identifier.
func HandleChat(store *agent.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := chatTracer.Start(c.Request.Context(), "HandleChat")
		defer span.End()

		var req datatypes.ChatRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse chat request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		sessionID, a := store.GetOrCreate(req.SessionID)
		span.SetAttributes(attribute.String("session_id", sessionID))
		observability.SetActiveSessions(store.Len())

		var reply string
		var err error
		switch strings.ToLower(strings.TrimSpace(req.Message)) {
		case "hi", "hello", "start":
			reply, err = a.WelcomeMessage(ctx)
		case "summary":
			reply, err = a.Summary(ctx)
		default:
			reply, err = a.Chat(ctx, req.Message)
		}
		observability.RecordChat("chat", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Chat turn failed", "session_id", sessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.ChatResponse{Response: reply, SessionID: sessionID})
	}
}

// HandleNewChat always creates a fresh session and returns its welcome
// message.
func HandleNewChat(store *agent.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := chatTracer.Start(c.Request.Context(), "HandleNewChat")
		defer span.End()

		sessionID, a := store.New()
		span.SetAttributes(attribute.String("session_id", sessionID))
		observability.SetActiveSessions(store.Len())

		welcome, err := a.WelcomeMessage(ctx)
		observability.RecordChat("chat_new", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to produce welcome message", "session_id", sessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.ChatResponse{Response: welcome, SessionID: sessionID})
	}
}

// HandleSessionSummary returns the hackathon summary for an existing
// session, 404 when the session is unknown.
func HandleSessionSummary(store *agent.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := chatTracer.Start(c.Request.Context(), "HandleSessionSummary")
		defer span.End()

		sessionID := c.Param("session_id")
		span.SetAttributes(attribute.String("session_id", sessionID))

		a, err := store.Get(sessionID)
		if err != nil {
			if errors.Is(err, agent.ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		summary, err := a.Summary(ctx)
		observability.RecordChat("summary", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to summarize session", "session_id", sessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.SummaryResponse{Summary: summary})
	}
}
