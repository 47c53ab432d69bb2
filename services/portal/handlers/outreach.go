// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/manyagarg23/HackathonTwin/services/outreach"
	"github.com/manyagarg23/HackathonTwin/services/portal/datatypes"
	"github.com/manyagarg23/HackathonTwin/services/portal/observability"
)

var outreachTracer = otel.Tracer("hackathontwin.portal.handlers")

// maxCSVUploadBytes caps campaign uploads. Contact lists are small; anything
// larger is almost certainly the wrong file.
const maxCSVUploadBytes = 10 << 20

// HandleUploadCSV ingests a contact CSV and runs the outreach campaign
// against it with the currently configured SMTP credentials.
func HandleUploadCSV(runner *outreach.Runner, smtpStore *outreach.ConfigStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := outreachTracer.Start(c.Request.Context(), "HandleUploadCSV")
		defer span.End()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.CampaignResponse{
				Error: "no file provided",
			})
			return
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
			c.JSON(http.StatusBadRequest, datatypes.CampaignResponse{
				Error: "only CSV files are supported",
			})
			return
		}
		if fileHeader.Size > maxCSVUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, datatypes.CampaignResponse{
				Error: "CSV file too large",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusInternalServerError, datatypes.CampaignResponse{
				Error: "failed to read uploaded file",
			})
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusInternalServerError, datatypes.CampaignResponse{
				Error: "failed to read uploaded file",
			})
			return
		}
		span.SetAttributes(
			attribute.String("filename", fileHeader.Filename),
			attribute.Int64("size_bytes", fileHeader.Size),
		)

		summary, results, err := runner.RunCampaign(ctx, string(content), smtpStore.Snapshot())
		observability.RecordCampaign(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Campaign run failed", "filename", fileHeader.Filename, "error", err)
			c.JSON(http.StatusBadRequest, datatypes.CampaignResponse{Error: err.Error()})
			return
		}

		slog.Info("Campaign run complete",
			"contacts", summary.TotalContacts,
			"sent", summary.EmailsSent,
			"failed", summary.EmailsFailed)
		c.JSON(http.StatusOK, datatypes.CampaignResponse{
			Success: true,
			Summary: &summary,
			Results: results,
		})
	}
}

// HandleSampleCSV returns a downloadable example contact list.
func HandleSampleCSV() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, datatypes.SampleCSVResponse{SampleCSV: outreach.SampleCSV})
	}
}

// HandleConfigureSMTP stores the sender credentials used for subsequent
// campaign runs.
func HandleConfigureSMTP(smtpStore *outreach.ConfigStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := outreachTracer.Start(c.Request.Context(), "HandleConfigureSMTP")
		defer span.End()

		var req datatypes.ConfigureSMTPRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.ConfigureSMTPResponse{
				Error: "invalid request body",
			})
			return
		}
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.ConfigureSMTPResponse{
				Error: err.Error(),
			})
			return
		}

		smtpStore.SetCredentials(req.Email, req.Password)
		slog.Info("SMTP credentials configured", "email", req.Email)
		c.JSON(http.StatusOK, datatypes.ConfigureSMTPResponse{
			Success: true,
			Message: "SMTP configured successfully",
		})
	}
}
