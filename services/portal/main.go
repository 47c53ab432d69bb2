// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/manyagarg23/HackathonTwin/services/agent"
	"github.com/manyagarg23/HackathonTwin/services/llm"
	"github.com/manyagarg23/HackathonTwin/services/outreach"
	"github.com/manyagarg23/HackathonTwin/services/portal/observability"
	"github.com/manyagarg23/HackathonTwin/services/portal/routes"
	"github.com/manyagarg23/HackathonTwin/services/rag"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "hackathon-portal"

// initTracer wires the OTLP gRPC exporter when a collector endpoint is
// configured. Returns a nil cleanup when tracing is disabled.
func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
		return nil, nil
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	if cleanup != nil {
		defer cleanup(context.Background())
	}

	llmClient, err := llm.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	embedder, err := rag.NewEmbedderFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	indexDir := os.Getenv("WIKI_INDEX_DIR")
	if indexDir == "" {
		indexDir = "wiki_index"
	}
	docsDir := os.Getenv("WIKI_DOCS_DIR")
	if docsDir == "" {
		docsDir = "wiki_docs"
	}
	index, err := rag.OpenIndex(indexDir)
	if err != nil {
		log.Fatalf("Failed to open similarity index at %s: %v", indexDir, err)
	}
	defer index.Close()
	observability.InitMetrics()

	ragService := rag.NewService(index, embedder,
		observability.NewTimedClient(llmClient, "rag"))

	sessions := agent.NewStore(observability.NewTimedClient(llmClient, "chat"))
	sessions.StartSweeper(5 * time.Minute)
	defer sessions.StopSweeper()

	smtpStore := outreach.NewConfigStore(outreach.SMTPConfigFromEnv())
	runner := outreach.NewRunner(
		outreach.NewComposer(observability.NewTimedClient(llmClient, "compose")),
		outreach.NewMailer())
	runner.OnResult(func(r outreach.SendResult) {
		observability.RecordEmail(r.Success)
	})

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	routes.SetupRoutes(router, routes.Deps{
		Sessions:  sessions,
		Runner:    runner,
		SMTPStore: smtpStore,
		RAG:       ragService,
		DocsDir:   docsDir,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	slog.Info("Starting the hackathon portal", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
