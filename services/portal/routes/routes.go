// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manyagarg23/HackathonTwin/services/agent"
	"github.com/manyagarg23/HackathonTwin/services/outreach"
	"github.com/manyagarg23/HackathonTwin/services/portal/handlers"
	"github.com/manyagarg23/HackathonTwin/services/rag"
)

// Deps bundles the shared components the routes need.
type Deps struct {
	Sessions  *agent.Store
	Runner    *outreach.Runner
	SMTPStore *outreach.ConfigStore
	RAG       *rag.Service
	DocsDir   string
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/chat", handlers.HandleChat(deps.Sessions))
		api.POST("/chat/new", handlers.HandleNewChat(deps.Sessions))
		api.GET("/chat/:session_id/summary", handlers.HandleSessionSummary(deps.Sessions))

		outreachGroup := api.Group("/outreach")
		{
			outreachGroup.POST("/upload-csv", handlers.HandleUploadCSV(deps.Runner, deps.SMTPStore))
			outreachGroup.GET("/sample-csv", handlers.HandleSampleCSV())
			outreachGroup.POST("/configure-smtp", handlers.HandleConfigureSMTP(deps.SMTPStore))
		}

		api.POST("/add_logistics", handlers.HandleAddLogistics(deps.DocsDir))
		api.POST("/add_wiki", handlers.HandleAddWiki(deps.RAG, deps.DocsDir))
		api.GET("/get_wiki", handlers.HandleGetWiki(deps.DocsDir))
		api.POST("/rag/chat", handlers.HandleRAGChat(deps.RAG))
	}
}
