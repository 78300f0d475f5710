package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// openAPISpec describes the public HTTP surface. Kept inline so the binary
// serves its own documentation without a build-time generation step.
const openAPISpec = `{
	"openapi": "3.0.3",
	"info": {
		"title": "Nexus Video Discovery API",
		"description": "Interaction tracking, recommendation strategies, catalogue search and the conversational assistant.",
		"version": "1.0.0"
	},
	"paths": {
		"/health": {
			"get": {
				"summary": "Service health",
				"responses": {
					"200": {"description": "Healthy or degraded"},
					"503": {"description": "Unhealthy"}
				}
			}
		},
		"/api/v1/interactions": {
			"post": {
				"summary": "Record a user interaction",
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object",
								"required": ["user_id", "video_id", "action"],
								"properties": {
									"user_id": {"type": "string"},
									"video_id": {"type": "string"},
									"action": {"type": "string", "enum": ["like", "dislike", "unlike", "undislike", "view", "share"]},
									"score": {"type": "number", "minimum": 0, "maximum": 10},
									"session_id": {"type": "string", "format": "uuid"}
								}
							}
						}
					}
				},
				"responses": {
					"201": {"description": "Interaction recorded, returns the updated preference profile"},
					"400": {"description": "Invalid request or unknown action"}
				}
			}
		},
		"/api/v1/recommendations/{userId}": {
			"get": {
				"summary": "Generate recommendations for a user",
				"parameters": [
					{"name": "userId", "in": "path", "required": true, "schema": {"type": "string"}},
					{"name": "strategy", "in": "query", "schema": {"type": "string", "enum": ["collaborative", "content", "hybrid", "popular", "trending", "recent"], "default": "hybrid"}},
					{"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100}}
				],
				"responses": {
					"200": {"description": "Ranked recommendations"},
					"400": {"description": "Unknown strategy"}
				}
			}
		},
		"/api/v1/search": {
			"get": {
				"summary": "Search the video catalogue",
				"parameters": [
					{"name": "q", "in": "query", "schema": {"type": "string"}},
					{"name": "preset", "in": "query", "schema": {"type": "string", "enum": ["caption-weighted", "field-weighted"], "default": "caption-weighted"}},
					{"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100}}
				],
				"responses": {
					"200": {"description": "Ranked search results, popularity order for an empty query"}
				}
			}
		},
		"/api/v1/channels/{channelName}/videos": {
			"get": {
				"summary": "List a channel's videos",
				"parameters": [
					{"name": "channelName", "in": "path", "required": true, "schema": {"type": "string"}}
				],
				"responses": {
					"200": {"description": "Channel videos, case-insensitive match, empty list for unknown channels"},
					"503": {"description": "Catalogue unavailable"}
				}
			}
		},
		"/api/v1/users/{userId}/preferences": {
			"get": {
				"summary": "Summarise a user's preference profile",
				"parameters": [
					{"name": "userId", "in": "path", "required": true, "schema": {"type": "string"}}
				],
				"responses": {
					"200": {"description": "Interaction counts plus top channels and tags"}
				}
			}
		},
		"/api/v1/assistant/message": {
			"post": {
				"summary": "Send a natural language message to the assistant",
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object",
								"required": ["user_id", "message"],
								"properties": {
									"user_id": {"type": "string"},
									"message": {"type": "string", "maxLength": 2000}
								}
							}
						}
					}
				},
				"responses": {
					"200": {"description": "Assistant reply with intent, search results or a recorded action"}
				}
			}
		}
	}
}`

const docsPage = `<!DOCTYPE html>
<html>
<head>
	<title>Nexus API Documentation</title>
	<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
	<script>
		SwaggerUIBundle({url: "/docs/openapi.json", dom_id: "#swagger-ui"});
	</script>
</body>
</html>`

// RegisterRoutes mounts the documentation endpoints on the router.
func RegisterRoutes(router *gin.Engine) {
	docsGroup := router.Group("/docs")
	{
		docsGroup.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
		})
		docsGroup.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(openAPISpec))
		})
	}
}
