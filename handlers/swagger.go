package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>blog-service — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document describing the blog post API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "blog-service", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "BlogPost": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "body": {"type": "string"},
          "author": {"type": "string"},
          "createdAt": {"type": "string", "format": "date-time"},
          "updatedAt": {"type": "string", "format": "date-time"}
        }
      },
      "BlogPostInput": {
        "type": "object",
        "required": ["title", "body"],
        "properties": {
          "title": {"type": "string"},
          "body": {"type": "string"},
          "author": {"type": "string"}
        }
      },
      "Error": {
        "type": "object",
        "properties": {
          "error": {"type": "string"},
          "message": {"type": "string"}
        }
      }
    }
  },
  "paths": {
    "/": {
      "get": { "summary": "Service banner", "responses": { "200": { "description": "service healthy" } } }
    },
    "/blogs": {
      "get": {
        "summary": "List blog posts, newest first",
        "responses": { "200": { "description": "array of posts", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/BlogPost"}}}}}}
      },
      "post": {
        "summary": "Create a blog post",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/BlogPostInput"}}}},
        "responses": { "201": { "description": "stored post" }, "400": { "description": "validation error", "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Error"}}}}}
      }
    },
    "/blogs/{id}": {
      "get": {
        "summary": "Fetch one blog post",
        "parameters": [ {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}} ],
        "responses": { "200": { "description": "post" }, "400": { "description": "malformed id" }, "404": { "description": "unknown id" } }
      },
      "put": {
        "summary": "Replace title, body and author",
        "parameters": [ {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}} ],
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/BlogPostInput"}}}},
        "responses": { "200": { "description": "updated post" }, "400": { "description": "malformed id or missing fields" }, "404": { "description": "unknown id" } }
      },
      "delete": {
        "summary": "Delete a blog post",
        "parameters": [ {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}} ],
        "responses": { "200": { "description": "confirmation with id" }, "400": { "description": "malformed id" }, "404": { "description": "unknown id" } }
      }
    },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
