package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the documents service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>docshare-documents - Swagger</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "docshare-documents", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "parameters": {
      "pageSize": { "name": "pageSize", "in": "query", "schema": { "type": "integer", "default": 10, "maximum": 100 } },
      "currentPage": { "name": "currentPage", "in": "query", "schema": { "type": "integer", "default": 0 } },
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }
    },
    "schemas": {
      "Document": { "type": "object", "properties": {
        "id": {"type":"string"}, "title": {"type":"string"}, "description": {"type":"string"}, "content": {"type":"string"},
        "is_approved": {"type":"boolean"}, "author": {"type":"string"}, "subject": {"type":"string"},
        "created_at": {"type":"string","format":"date-time"}, "updated_at": {"type":"string","format":"date-time"} } },
      "DocumentView": { "type": "object", "properties": {
        "id": {"type":"string"}, "title": {"type":"string"}, "description": {"type":"string"}, "content": {"type":"string"},
        "is_approved": {"type":"boolean"},
        "author": { "type":"object", "nullable": true, "properties": {"id":{"type":"string"},"sub":{"type":"string"},"email":{"type":"string"},"name":{"type":"string"}} },
        "subject": { "type":"object", "nullable": true, "properties": {"id":{"type":"string"},"name":{"type":"string"},"description":{"type":"string"}} },
        "created_at": {"type":"string","format":"date-time"}, "updated_at": {"type":"string","format":"date-time"} } },
      "CreateDocument": { "type": "object", "required": ["title"], "properties": {
        "title": {"type":"string","maxLength":300}, "description": {"type":"string","maxLength":2000}, "content": {"type":"string"}, "subject": {"type":"string"} } },
      "UpdateDocument": { "type": "object", "properties": {
        "title": {"type":"string","maxLength":300}, "description": {"type":"string","maxLength":2000}, "content": {"type":"string"} } },
      "Error": { "type": "object", "properties": { "status": {"type":"integer"}, "message": {"type":"string"}, "code": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/v1/documents": {
      "get": {
        "summary": "List approved documents",
        "parameters": [ {"$ref":"#/components/parameters/pageSize"}, {"$ref":"#/components/parameters/currentPage"} ],
        "responses": { "200": { "description": "approved documents, author and subject populated" }, "400": { "description": "bad request" } }
      },
      "post": {
        "summary": "Create a document authored by the caller",
        "security": [ {"bearer": []} ],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/CreateDocument"} } } },
        "responses": { "201": { "description": "created, not approved" }, "400": { "description": "validation error" }, "401": { "description": "unauthenticated" } }
      }
    },
    "/api/v1/documents/{id}": {
      "get": {
        "summary": "Get one document",
        "parameters": [ {"$ref":"#/components/parameters/id"} ],
        "responses": { "200": { "description": "document, populated" }, "404": { "description": "not found" } }
      },
      "patch": {
        "summary": "Update title, description or content",
        "security": [ {"bearer": []} ],
        "parameters": [ {"$ref":"#/components/parameters/id"} ],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/UpdateDocument"} } } },
        "responses": { "200": { "description": "document as stored before the update" }, "404": { "description": "not found" } }
      },
      "delete": {
        "summary": "Delete a document",
        "security": [ {"bearer": []} ],
        "parameters": [ {"$ref":"#/components/parameters/id"} ],
        "responses": { "200": { "description": "removed document" }, "404": { "description": "not found" } }
      }
    },
    "/api/v1/documents/subject/{subjectId}": {
      "get": {
        "summary": "Approved documents of one subject, with the subject record",
        "parameters": [ { "name": "subjectId", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "documents and subject" }, "400": { "description": "bad request" } }
      }
    },
    "/api/v1/admin/documents": {
      "get": {
        "summary": "List documents by filter (admin)",
        "security": [ {"bearer": []} ],
        "parameters": [
          { "name": "title", "in": "query", "schema": { "type": "string" } },
          { "name": "author", "in": "query", "schema": { "type": "string" } },
          { "name": "subject", "in": "query", "schema": { "type": "string" } },
          { "name": "is_approved", "in": "query", "schema": { "type": "boolean" } },
          {"$ref":"#/components/parameters/pageSize"}, {"$ref":"#/components/parameters/currentPage"}
        ],
        "responses": { "200": { "description": "matching documents" }, "400": { "description": "unsupported filter field" }, "403": { "description": "admin role required" } }
      },
      "post": {
        "summary": "Create a document, optionally pre-approved (admin)",
        "security": [ {"bearer": []} ],
        "responses": { "201": { "description": "created" }, "403": { "description": "admin role required" } }
      }
    },
    "/api/v1/admin/documents/{id}/approve": {
      "patch": {
        "summary": "Approve or reject a document (admin)",
        "security": [ {"bearer": []} ],
        "parameters": [ {"$ref":"#/components/parameters/id"} ],
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "required": ["is_approved"], "properties": { "is_approved": {"type":"boolean"} } } } } },
        "responses": { "200": { "description": "document as stored before the change" }, "404": { "description": "not found" } }
      }
    },
    "/api/v1/me": {
      "get": { "summary": "Get the caller's user record", "security": [ {"bearer": []} ], "responses": { "200": { "description": "user" } } }
    },
    "/api/v1/auth/logout": {
      "post": { "summary": "Revoke the presented access token", "security": [ {"bearer": []} ], "responses": { "200": { "description": "logged out" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
