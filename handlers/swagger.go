package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the demo request API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
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
    <title>desuite-web - Swagger</title>
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
  "info": { "title": "desuite-web", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "DemoRequestInput": {
        "type": "object",
        "required": ["name", "email", "company"],
        "properties": {
          "name": { "type": "string", "maxLength": 200 },
          "email": { "type": "string", "format": "email", "maxLength": 320 },
          "company": { "type": "string", "maxLength": 200 },
          "useCase": { "type": "string", "maxLength": 5000 }
        }
      },
      "DemoRequest": {
        "type": "object",
        "required": ["id", "name", "email", "company", "createdAt"],
        "properties": {
          "id": { "type": "string" },
          "name": { "type": "string" },
          "email": { "type": "string", "format": "email" },
          "company": { "type": "string" },
          "useCase": { "type": "string" },
          "createdAt": { "type": "string", "format": "date-time" }
        }
      },
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } }
    }
  },
  "paths": {
    "/api/demo-requests": {
      "post": {
        "summary": "Submit a demo request",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DemoRequestInput" } } } },
        "responses": {
          "201": { "description": "stored record", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DemoRequest" } } } },
          "400": { "description": "validation error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } },
          "429": { "description": "rate limited", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } },
          "500": { "description": "storage failure", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } }
        }
      },
      "get": {
        "summary": "List demo requests in creation order",
        "security": [ { "bearer": [] } ],
        "responses": {
          "200": { "description": "all records", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/DemoRequest" } } } } },
          "401": { "description": "missing or invalid token" },
          "500": { "description": "storage failure", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } }
        }
      }
    },
    "/api/demo-requests/schema": {
      "get": { "summary": "Field rules shared with form clients", "responses": { "200": { "description": "field rules" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
