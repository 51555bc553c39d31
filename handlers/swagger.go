package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the board API.
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
    <title>familyboard — Swagger</title>
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
  "info": { "title": "familyboard", "version": "v1.0.0" },
  "paths": {
    "/api/recipes": {
      "get": { "summary": "List recipes, newest first", "responses": { "200": { "description": "count and data" }, "500": { "description": "storage failure" } } },
      "post": {
        "summary": "Create a recipe",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","author","ingredients","instructions"],"properties":{"name":{"type":"string"},"author":{"type":"string"},"ingredients":{"type":"string"},"instructions":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created record and totalRecipes" }, "400": { "description": "missing fields" } }
      }
    },
    "/api/recipes/{id}": {
      "delete": { "summary": "Delete a recipe", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"integer"}}], "responses": { "200": { "description": "deleted, totalRecipes" }, "404": { "description": "unknown id" } } }
    },
    "/api/wishes": {
      "get": { "summary": "List wishes, newest first", "responses": { "200": { "description": "count and data" } } },
      "post": {
        "summary": "Create a wish",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["author","text"],"properties":{"author":{"type":"string"},"text":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created record and totalWishes" }, "400": { "description": "missing fields" } }
      }
    },
    "/api/ping": { "get": { "summary": "Liveness check with uptime", "responses": { "200": { "description": "alive" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
