package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Docs Handlers
// ============================================================

//go:embed openapi.yaml
var openAPISpec []byte

// OpenAPISpec serves the estimator OpenAPI document.
func OpenAPISpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openAPISpec)
}

var docsPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '{{.SpecURL}}',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      tagsSorter: 'alpha',
      operationsSorter: 'method',
      defaultModelsExpandDepth: -1,
      tryItOutEnabled: true,
    });
  };
</script>
</body>
</html>`))

// SwaggerUI renders the docs page once and serves it from memory. The page
// loads the OpenAPI document from specURL.
func SwaggerUI(title, specURL string) fiber.Handler {
	var buf bytes.Buffer
	err := docsPage.Execute(&buf, struct{ Title, SpecURL string }{title, specURL})
	if err != nil {
		log.Printf("[DOCS] Failed to render docs page: %v", err)
	}
	page := buf.Bytes()

	return func(c fiber.Ctx) error {
		c.Type("html")
		return c.Send(page)
	}
}
