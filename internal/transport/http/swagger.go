package http

import (
	"net/http"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/moizrehman/portfolio-api/docs"
	"github.com/moizrehman/portfolio-api/internal/util"
)

// RegisterSwagger serves the embedded OpenAPI spec as JSON and mounts the
// Swagger UI under /swagger. The YAML is converted once at registration.
func RegisterSwagger(e *echo.Echo) {
	jsonSpec, err := yaml.YAMLToJSON(docs.Swagger)
	if err != nil {
		e.Logger.Errorf("convert swagger spec: %v", err)
	}

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		if jsonSpec == nil {
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
