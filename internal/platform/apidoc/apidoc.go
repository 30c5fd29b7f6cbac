// Package apidoc serves the OpenAPI document and a swagger UI over it.
package apidoc

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const DocPath = "/api/openapi.yaml"

//go:embed openapi.yaml
var document []byte

// Document returns the raw OpenAPI document.
func Document() []byte { return document }

func RegisterRoutes(r gin.IRoutes) {
	r.GET(DocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", document)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(DocPath)))
}
