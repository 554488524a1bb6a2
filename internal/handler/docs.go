package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/maxviazov/petclinic-service/internal/docs"
)

// RegisterDocs mounts documentation endpoints at the root:
//   - GET /swagger/*any: Swagger UI and the registered document at /swagger/doc.json
//   - GET /docs: shortcut to the UI
func RegisterDocs(r *gin.Engine) {
	ui := httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	)
	r.GET("/swagger/*any", gin.WrapH(ui))
	r.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}
