package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maestre-ai/maestre-api/internal/middleware"
	"github.com/maestre-ai/maestre-api/internal/models"
	"github.com/maestre-ai/maestre-api/internal/service"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth       *AuthHandler
	Classrooms *ClassroomHandler
	Materials  *MaterialHandler
	Tags       *TagHandler
	Terms      *TermHandler
	Generation *GenerationHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts all API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, h Handlers, authSvc *service.AuthService) {
	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	v1 := r.Group("/api/v1")

	v1.POST("/users/signup", h.Auth.Signup)
	v1.POST("/users/signin", h.Auth.Signin)

	// Artifact downloads carry their own signed token.
	v1.GET("/tools/artifacts/:token", h.Generation.DownloadArtifact)

	v1.GET("/terms/:tag", h.Terms.Latest)
	v1.GET("/terms/:tag/versions", h.Terms.Versions)
	v1.GET("/terms/:tag/versions/:version/pdf", h.Terms.PDF)

	auth := v1.Group("")
	auth.Use(middleware.JWT(authSvc))

	auth.POST("/users/signout", h.Auth.Signout)
	auth.GET("/users/me", h.Auth.Me)
	auth.PUT("/users/me", h.Auth.UpdateProfile)
	auth.DELETE("/users/me", h.Auth.DeleteAccount)
	auth.GET("/users/check-role", h.Auth.CheckRole)

	auth.POST("/classrooms", h.Classrooms.Create)
	auth.GET("/classrooms", h.Classrooms.List)
	auth.GET("/classrooms/:id", h.Classrooms.Get)
	auth.PUT("/classrooms/:id", h.Classrooms.Update)
	auth.DELETE("/classrooms/:id", h.Classrooms.Delete)

	auth.POST("/materials", h.Materials.Upload)
	auth.GET("/materials", h.Materials.List)
	auth.POST("/materials/extract-text", h.Materials.ExtractText)
	auth.POST("/materials/extract-text-from-url", h.Materials.ExtractTextFromURL)
	auth.GET("/materials/:id", h.Materials.Get)
	auth.GET("/materials/:id/download", h.Materials.Download)
	auth.PUT("/materials/:id", h.Materials.Update)
	auth.DELETE("/materials/:id", h.Materials.Delete)

	auth.POST("/tags", h.Tags.Create)
	auth.GET("/tags", h.Tags.List)
	auth.PUT("/tags/:id", h.Tags.Update)
	auth.DELETE("/tags/:id", h.Tags.Delete)

	auth.POST("/terms", middleware.RequireRoles(models.RoleAdmin), h.Terms.Publish)
	auth.DELETE("/terms/:id", middleware.RequireRoles(models.RoleAdmin), h.Terms.Delete)

	auth.POST("/tools/exams", h.Generation.GenerateExam)
	auth.POST("/tools/lesson-plans", h.Generation.GeneratePlan)
	auth.POST("/tools/artifacts/export", h.Generation.ExportArtifact)
	auth.POST("/tools/artifacts/save", h.Generation.SaveArtifact)
	auth.POST("/tools/translate", h.Generation.Translate)
	auth.GET("/tools/translate/history", h.Generation.TranslationHistory)

	if h.Metrics != nil {
		auth.GET("/metrics/snapshot", middleware.RequireRoles(models.RoleAdmin), h.Metrics.Snapshot)
	}
}
