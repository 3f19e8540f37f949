package routes

import (
	"net/http"
	"time"

	"grillbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the per-session websocket endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws/:sessionID", hb.Chat.HandleSession)
}

// RegisterUploadRoutes registers the document upload endpoint.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/upload", hb.Upload.UploadFileHandler)
}

// RegisterAdminRoutes registers booking store maintenance endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/clear-spreadsheet", hb.Admin.ClearSpreadsheetHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm the booking assistant"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterChatRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
