package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/operators", s.listOperators)
		api.GET("/operators/:name", s.getOperator)
		api.POST("/wallpaper", s.wallpaperHandler)
		api.GET("/wallpapers/:id", s.storedWallpaper)
		api.GET("/wallpapers/:id/qr", s.wallpaperQR)
		api.GET("/qr", s.qrHandler)
	}
}
