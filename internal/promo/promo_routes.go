package promo

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	promos := r.Group("/promos")
	{
		promos.GET("", handler.List)
		promos.POST("/validate", handler.Validate)
	}
}
