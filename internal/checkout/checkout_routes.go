package checkout

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("", handler.Start)
		checkout.GET("", handler.Get)

		checkout.PUT("/fields", handler.SetField)
		checkout.PUT("/focus", handler.SetFocus)

		checkout.POST("/advance", handler.Advance)
		checkout.POST("/back", handler.Retreat)
		checkout.POST("/jump", handler.Jump)
		checkout.POST("/gesture", handler.Gesture)

		checkout.POST("/submit", handler.Submit)
	}
}
