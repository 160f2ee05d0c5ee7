package cart

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cart := r.Group("/cart")
	{
		cart.GET("", handler.Detail)
		cart.GET("/count", handler.Count)
		cart.GET("/totals", handler.Totals)
		cart.DELETE("", handler.Clear)

		cart.POST("/items", handler.AddItem)
		cart.PATCH("/items/:productId", handler.UpdateQty)
		cart.POST("/items/:productId/increment", handler.Increment)
		cart.POST("/items/:productId/decrement", handler.Decrement)
		cart.DELETE("/items/:productId", handler.RemoveItem)

		cart.POST("/promo", handler.ApplyPromo)
		cart.DELETE("/promo", handler.RemovePromo)
	}
}
