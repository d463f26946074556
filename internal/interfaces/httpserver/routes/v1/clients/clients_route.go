package clients

import (
	"github.com/gin-gonic/gin"

	"opsagent/internal/interfaces/httpserver/handlers/clienthandler"
)

// ClientsRoute handles CRM client routes.
type ClientsRoute struct {
	handler *clienthandler.ClientHandler
}

// NewClientsRoute creates a new ClientsRoute.
func NewClientsRoute(handler *clienthandler.ClientHandler) *ClientsRoute {
	return &ClientsRoute{handler: handler}
}

// RegisterRouter registers client routes on the given router.
func (r *ClientsRoute) RegisterRouter(router gin.IRouter) {
	clientsGroup := router.Group("/clients")
	{
		clientsGroup.POST("", r.handler.Create)
		clientsGroup.GET("", r.handler.List)
		clientsGroup.GET("/:client_id", r.handler.Get)
		clientsGroup.PATCH("/:client_id", r.handler.Update)
		clientsGroup.DELETE("/:client_id", r.handler.Delete)
		clientsGroup.POST("/:client_id/balance", r.handler.UpdateBalance)
	}
}
