package agent

import (
	"github.com/gin-gonic/gin"

	"opsagent/internal/interfaces/httpserver/handlers/agenthandler"
)

// AgentRoute handles agent pipeline routes.
type AgentRoute struct {
	handler *agenthandler.AgentHandler
}

// NewAgentRoute creates a new AgentRoute.
func NewAgentRoute(handler *agenthandler.AgentHandler) *AgentRoute {
	return &AgentRoute{handler: handler}
}

// RegisterRouter registers agent routes on the given router.
func (r *AgentRoute) RegisterRouter(router gin.IRouter) {
	agentGroup := router.Group("/agent")
	{
		agentGroup.POST("/process", r.handler.Process)
		agentGroup.GET("/history", r.handler.History)
		agentGroup.DELETE("/history", r.handler.ClearHistory)
		agentGroup.GET("/tools", r.handler.Tools)
	}
}
