package requests

// ProcessRequest carries one natural-language command for the agent.
type ProcessRequest struct {
	Request string `json:"request" binding:"required" example:"List all clients"`
}
