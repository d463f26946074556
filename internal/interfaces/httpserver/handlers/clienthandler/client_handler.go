package clienthandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/domain/client"
	"opsagent/internal/interfaces/httpserver/middlewares"
	"opsagent/internal/interfaces/httpserver/requests"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/platformerrors"
)

// ClientHandler exposes CRM clients over HTTP.
type ClientHandler struct {
	clientService *client.Service
	logger        zerolog.Logger
}

// NewClientHandler creates the client handler.
func NewClientHandler(clientService *client.Service, logger zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger.With().Str("component", "client-handler").Logger(),
	}
}

// ListResponse wraps a client listing.
type ListResponse struct {
	Data  []*client.Client `json:"data"`
	Count int              `json:"count"`
}

// Create godoc
// @Summary Create client
// @Tags CRM API
// @Accept json
// @Produce json
// @Param request body requests.CreateClientRequest true "Client to register"
// @Success 201 {object} client.Client
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req requests.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	created, err := h.clientService.CreateClient(c.Request.Context(), &client.CreateRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Balance: req.Balance,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create client")
		return
	}

	h.audit(c, "client created", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get client
// @Tags CRM API
// @Produce json
// @Param client_id path string true "Client ID"
// @Success 200 {object} client.Client
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/clients/{client_id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	got, err := h.clientService.GetClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get client")
		return
	}
	c.JSON(http.StatusOK, got)
}

// List godoc
// @Summary List clients
// @Tags CRM API
// @Produce json
// @Success 200 {object} ListResponse
// @Router /v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list clients")
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: clients, Count: len(clients)})
}

// Update godoc
// @Summary Update client
// @Description Applies a partial update; omitted fields are untouched.
// @Tags CRM API
// @Accept json
// @Produce json
// @Param client_id path string true "Client ID"
// @Param request body requests.UpdateClientRequest true "Fields to change"
// @Success 200 {object} client.Client
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/clients/{client_id} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	var req requests.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	var status *client.Status
	if req.Status != nil {
		s := client.Status(*req.Status)
		status = &s
	}

	clientID := c.Param("client_id")
	updated, err := h.clientService.UpdateClient(c.Request.Context(), clientID, &client.UpdateRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Status:  status,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update client")
		return
	}

	h.audit(c, "client updated", updated.ID)
	c.JSON(http.StatusOK, updated)
}

// UpdateBalance godoc
// @Summary Apply a balance change
// @Description Applies a signed amount to the client balance. Negative amounts charge the account.
// @Tags CRM API
// @Accept json
// @Produce json
// @Param client_id path string true "Client ID"
// @Param request body requests.UpdateBalanceRequest true "Signed amount"
// @Success 200 {object} client.Client
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/clients/{client_id}/balance [post]
func (h *ClientHandler) UpdateBalance(c *gin.Context) {
	var req requests.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "request body must carry an amount field")
		return
	}

	clientID := c.Param("client_id")
	updated, err := h.clientService.UpdateClientBalance(c.Request.Context(), clientID, *req.Amount)
	if err != nil {
		responses.HandleError(c, err, "failed to update client balance")
		return
	}

	h.audit(c, "client balance updated", updated.ID)
	c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete client
// @Tags CRM API
// @Produce json
// @Param client_id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/clients/{client_id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID := c.Param("client_id")
	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		responses.HandleError(c, err, "failed to delete client")
		return
	}

	h.audit(c, "client deleted", clientID)
	c.JSON(http.StatusOK, gin.H{"deleted": clientID})
}

func (h *ClientHandler) audit(c *gin.Context, action, resourceID string) {
	event := h.logger.Info().Str("resource_id", resourceID)
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		event = event.Str("principal", principal)
	}
	event.Msg(action)
}
