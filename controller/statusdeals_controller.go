package controller

import (
	"net/http"
	"strconv"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// StatusDealsController forwards deal board column management to the
// company service. Admin-only; managers only read columns through the
// deals routes.
type StatusDealsController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewStatusDealsController(client *bridge.Client, log logger.Logger) *StatusDealsController {
	return &StatusDealsController{client: client, log: log}
}

// Create handles POST /status-deals/create
func (s *StatusDealsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.StatusDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := s.client.SendExpect(c.Request.Context(), "status:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, s.log, env, err)
}

// Update handles PATCH /status-deals/:id/update
func (s *StatusDealsController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.StatusDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := s.client.Send(c.Request.Context(), "status:update", mutationPayload(user, c.Param("id"), req))
	relay(c, s.log, env, err)
}

// List handles GET /status-deals/list
func (s *StatusDealsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := s.client.Send(c.Request.Context(), "status:list", listPayload(user, pagination))
	relay(c, s.log, env, err)
}

// Find handles GET /status-deals/:id/find
func (s *StatusDealsController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := s.client.Send(c.Request.Context(), "status:find", findPayload(user, c.Param("id")))
	relay(c, s.log, env, err)
}

// Archive handles DELETE /status-deals/:id/archive
func (s *StatusDealsController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := s.client.Send(c.Request.Context(), "status:archive", archivePayload(user, c.Param("id")))
	relay(c, s.log, env, err)
}

// ChangePriority handles PATCH /status-deals/:id/priority, reordering a
// column on the board
func (s *StatusDealsController) ChangePriority(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req struct {
		Priority int `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Priority < 0 {
		badRequest(c, "priority must not be negative, got "+strconv.Itoa(req.Priority))
		return
	}

	env, err := s.client.Send(c.Request.Context(), "status:change:priority", map[string]interface{}{
		"id":       c.Param("id"),
		"priority": req.Priority,
		"userId":   user.ID,
	})
	relay(c, s.log, env, err)
}
