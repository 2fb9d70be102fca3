package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// RolesController forwards role management to the identity service.
// Every route here is Admin-only.
type RolesController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewRolesController(client *bridge.Client, log logger.Logger) *RolesController {
	return &RolesController{client: client, log: log}
}

// Create handles POST /roles/create
func (r *RolesController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := r.client.SendExpect(c.Request.Context(), "roles:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, r.log, env, err)
}

// List handles GET /roles/list
func (r *RolesController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := r.client.Send(c.Request.Context(), "roles:list", listPayload(user, pagination))
	relay(c, r.log, env, err)
}

// Update handles PATCH /roles/:id/update
func (r *RolesController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := r.client.Send(c.Request.Context(), "roles:update", mutationPayload(user, c.Param("id"), req))
	relay(c, r.log, env, err)
}
