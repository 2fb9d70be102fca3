package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// ProfileController forwards employee profile operations to the profile
// service.
type ProfileController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewProfileController(client *bridge.Client, log logger.Logger) *ProfileController {
	return &ProfileController{client: client, log: log}
}

// Me handles GET /profile/me, the caller's own profile
func (p *ProfileController) Me(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:me", map[string]interface{}{
		"userId": user.ID,
		"req":    user,
	})
	relay(c, p.log, env, err)
}

// Create handles POST /profile/new
func (p *ProfileController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.SendExpect(c.Request.Context(), "profile:new", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, p.log, env, err)
}

// List handles GET /profile/list
func (p *ProfileController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:get:all", listPayload(user, pagination))
	relay(c, p.log, env, err)
}

// ListArchive handles GET /profile/archive
func (p *ProfileController) ListArchive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:get:archive", listPayload(user, pagination))
	relay(c, p.log, env, err)
}

// Find handles GET /profile/:id
func (p *ProfileController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:get:id", findPayload(user, c.Param("id")))
	relay(c, p.log, env, err)
}

// Update handles PATCH /profile/:id/update
func (p *ProfileController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:update", mutationPayload(user, c.Param("id"), req))
	relay(c, p.log, env, err)
}

// ChangeStatus handles PATCH /profile/:id/status, toggling a profile
// between active and archived
func (p *ProfileController) ChangeStatus(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "profile:status", map[string]interface{}{
		"id":     c.Param("id"),
		"userId": user.ID,
		"active": req.Active,
	})
	relay(c, p.log, env, err)
}
