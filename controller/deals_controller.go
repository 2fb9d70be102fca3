package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// DealsController forwards deal board operations to the company service
type DealsController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewDealsController(client *bridge.Client, log logger.Logger) *DealsController {
	return &DealsController{client: client, log: log}
}

// Create handles POST /deals/create
func (d *DealsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Owner == "" {
		req.Owner = user.ID
	}

	env, err := d.client.SendExpect(c.Request.Context(), "deals:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, d.log, env, err)
}

// Update handles PATCH /deals/:id/update
func (d *DealsController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:update", mutationPayload(user, c.Param("id"), req))
	relay(c, d.log, env, err)
}

// List handles GET /deals/list
func (d *DealsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:list", listPayload(user, pagination))
	relay(c, d.log, env, err)
}

// Find handles GET /deals/:id/find
func (d *DealsController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:find", findPayload(user, c.Param("id")))
	relay(c, d.log, env, err)
}

// Archive handles DELETE /deals/:id/archive
func (d *DealsController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:archive", archivePayload(user, c.Param("id")))
	relay(c, d.log, env, err)
}

// ChangeStatus handles PATCH /deals/:id/status/:sid, moving a deal to
// another board column
func (d *DealsController) ChangeStatus(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:change:status", map[string]interface{}{
		"id":     c.Param("id"),
		"status": c.Param("sid"),
		"userId": user.ID,
	})
	relay(c, d.log, env, err)
}

// ChangeOwner handles PATCH /deals/:id/owner
func (d *DealsController) ChangeOwner(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ChangeOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := d.client.Send(c.Request.Context(), "deals:change:owner", map[string]interface{}{
		"id":     c.Param("id"),
		"owner":  req.Owner,
		"userId": user.ID,
	})
	relay(c, d.log, env, err)
}

// Comment handles POST /deals/:id/comment
func (d *DealsController) Comment(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := d.client.SendExpect(c.Request.Context(), "deals:comment", map[string]interface{}{
		"id":      c.Param("id"),
		"comment": req.Comment,
		"userId":  user.ID,
	}, http.StatusCreated)
	relay(c, d.log, env, err)
}
