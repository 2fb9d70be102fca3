package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// LeadsController forwards lead pipeline operations to the company
// service. Done and Failure close a lead out of the pipeline; Done
// converts it into a deal on the backend.
type LeadsController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewLeadsController(client *bridge.Client, log logger.Logger) *LeadsController {
	return &LeadsController{client: client, log: log}
}

// Create handles POST /leads/create
func (l *LeadsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Owner == "" {
		req.Owner = user.ID
	}

	env, err := l.client.SendExpect(c.Request.Context(), "leads:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, l.log, env, err)
}

// Update handles PATCH /leads/:id/update
func (l *LeadsController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:update", mutationPayload(user, c.Param("id"), req))
	relay(c, l.log, env, err)
}

// List handles GET /leads/list
func (l *LeadsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:list", listPayload(user, pagination))
	relay(c, l.log, env, err)
}

// Find handles GET /leads/:id/find
func (l *LeadsController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:find", findPayload(user, c.Param("id")))
	relay(c, l.log, env, err)
}

// Archive handles DELETE /leads/:id/archive
func (l *LeadsController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:archive", archivePayload(user, c.Param("id")))
	relay(c, l.log, env, err)
}

// ChangeStatus handles PATCH /leads/:id/status/:sid
func (l *LeadsController) ChangeStatus(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:change:status", map[string]interface{}{
		"id":     c.Param("id"),
		"status": c.Param("sid"),
		"userId": user.ID,
	})
	relay(c, l.log, env, err)
}

// ChangeOwner handles PATCH /leads/:id/owner
func (l *LeadsController) ChangeOwner(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ChangeOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:change:owner", map[string]interface{}{
		"id":     c.Param("id"),
		"owner":  req.Owner,
		"userId": user.ID,
	})
	relay(c, l.log, env, err)
}

// Comment handles POST /leads/:id/comment
func (l *LeadsController) Comment(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := l.client.SendExpect(c.Request.Context(), "leads:comment", map[string]interface{}{
		"id":      c.Param("id"),
		"comment": req.Comment,
		"userId":  user.ID,
	}, http.StatusCreated)
	relay(c, l.log, env, err)
}

// Done handles PATCH /leads/:id/done
func (l *LeadsController) Done(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := l.client.Send(c.Request.Context(), "leads:done", map[string]interface{}{
		"id":     c.Param("id"),
		"userId": user.ID,
	})
	relay(c, l.log, env, err)
}

// Failure handles PATCH /leads/:id/failure
func (l *LeadsController) Failure(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	// The body is optional, a reason may accompany the failure.
	_ = c.ShouldBindJSON(&req)

	env, err := l.client.Send(c.Request.Context(), "leads:failure", map[string]interface{}{
		"id":     c.Param("id"),
		"reason": req.Reason,
		"userId": user.ID,
	})
	relay(c, l.log, env, err)
}
