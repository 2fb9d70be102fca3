package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// NewsController forwards internal news feed operations to the news
// service.
type NewsController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewNewsController(client *bridge.Client, log logger.Logger) *NewsController {
	return &NewsController{client: client, log: log}
}

// Create handles POST /news/create
func (n *NewsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := n.client.SendExpect(c.Request.Context(), "news:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, n.log, env, err)
}

// Update handles PATCH /news/:id/update
func (n *NewsController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := n.client.Send(c.Request.Context(), "news:update", mutationPayload(user, c.Param("id"), req))
	relay(c, n.log, env, err)
}

// List handles GET /news/list
func (n *NewsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := n.client.Send(c.Request.Context(), "news:list", listPayload(user, pagination))
	relay(c, n.log, env, err)
}

// Find handles GET /news/:id/find
func (n *NewsController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := n.client.Send(c.Request.Context(), "news:find", findPayload(user, c.Param("id")))
	relay(c, n.log, env, err)
}

// Archive handles DELETE /news/:id/archive
func (n *NewsController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := n.client.Send(c.Request.Context(), "news:archive", archivePayload(user, c.Param("id")))
	relay(c, n.log, env, err)
}

// Comment handles POST /news/:id/comment
func (n *NewsController) Comment(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := n.client.SendExpect(c.Request.Context(), "news:comment", map[string]interface{}{
		"id":      c.Param("id"),
		"comment": req.Comment,
		"userId":  user.ID,
	}, http.StatusCreated)
	relay(c, n.log, env, err)
}
