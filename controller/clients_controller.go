package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// ClientsController forwards contact-person operations to the clients
// service, plus their attachments to the files service.
type ClientsController struct {
	client *bridge.Client
	files  *bridge.Client
	log    logger.Logger
}

func NewClientsController(client, files *bridge.Client, log logger.Logger) *ClientsController {
	return &ClientsController{client: client, files: files, log: log}
}

// Create handles POST /clients/create
func (cl *ClientsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Owner == "" {
		req.Owner = user.ID
	}

	env, err := cl.client.SendExpect(c.Request.Context(), "client:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, cl.log, env, err)
}

// Update handles PATCH /clients/:id/update
func (cl *ClientsController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := cl.client.Send(c.Request.Context(), "client:update", mutationPayload(user, c.Param("id"), req))
	relay(c, cl.log, env, err)
}

// List handles GET /clients/list
func (cl *ClientsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := cl.client.Send(c.Request.Context(), "client:list", listPayload(user, pagination))
	relay(c, cl.log, env, err)
}

// Find handles GET /clients/:id/find
func (cl *ClientsController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := cl.client.Send(c.Request.Context(), "client:find", findPayload(user, c.Param("id")))
	relay(c, cl.log, env, err)
}

// Archive handles DELETE /clients/:id/archive
func (cl *ClientsController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := cl.client.Send(c.Request.Context(), "client:archive", archivePayload(user, c.Param("id")))
	relay(c, cl.log, env, err)
}

// FileList handles GET /clients/attachments/:id/list
func (cl *ClientsController) FileList(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := cl.files.Send(c.Request.Context(), "files:clients:list", findPayload(user, c.Param("id")))
	relay(c, cl.log, env, err)
}

// DownloadFile handles GET /clients/attachments/:id/download/:fileID
func (cl *ClientsController) DownloadFile(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := cl.files.Send(c.Request.Context(), "files:clients:download", map[string]interface{}{
		"id":     c.Param("id"),
		"fileId": c.Param("fileID"),
		"req":    user,
	})
	relay(c, cl.log, env, err)
}
