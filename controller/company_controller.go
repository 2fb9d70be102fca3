package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// CompanyController forwards company operations to the company service
// and company attachment operations to the files service.
type CompanyController struct {
	client *bridge.Client
	files  *bridge.Client
	log    logger.Logger
}

func NewCompanyController(client, files *bridge.Client, log logger.Logger) *CompanyController {
	return &CompanyController{client: client, files: files, log: log}
}

// Create handles POST /companies/create
func (co *CompanyController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Owner == "" {
		req.Owner = user.ID
	}

	env, err := co.client.SendExpect(c.Request.Context(), "company:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, co.log, env, err)
}

// Update handles PATCH /companies/:id/update
func (co *CompanyController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := co.client.Send(c.Request.Context(), "company:update", mutationPayload(user, c.Param("id"), req))
	relay(c, co.log, env, err)
}

// List handles GET /companies/list
func (co *CompanyController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := co.client.Send(c.Request.Context(), "company:list", listPayload(user, pagination))
	relay(c, co.log, env, err)
}

// Find handles GET /companies/:id/find
func (co *CompanyController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.client.Send(c.Request.Context(), "company:find", findPayload(user, c.Param("id")))
	relay(c, co.log, env, err)
}

// Checkout handles GET /companies/:id/checkout, validating a company
// against the state register before a deal is closed
func (co *CompanyController) Checkout(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.client.Send(c.Request.Context(), "company:checkout", findPayload(user, c.Param("id")))
	relay(c, co.log, env, err)
}

// Archive handles DELETE /companies/:id/archive
func (co *CompanyController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.client.Send(c.Request.Context(), "company:archive", archivePayload(user, c.Param("id")))
	relay(c, co.log, env, err)
}

// FileList handles GET /companies/attachments/:id/list
func (co *CompanyController) FileList(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.files.Send(c.Request.Context(), "files:company:list", findPayload(user, c.Param("id")))
	relay(c, co.log, env, err)
}

// DownloadFile handles GET /companies/attachments/:id/download/:fileID
func (co *CompanyController) DownloadFile(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.files.Send(c.Request.Context(), "files:company:download", map[string]interface{}{
		"id":     c.Param("id"),
		"fileId": c.Param("fileID"),
		"req":    user,
	})
	relay(c, co.log, env, err)
}

// DeleteFile handles DELETE /companies/attachments/:id/delete/:fileID
func (co *CompanyController) DeleteFile(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := co.files.Send(c.Request.Context(), "files:company:delete", map[string]interface{}{
		"id":     c.Param("id"),
		"fileId": c.Param("fileID"),
		"userId": user.ID,
	})
	relay(c, co.log, env, err)
}
