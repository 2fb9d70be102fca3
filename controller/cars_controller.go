package controller

import (
	"net/http"
	"strconv"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// CarsController forwards fleet vehicle operations to the company
// service and vehicle attachment operations to the files service.
type CarsController struct {
	client *bridge.Client
	files  *bridge.Client
	log    logger.Logger
}

func NewCarsController(client, files *bridge.Client, log logger.Logger) *CarsController {
	return &CarsController{client: client, files: files, log: log}
}

// Create handles POST /cars/create/:company. The vehicle is bound to the
// company from the path; an explicit owner query overrides the caller.
func (ca *CarsController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.Company = c.Param("company")
	req.Owner = c.Query("owner")
	if req.Owner == "" {
		req.Owner = user.ID
	}

	env, err := ca.client.SendExpect(c.Request.Context(), "cars:create", req, http.StatusCreated)
	relay(c, ca.log, env, err)
}

// List handles GET /cars/list, optionally narrowed to one company
func (ca *CarsController) List(c *gin.Context) {
	if _, ok := authUser(c); !ok {
		return
	}

	payload := map[string]interface{}{}
	if company := c.Query("company"); company != "" {
		payload["company"] = company
	}

	env, err := ca.client.Send(c.Request.Context(), "cars:list", payload)
	relay(c, ca.log, env, err)
}

// Find handles GET /cars/:id/find
func (ca *CarsController) Find(c *gin.Context) {
	if _, ok := authUser(c); !ok {
		return
	}

	env, err := ca.client.Send(c.Request.Context(), "cars:find", c.Param("id"))
	relay(c, ca.log, env, err)
}

// Update handles PATCH /cars/:id/update. Owner and company reassignment
// go through query parameters, the body carries the vehicle data.
func (ca *CarsController) Update(c *gin.Context) {
	if _, ok := authUser(c); !ok {
		return
	}

	var req models.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if owner := c.Query("owner"); owner != "" {
		req.Owner = owner
	}
	if company := c.Query("company"); company != "" {
		req.Company = company
	}

	env, err := ca.client.Send(c.Request.Context(), "cars:update", map[string]interface{}{
		"id":   c.Param("id"),
		"data": req,
	})
	relay(c, ca.log, env, err)
}

// ChangeStatus handles DELETE /cars/:id/status. The active query toggles
// between archiving and restoring; omitted means archive.
func (ca *CarsController) ChangeStatus(c *gin.Context) {
	if _, ok := authUser(c); !ok {
		return
	}

	active, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	if err != nil {
		badRequest(c, "active must be true or false")
		return
	}

	env, err := ca.client.Send(c.Request.Context(), "cars:archive", map[string]interface{}{
		"id":     c.Param("id"),
		"active": active,
	})
	relay(c, ca.log, env, err)
}

// FileList handles GET /cars/attachments/:id/list
func (ca *CarsController) FileList(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := ca.files.Send(c.Request.Context(), "files:cars:list", map[string]interface{}{
		"id":    c.Param("id"),
		"owner": user.ID,
	})
	relay(c, ca.log, env, err)
}

// DownloadFile handles GET /cars/attachments/:id/download/:fileID
func (ca *CarsController) DownloadFile(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := ca.files.Send(c.Request.Context(), "files:cars:download", map[string]interface{}{
		"id":    c.Param("id"),
		"file":  c.Param("fileID"),
		"owner": user,
	})
	relay(c, ca.log, env, err)
}

// DeleteFile handles DELETE /cars/attachments/:id/delete/:fileID
func (ca *CarsController) DeleteFile(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := ca.files.Send(c.Request.Context(), "files:cars:delete", map[string]interface{}{
		"id":    c.Param("id"),
		"file":  c.Param("fileID"),
		"owner": user,
	})
	relay(c, ca.log, env, err)
}
