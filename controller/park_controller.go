package controller

import (
	"net/http"
	"strconv"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// ParkController forwards fuel park operations to the company service.
// A park belongs to one company and nests storage objects, which in turn
// nest fuel entries; every level has its own routes.
type ParkController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewParkController(client *bridge.Client, log logger.Logger) *ParkController {
	return &ParkController{client: client, log: log}
}

// Create handles POST /park/create/:company
func (p *ParkController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ParkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.SendExpect(c.Request.Context(), "park:create", map[string]interface{}{
		"cid": c.Param("company"),
		"parkData": map[string]interface{}{
			"company": c.Param("company"),
			"object":  "park",
			"author":  user.ID,
			"owner":   user.ID,
			"store":   req.Store,
		},
	}, http.StatusCreated)
	relay(c, p.log, env, err)
}

// AddStore handles PATCH /park/add/store/:parkId
func (p *ParkController) AddStore(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ParkStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:store:create", map[string]interface{}{
		"parkId":    c.Param("parkId"),
		"storeData": req,
		"req":       user,
	})
	relay(c, p.log, env, err)
}

// AddFuel handles PATCH /park/add/:parkId/fuel/:storeId
func (p *ParkController) AddFuel(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ParkFuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:fuel:create", map[string]interface{}{
		"parkId":   c.Param("parkId"),
		"storeId":  c.Param("storeId"),
		"fuelData": req,
		"req":      user,
	})
	relay(c, p.log, env, err)
}

// UpdateStore handles PATCH /park/update/:parkId/store/:storeId
func (p *ParkController) UpdateStore(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ParkStoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:store:update", map[string]interface{}{
		"parkId":    c.Param("parkId"),
		"storeId":   c.Param("storeId"),
		"storeData": req,
		"req":       user,
	})
	relay(c, p.log, env, err)
}

// UpdateFuel handles PATCH /park/update/:parkId/store/:storeId/fuel/:fuelId
func (p *ParkController) UpdateFuel(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ParkFuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:fuel:update", map[string]interface{}{
		"parkId":   c.Param("parkId"),
		"storeId":  c.Param("storeId"),
		"fuelId":   c.Param("fuelId"),
		"fuelData": req,
		"req":      user,
	})
	relay(c, p.log, env, err)
}

// List handles GET /park/list/:companyId. Besides pagination the route
// filters on active state and creation/update dates.
func (p *ParkController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	active, err := strconv.ParseBool(c.DefaultQuery("active", "true"))
	if err != nil {
		badRequest(c, "active must be true or false")
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:list", map[string]interface{}{
		"companyId":  c.Param("companyId"),
		"pagination": pagination,
		"req":        user,
		"active":     active,
		"createdAt":  c.Query("createdAt"),
		"updatedAt":  c.Query("updatedAt"),
	})
	relay(c, p.log, env, err)
}

// Find handles GET /park/find/:id
func (p *ParkController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:find", map[string]interface{}{
		"id":  c.Param("id"),
		"req": user,
	})
	relay(c, p.log, env, err)
}

// Archive handles DELETE /park/archive/:id
func (p *ParkController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	active, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	if err != nil {
		badRequest(c, "active must be true or false")
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:archive", map[string]interface{}{
		"id":     c.Param("id"),
		"active": active,
		"req":    user,
	})
	relay(c, p.log, env, err)
}

// DeleteStore handles DELETE /park/delete/:parkId/store/:storeId
func (p *ParkController) DeleteStore(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:store:delete", map[string]interface{}{
		"parkId":  c.Param("parkId"),
		"storeId": c.Param("storeId"),
		"req":     user,
	})
	relay(c, p.log, env, err)
}

// DeleteFuel handles DELETE /park/delete/:parkId/store/:storeId/fuel/:fuelId
func (p *ParkController) DeleteFuel(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := p.client.Send(c.Request.Context(), "park:fuel:delete", map[string]interface{}{
		"parkId":  c.Param("parkId"),
		"storeId": c.Param("storeId"),
		"fuelId":  c.Param("fuelId"),
		"req":     user,
	})
	relay(c, p.log, env, err)
}
