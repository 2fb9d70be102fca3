package controller

import (
	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// SettingsController forwards workspace settings operations to the
// settings service. Admin-only.
type SettingsController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewSettingsController(client *bridge.Client, log logger.Logger) *SettingsController {
	return &SettingsController{client: client, log: log}
}

// Set handles POST /settings/set, upserting one property
func (s *SettingsController) Set(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := s.client.Send(c.Request.Context(), "setting:set", map[string]interface{}{
		"property": req.Property,
		"value":    req.Value,
		"userId":   user.ID,
	})
	relay(c, s.log, env, err)
}

// List handles GET /settings/list
func (s *SettingsController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := s.client.Send(c.Request.Context(), "setting:list", map[string]interface{}{
		"req": user,
	})
	relay(c, s.log, env, err)
}

// Get handles GET /settings/:property
func (s *SettingsController) Get(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := s.client.Send(c.Request.Context(), "setting:get", map[string]interface{}{
		"property": c.Param("property"),
		"req":      user,
	})
	relay(c, s.log, env, err)
}
