package controller

import (
	"crm-gateway/bridge"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// ActivityController forwards read-only audit feed queries to the
// company service. Entries are written by the backends themselves, the
// gateway never appends.
type ActivityController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewActivityController(client *bridge.Client, log logger.Logger) *ActivityController {
	return &ActivityController{client: client, log: log}
}

// List handles GET /activity/list
func (a *ActivityController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := a.client.Send(c.Request.Context(), "activity:list", listPayload(user, pagination))
	relay(c, a.log, env, err)
}

// Find handles GET /activity/:id/find
func (a *ActivityController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := a.client.Send(c.Request.Context(), "activity:find", findPayload(user, c.Param("id")))
	relay(c, a.log, env, err)
}
