package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// TasksController forwards task operations to the company service. Tasks
// are the only resource with a hard delete instead of archiving.
type TasksController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewTasksController(client *bridge.Client, log logger.Logger) *TasksController {
	return &TasksController{client: client, log: log}
}

// Create handles POST /tasks/create
func (t *TasksController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := t.client.SendExpect(c.Request.Context(), "task:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, t.log, env, err)
}

// Update handles PATCH /tasks/:id/update
func (t *TasksController) Update(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := t.client.Send(c.Request.Context(), "task:update", mutationPayload(user, c.Param("id"), req))
	relay(c, t.log, env, err)
}

// List handles GET /tasks/list
func (t *TasksController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := t.client.Send(c.Request.Context(), "task:list", listPayload(user, pagination))
	relay(c, t.log, env, err)
}

// Find handles GET /tasks/:id/find
func (t *TasksController) Find(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := t.client.Send(c.Request.Context(), "task:find", findPayload(user, c.Param("id")))
	relay(c, t.log, env, err)
}

// Delete handles DELETE /tasks/:id/delete
func (t *TasksController) Delete(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := t.client.Send(c.Request.Context(), "task:delete", map[string]interface{}{
		"id":     c.Param("id"),
		"userId": user.ID,
	})
	relay(c, t.log, env, err)
}
