package controller

import (
	"crm-gateway/bridge"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// FilesController forwards the global stored-file listing to the files
// service. Per-resource attachment routes live on their owning
// controllers; this is the cross-resource view.
type FilesController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewFilesController(client *bridge.Client, log logger.Logger) *FilesController {
	return &FilesController{client: client, log: log}
}

// List handles GET /files
func (f *FilesController) List(c *gin.Context) {
	if _, ok := authUser(c); !ok {
		return
	}

	env, err := f.client.Send(c.Request.Context(), "files:list", map[string]interface{}{})
	relay(c, f.log, env, err)
}
