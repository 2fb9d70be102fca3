package controller

import (
	"net/http"
	"strconv"

	"crm-gateway/bridge"
	"crm-gateway/middelware"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	firstPage    = 1
	defaultLimit = 25
)

var queryValidator = validator.New()

// relay writes a bridge outcome as the HTTP response. Success relays the
// backend envelope unchanged; failure answers with the backend's own
// status, message and errors so diagnostics survive end-to-end.
func relay(c *gin.Context, log logger.Logger, env *models.Envelope, err error) {
	if err != nil {
		be := bridge.AsError(err)
		log.Debugf("relaying backend failure %d: %s", be.StatusCode, be.Message)
		c.JSON(be.StatusCode, models.ErrorResponse{
			StatusCode: be.StatusCode,
			Message:    be.Message,
			Errors:     be.Errors,
		})
		return
	}
	c.JSON(env.StatusCode, env)
}

// badRequest rejects a request the gateway itself could not accept
func badRequest(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request",
		Errors:     details,
	})
}

// parsePagination reads the list query parameters shared by every list
// route. Unparseable values fall back to defaults; an invalid sort
// direction is an error, matching the backend contract.
func parsePagination(c *gin.Context) (models.Pagination, error) {
	p := models.Pagination{Page: firstPage, Limit: defaultLimit}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		p.Offset = v
	}

	if sort := c.Query("sort"); sort != "" {
		if err := queryValidator.Var(sort, "oneof=asc desc ascending descending 1 -1"); err != nil {
			return p, err
		}
		p.Sort = sort
	}
	p.Field = c.Query("field")

	return p, nil
}

// authUser fetches the identity bound by the auth middleware. Guarded
// routes always carry one; a handler reached without it fails closed.
func authUser(c *gin.Context) (*models.AuthContext, bool) {
	user, ok := middelware.GetAuthContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    middelware.MsgAuthRequired,
		})
	}
	return user, ok
}

// listPayload shapes the message for every *:list pattern. The caller's
// ownership scope rides along as searchFilter so restricted roles only
// see their own records.
func listPayload(user *models.AuthContext, p models.Pagination) map[string]interface{} {
	return map[string]interface{}{
		"searchFilter": user.FilterQuery,
		"pagination":   p,
		"req":          user,
	}
}

// findPayload shapes the message for every *:find pattern
func findPayload(user *models.AuthContext, id string) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"searchFilter": user.FilterQuery,
		"req":          user,
	}
}

// mutationPayload shapes update-like messages, tagging the change with
// the acting user
func mutationPayload(user *models.AuthContext, id string, data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"userId": user.ID,
		"data":   data,
	}
}

// archivePayload shapes soft-delete messages
func archivePayload(user *models.AuthContext, id string) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"userId": user.ID,
		"active": false,
	}
}
