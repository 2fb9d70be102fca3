package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
)

// UserController forwards account and credential operations to the user
// service. Registration, login, verification and the password flows are
// public; account administration requires the Admin role.
type UserController struct {
	client *bridge.Client
	log    logger.Logger
}

func NewUserController(client *bridge.Client, log logger.Logger) *UserController {
	return &UserController{client: client, log: log}
}

// Registration handles POST /users/registration
func (u *UserController) Registration(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.SendExpect(c.Request.Context(), "user:register", req, http.StatusCreated)
	relay(c, u.log, env, err)
}

// Login handles POST /users/login. The account type distinguishes
// console accounts from other credential stores held by the same service.
func (u *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.Send(c.Request.Context(), "user:login", map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
		"type":     "users",
	})
	relay(c, u.log, env, err)
}

// Verify handles GET /users/verify, confirming an emailed token
func (u *UserController) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		badRequest(c, "token query parameter is required")
		return
	}

	env, err := u.client.Send(c.Request.Context(), "user:verify", map[string]interface{}{
		"token": token,
	})
	relay(c, u.log, env, err)
}

// ForgotPassword handles PATCH /users/password/forgot
func (u *UserController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.Send(c.Request.Context(), "password:forgot", req)
	relay(c, u.log, env, err)
}

// ChangePassword handles PATCH /users/password/change for the caller's
// own account
func (u *UserController) ChangePassword(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.Send(c.Request.Context(), "password:change", map[string]interface{}{
		"userId":      user.ID,
		"password":    req.Password,
		"newPassword": req.NewPassword,
	})
	relay(c, u.log, env, err)
}

// RefreshToken handles POST /users/refresh
func (u *UserController) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.Send(c.Request.Context(), "user:refresh:token", req)
	relay(c, u.log, env, err)
}

// Create handles POST /users/create, provisioning an account on behalf
// of another user
func (u *UserController) Create(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.SendExpect(c.Request.Context(), "user:create", map[string]interface{}{
		"userId": user.ID,
		"data":   req,
	}, http.StatusCreated)
	relay(c, u.log, env, err)
}

// List handles GET /users/list
func (u *UserController) List(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	pagination, err := parsePagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	env, err := u.client.Send(c.Request.Context(), "user:list", listPayload(user, pagination))
	relay(c, u.log, env, err)
}

// Archive handles DELETE /users/:id/archive
func (u *UserController) Archive(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	env, err := u.client.Send(c.Request.Context(), "user:archive", archivePayload(user, c.Param("id")))
	relay(c, u.log, env, err)
}
