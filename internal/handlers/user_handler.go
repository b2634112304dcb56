// Package handlers implements the HTTP handlers behind the routes. Handlers
// read the validated payload and the token identity from the request context
// and delegate persistence to the repositories.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-server/internal/managers"
	"fittrack-server/internal/repositories"
	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

// UserHdl groups the user-facing handlers.
type UserHdl interface {
	RegisterUser(c *gin.Context)
	LoginUser(c *gin.Context)
	GetAllUsers(c *gin.Context)
}

// UserHandler implements UserHdl on top of the user repository.
type UserHandler struct {
	userRepo repositories.UserRepo
	jwtMgr   managers.JWTMgr
}

func NewUserHandler(userRepo repositories.UserRepo, jwtMgr managers.JWTMgr) UserHdl {
	return &UserHandler{
		userRepo: userRepo,
		jwtMgr:   jwtMgr,
	}
}

// RegisterUser creates a new user account from the validated registration
// payload. The password is hashed before it is handed to the store.
func (handler *UserHandler) RegisterUser(c *gin.Context) {
	registrationRequest := c.MustGet(utils.SanitizedPayloadKey).(*schemas.RegistrationRequest)

	validator := utils.GetValidator()
	if !validator.VerifyEmail(registrationRequest.Email) {
		err := errors.New("email could not be verified: " + registrationRequest.Email)
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	hash, err := utils.HashPassword(registrationRequest.Password)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	user := &schemas.User{
		UserName: registrationRequest.UserName,
		Email:    registrationRequest.Email,
		Password: hash,
	}
	if _, err := handler.userRepo.Register(c.Request.Context(), user); err != nil {
		utils.WriteAndLogError(c, schemas.OperationFailed, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, "User has been created.", http.StatusCreated)
}

// LoginUser verifies the credentials and issues a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (handler *UserHandler) LoginUser(c *gin.Context) {
	loginRequest := c.MustGet(utils.SanitizedPayloadKey).(*schemas.LoginRequest)

	user, err := handler.userRepo.GetByEmail(c.Request.Context(), loginRequest.Email)
	if err != nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
		return
	}

	if err := utils.CheckPassword(loginRequest.Password, user.Password); err != nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
		return
	}

	claims := handler.jwtMgr.GenerateClaims(user.ID, user.Email)
	token, err := handler.jwtMgr.GenerateJWT(claims)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, token, http.StatusOK)
}

// GetAllUsers lists every registered user. The admin gate runs before this
// handler, so no identity check happens here.
func (handler *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := handler.userRepo.GetAll(c.Request.Context())
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, users, http.StatusOK)
}
