package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack-server/internal/repositories"
	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

// ActivityHdl groups the activity handlers. All of them run behind the auth
// gate and operate on the calling user's activities only.
type ActivityHdl interface {
	GetActivities(c *gin.Context)
	GetActivityById(c *gin.Context)
	GetActivitiesByType(c *gin.Context)
	GetLastActivities(c *gin.Context)
	CreateActivity(c *gin.Context)
	UpdateActivity(c *gin.Context)
	DeleteActivity(c *gin.Context)
}

// ActivityHandler implements ActivityHdl on top of the repositories.
type ActivityHandler struct {
	activityRepo repositories.ActivityRepo
	userRepo     repositories.UserRepo
}

func NewActivityHandler(activityRepo repositories.ActivityRepo, userRepo repositories.UserRepo) ActivityHdl {
	return &ActivityHandler{
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// GetActivities lists all of the caller's activities, oldest first.
func (handler *ActivityHandler) GetActivities(c *gin.Context) {
	ownerID := c.GetInt64(utils.UserIdKey)

	activities, err := handler.activityRepo.GetAll(c.Request.Context(), ownerID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, activities, http.StatusOK)
}

// GetActivityById returns a single activity owned by the caller.
func (handler *ActivityHandler) GetActivityById(c *gin.Context) {
	ownerID := c.GetInt64(utils.UserIdKey)

	activityID, err := strconv.ParseInt(c.Param(utils.ActivityIdKey), 10, 64)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	activity, err := handler.activityRepo.GetByID(c.Request.Context(), activityID, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, activity, http.StatusOK)
}

// GetActivitiesByType lists the caller's activities of a single type.
func (handler *ActivityHandler) GetActivitiesByType(c *gin.Context) {
	ownerID := c.GetInt64(utils.UserIdKey)

	activityType := schemas.ActivityType(c.Param(utils.ActivityTypeKey))
	if !activityType.Valid() {
		err := errors.New("unsupported activity type " + string(activityType))
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	activities, err := handler.activityRepo.GetAllByType(c.Request.Context(), ownerID, activityType)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, activities, http.StatusOK)
}

// GetLastActivities returns the caller's most recent activities, newest
// first. With one path segment that segment is the amount; with two, the
// first is an activity type filter and the second the amount.
func (handler *ActivityHandler) GetLastActivities(c *gin.Context) {
	ownerID := c.GetInt64(utils.UserIdKey)

	var (
		rawAmount    string
		activityType schemas.ActivityType
	)
	if amountParam := c.Param(utils.AmountKey); amountParam != "" {
		rawAmount = amountParam
		activityType = schemas.ActivityType(c.Param(utils.LenFirstKey))
		if !activityType.Valid() {
			err := errors.New("unsupported activity type " + string(activityType))
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			return
		}
	} else {
		rawAmount = c.Param(utils.LenFirstKey)
	}

	amount, err := strconv.Atoi(rawAmount)
	if err != nil || amount <= 0 {
		if err == nil {
			err = errors.New("amount must be positive")
		}
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	activities, err := handler.activityRepo.GetLastX(c.Request.Context(), ownerID, amount, activityType)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, activities, http.StatusOK)
}

// CreateActivity records a new activity for the caller. The token identity is
// re-checked against the store before anything is written.
func (handler *ActivityHandler) CreateActivity(c *gin.Context) {
	user, ok := handler.currentUser(c)
	if !ok {
		return
	}

	createRequest := c.MustGet(utils.SanitizedPayloadKey).(*schemas.CreateActivityRequest)

	dateTime, err := utils.ParseDateTime(createRequest.DateTime)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	activity := &schemas.Activity{
		Type:        schemas.ActivityType(createRequest.Type),
		Description: createRequest.Description,
		Duration:    createRequest.Duration,
		DateTime:    dateTime,
		Location:    createRequest.Location,
		UserID:      user.ID,
	}

	created, err := handler.activityRepo.Create(c.Request.Context(), activity)
	if err != nil {
		utils.WriteAndLogError(c, schemas.OperationFailed, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, created, http.StatusCreated)
}

// UpdateActivity applies a partial update to one of the caller's activities.
// Fields absent from the payload keep their stored value.
func (handler *ActivityHandler) UpdateActivity(c *gin.Context) {
	user, ok := handler.currentUser(c)
	if !ok {
		return
	}

	activityID, err := strconv.ParseInt(c.Param(utils.ActivityIdKey), 10, 64)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	updateRequest := c.MustGet(utils.SanitizedPayloadKey).(*schemas.UpdateActivityRequest)

	patch := &schemas.ActivityPatch{
		Description: updateRequest.Description,
		Duration:    updateRequest.Duration,
		Location:    updateRequest.Location,
	}
	if updateRequest.Type != nil {
		activityType := schemas.ActivityType(*updateRequest.Type)
		patch.Type = &activityType
	}
	if updateRequest.DateTime != nil {
		dateTime, err := utils.ParseDateTime(*updateRequest.DateTime)
		if err != nil {
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			return
		}
		patch.DateTime = &dateTime
	}

	updated, err := handler.activityRepo.Update(c.Request.Context(), activityID, user.ID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.OperationFailed, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, updated, http.StatusOK)
}

// DeleteActivity removes one of the caller's activities. A miss on the
// preceding lookup is a not-found, a miss on the delete itself is a failure.
func (handler *ActivityHandler) DeleteActivity(c *gin.Context) {
	ownerID := c.GetInt64(utils.UserIdKey)

	activityID, err := strconv.ParseInt(c.Param(utils.ActivityIdKey), 10, 64)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
		return
	}

	if _, err := handler.activityRepo.GetByID(c.Request.Context(), activityID, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	deleted, err := handler.activityRepo.Delete(c.Request.Context(), activityID, ownerID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.OperationFailed, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogDto(c, deleted, http.StatusOK)
}

// currentUser re-derives the caller from the token claims. A token whose
// identity no longer matches a stored user fails the request with 401.
func (handler *ActivityHandler) currentUser(c *gin.Context) (*schemas.User, bool) {
	ownerID := c.GetInt64(utils.UserIdKey)
	email := c.GetString(utils.EmailKey)

	user, err := handler.userRepo.GetCurrent(c.Request.Context(), ownerID, email)
	if err != nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
		return nil, false
	}
	return user, true
}
