package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/services"
	"github.com/arjn/careermatch/internal/middleware"
)

// AdminController exposes admin-only operations
type AdminController struct {
	userService services.IUserService
	logger      zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(userService services.IUserService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers returns a page of accounts
// @Summary List accounts
// @Description Paged account listing with an optional role filter
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (student, host, admin)"
// @Param page query int false "1-based page number"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Accounts"
// @Failure 403 {object} dto.ErrorResponse "Not an administrator"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var query dto.UserListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.ListUsers(ctx.Request.Context(), &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// VerifyHost marks a host organization as verified
// @Summary Verify a host organization
// @Description Flips the verified flag on a host profile. This is the only path that sets it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Host account id"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyHostResponse} "Verification state"
// @Failure 403 {object} dto.ErrorResponse "Not an administrator"
// @Failure 404 {object} dto.ErrorResponse "No host profile for that account"
// @Router /admin/hosts/{userId}/verify [patch]
func (c *AdminController) VerifyHost(ctx *gin.Context) {
	hostUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "userId must be a UUID")))
		return
	}

	resp, err := c.userService.VerifyHost(ctx.Request.Context(), hostUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	adminID, _ := middleware.GetUserID(ctx)
	c.logger.Info().
		Str("adminID", adminID.String()).
		Str("hostUserID", hostUserID.String()).
		Msg("Host verification granted")

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
