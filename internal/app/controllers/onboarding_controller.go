package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/services"
	"github.com/arjn/careermatch/internal/middleware"
)

// OnboardingController exposes the profile-completion endpoints
type OnboardingController struct {
	onboardingService services.IOnboardingService
	logger            zerolog.Logger
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService services.IOnboardingService, logger zerolog.Logger) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
		logger:            logger,
	}
}

// Status reports the caller's position in the completion flow
// @Summary Onboarding status
// @Description Returns the account's completion state and where the client should navigate
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingStatusResponse} "Current state"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /onboarding/status [get]
func (c *OnboardingController) Status(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	status, err := c.onboardingService.Status(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// CompleteStudent finishes onboarding as a student
// @Summary Complete student onboarding
// @Description Records the academic profile, sets the account role to student and reports the home surface
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentProfileRequest true "Academic profile"
// @Success 201 {object} dto.APIResponse{data=dto.CompleteProfileResponse} "Onboarding complete"
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 403 {object} dto.ErrorResponse "Email not verified"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /onboarding/student [post]
func (c *OnboardingController) CompleteStudent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.StudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.onboardingService.CompleteStudent(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Student onboarding rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// CompleteHost finishes onboarding as a host organization
// @Summary Complete host onboarding
// @Description Records the organization profile, sets the account role to host and reports the home surface
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.HostProfileRequest true "Organization profile"
// @Success 201 {object} dto.APIResponse{data=dto.CompleteProfileResponse} "Onboarding complete"
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 403 {object} dto.ErrorResponse "Email not verified"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /onboarding/host [post]
func (c *OnboardingController) CompleteHost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.HostProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.onboardingService.CompleteHost(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Host onboarding rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}
