package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/services"
	"github.com/arjn/careermatch/internal/middleware"
	"github.com/arjn/careermatch/internal/pkg/avatar"
)

// Uploads above this are rejected before decoding.
const maxAvatarUploadBytes = 10 << 20

// UserController handles account endpoints including the avatar pipeline
type UserController struct {
	userService   services.IUserService
	avatarService services.IAvatarService
	logger        zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.IUserService, avatarService services.IAvatarService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService:   userService,
		avatarService: avatarService,
		logger:        logger,
	}
}

// GetMe returns the caller's account
// @Summary Current account
// @Description Returns the account bound to the bearer token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Account"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := c.userService.GetMe(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UpdateMe applies partial account edits
// @Summary Update current account
// @Description Applies a partial update to the caller's account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated account"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.UpdateAccount(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UploadAvatar runs the crop-and-upload pipeline
// @Summary Upload avatar
// @Description Crops the uploaded image to the client's selection, scales it to 256x256 and stores it
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Source image (jpeg, png or gif)"
// @Param cropX formData number true "Selection X in displayed coordinates"
// @Param cropY formData number true "Selection Y in displayed coordinates"
// @Param cropWidth formData number true "Selection width in displayed coordinates"
// @Param cropHeight formData number true "Selection height in displayed coordinates"
// @Param displayWidth formData number true "Width the image was displayed at"
// @Param displayHeight formData number true "Height the image was displayed at"
// @Success 200 {object} dto.APIResponse{data=dto.AvatarUploadResponse} "New avatar URL"
// @Failure 400 {object} dto.ErrorResponse "Unsupported image or invalid crop geometry"
// @Router /users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	crop, err := bindCropRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "image file is required")))
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "image file is too large")))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "could not read image file")))
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "could not read image file")))
		return
	}

	resp, err := c.avatarService.Upload(ctx.Request.Context(), userID, imageData, crop)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Avatar upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteAvatar clears the caller's avatar
// @Summary Delete avatar
// @Description Removes the stored avatar and clears the account reference
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Avatar removed"
// @Router /users/me/avatar [delete]
func (c *UserController) DeleteAvatar(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.avatarService.Delete(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Avatar removed"}))
}

// bindCropRequest parses the crop geometry fields off the multipart form
func bindCropRequest(ctx *gin.Context) (avatar.CropRequest, error) {
	fields := []string{"cropX", "cropY", "cropWidth", "cropHeight", "displayWidth", "displayHeight"}
	values := make([]float64, len(fields))

	for i, name := range fields {
		raw := ctx.PostForm(name)
		if raw == "" {
			return avatar.CropRequest{}, fmt.Errorf("%s is required", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return avatar.CropRequest{}, fmt.Errorf("%s must be a number", name)
		}
		values[i] = v
	}

	return avatar.CropRequest{
		X:             values[0],
		Y:             values[1],
		Width:         values[2],
		Height:        values[3],
		DisplayWidth:  values[4],
		DisplayHeight: values[5],
	}, nil
}
