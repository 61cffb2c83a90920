// Package routes wires controllers onto the HTTP router
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjn/careermatch/internal/app/controllers"
	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	onboardingController *controllers.OnboardingController,
	userController *controllers.UserController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	adminSignupPath string,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)

		// The privileged signup lives behind a configured path segment
		// rather than a fixed route name.
		auth.POST("/"+adminSignupPath, authController.RegisterAdmin)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Reachable before email verification so clients can poll state.
		authenticated.GET("/users/me", userController.GetMe)
		authenticated.GET("/onboarding/status", onboardingController.Status)

		verified := authenticated.Group("")
		verified.Use(authMiddleware.EmailVerificationRequired())
		{
			onboarding := verified.Group("/onboarding")
			{
				onboarding.POST("/student", onboardingController.CompleteStudent)
				onboarding.POST("/host", onboardingController.CompleteHost)
			}

			users := verified.Group("/users")
			{
				users.PATCH("/me", userController.UpdateMe)
				users.POST("/me/avatar", userController.UploadAvatar)
				users.DELETE("/me/avatar", userController.DeleteAvatar)
			}

			profiles := verified.Group("/profiles")
			{
				profiles.GET("/student/me", profileController.GetStudentProfile)
				profiles.PATCH("/student/me", profileController.UpdateStudentProfile)
				profiles.GET("/host/me", profileController.GetHostProfile)
				profiles.PATCH("/host/me", profileController.UpdateHostProfile)
			}

			admin := verified.Group("/admin")
			admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				admin.GET("/users", adminController.ListUsers)
				admin.PATCH("/hosts/:userId/verify", adminController.VerifyHost)
			}
		}
	}
}
