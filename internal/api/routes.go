package api

import (
	"net/http"

	"github.com/Azim18821/track3-sub004/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	coachService service.CoachService,
) {
	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(coachService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		protected.PUT("/me/biometrics", authHandler.UpdateBiometrics)

		// --- AI Coach Routes ---
		coachGroup := protected.Group("/coach")
		{
			coachGroup.POST("/generate", coachHandler.Generate)
			coachGroup.GET("/status", coachHandler.Status)
			coachGroup.POST("/continue", coachHandler.Continue)
			coachGroup.POST("/cancel", coachHandler.Cancel)
			coachGroup.POST("/reset", coachHandler.Reset)
			coachGroup.GET("/result", coachHandler.Result)
			coachGroup.GET("/plans", coachHandler.Plans)
		}
	}
}
