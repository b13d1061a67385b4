package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/interfaces"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
	"github.com/UnyteAfrica/unyte-backoffice/internal/handler/http/middleware"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/security"
	"github.com/UnyteAfrica/unyte-backoffice/internal/service"
)

// SetupRouter wires every HTTP route. All collaborators arrive here
// explicitly; nothing reaches for globals.
func SetupRouter(
	authService *service.AuthService,
	pricingService interfaces.PricingService,
	tokens *security.TokenManager,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	authHandler := NewAuthHandler(logger, authService)
	inviteHandler := NewInviteHandler(logger, authService)
	pricingHandler := NewPricingHandler(logger, pricingService)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-otp", authHandler.VerifyOTP)
			auth.POST("/resend-otp", authHandler.ResendOTP)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/register/agent", authHandler.RegisterAgent)
			auth.POST("/register/merchant", authHandler.RegisterMerchant)
			auth.POST("/register/insurer", authHandler.RegisterInsurer)
		}

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(tokens, logger))
		{
			invites := authenticated.Group("/invites")
			invites.Use(middleware.RequireRole(models.RoleInsurer))
			{
				invites.POST("", inviteHandler.InviteAgent)
				invites.POST("/bulk", inviteHandler.BulkInvite)
				invites.GET("", inviteHandler.ListInvites)
			}

			authenticated.GET("/products", pricingHandler.ListProducts)

			selling := authenticated.Group("")
			selling.Use(middleware.RequireRole(models.RoleAgent, models.RoleMerchant))
			{
				selling.POST("/quotes", pricingHandler.GetQuote)
				selling.POST("/policies", pricingHandler.SellPolicy)
			}
		}
	}

	return router
}
