package routes

import (
	"crm-backend/internal/api/handlers"
	"crm-backend/internal/api/middleware"
	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	contactRepo := repository.NewContactRepository(db)
	dealRepo := repository.NewDealRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	txManager := repository.NewTransactionManager(db)

	// Cross-entity reference validation shared by deal, contact and lead services
	refValidator := service.NewReferenceValidator(userRepo, accountRepo, contactRepo)

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, userRepo, txManager, validator)
	userService := service.NewUserService(userRepo, txManager)
	accountService := service.NewAccountService(accountRepo, validator)
	contactService := service.NewContactService(contactRepo, refValidator, txManager, validator)
	dealService := service.NewDealService(dealRepo, refValidator, validator)
	leadService := service.NewLeadService(leadRepo, refValidator, txManager, validator)

	// Initialize auth
	authService := auth.NewAuthService(&auth.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.JWTExpiry(),
	}, userRepo, validator)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	contactHandler := handlers.NewContactHandler(contactService)
	dealHandler := handlers.NewDealHandler(dealService)
	leadHandler := handlers.NewLeadHandler(leadService)

	// Health check
	router.GET("/health", healthHandler.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Auth routes (no token required)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Everything below requires a valid bearer token
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			organizations := protected.Group("/organizations")
			{
				organizations.POST("", organizationHandler.CreateOrganization)
				organizations.GET("/:id", organizationHandler.GetOrganization)
				organizations.PUT("/:id/owner", organizationHandler.ChangeOwner)
				organizations.DELETE("/:id", organizationHandler.DeleteOrganization)
				organizations.DELETE("/:id/users/:user_id", organizationHandler.RemoveUser)
			}

			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.GetMe)
				users.GET("", userHandler.ListUsers)
				users.GET("/:id", userHandler.GetUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			accounts := protected.Group("/accounts")
			{
				accounts.POST("", accountHandler.CreateAccount)
				accounts.GET("", accountHandler.ListAccounts)
				accounts.GET("/:id", accountHandler.GetAccount)
				accounts.PUT("/:id", accountHandler.UpdateAccount)
				accounts.DELETE("/:id", accountHandler.DeleteAccount)
			}

			contacts := protected.Group("/contacts")
			{
				contacts.POST("", contactHandler.CreateContact)
				contacts.GET("", contactHandler.ListContacts)
				contacts.GET("/:id", contactHandler.GetContact)
				contacts.PUT("/:id", contactHandler.UpdateContact)
				contacts.DELETE("/:id", contactHandler.DeleteContact)
			}

			deals := protected.Group("/deals")
			{
				deals.POST("", dealHandler.CreateDeal)
				deals.GET("", dealHandler.ListDeals)
				deals.GET("/:id", dealHandler.GetDeal)
				deals.PUT("/:id", dealHandler.UpdateDeal)
				deals.DELETE("/:id", dealHandler.DeleteDeal)
			}

			leads := protected.Group("/leads")
			{
				leads.POST("", leadHandler.CreateLead)
				leads.GET("", leadHandler.ListLeads)
				leads.GET("/:id", leadHandler.GetLead)
				leads.PUT("/:id", leadHandler.UpdateLead)
				leads.PUT("/:id/status", leadHandler.ChangeLeadStatus)
				leads.POST("/:id/convert", leadHandler.ConvertLead)
				leads.DELETE("/:id", leadHandler.DeleteLead)
			}
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Endpoint not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)

	return router
}
