package handlers

import "github.com/gin-gonic/gin"

// Routes groups every handler the API serves.
type Routes struct {
	Auth          *AuthHandler
	Jobs          *JobHandler
	Applications  *ApplicationHandler
	Payments      *PaymentHandler
	Notifications *NotificationHandler
	AI            *AIHandler

	// RequireAuth guards the routes that act on behalf of a user.
	RequireAuth gin.HandlerFunc
}

// Mount registers the routes on the /api group.
func (r *Routes) Mount(api *gin.RouterGroup) {
	api.GET("/health", HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.Auth.Register)
		authGroup.POST("", r.Auth.Login)
		authGroup.POST("/login", r.Auth.Login)
		authGroup.GET("/profile", r.RequireAuth, r.Auth.Profile)
		authGroup.PUT("/profile", r.RequireAuth, r.Auth.UpdateProfile)
	}

	api.GET("/users/email/:email", r.Auth.UserByEmail)

	jobs := api.Group("/jobs")
	{
		jobs.GET("", r.Jobs.ListJobs)
		jobs.GET("/feed", r.Jobs.GetFeed)
		jobs.POST("/create", r.RequireAuth, r.Jobs.CreateJob)
	}

	apps := api.Group("/applications")
	{
		apps.POST("/apply", r.Applications.Apply)
		apps.GET("/:userId", r.Applications.List)
	}

	payments := api.Group("/payments")
	{
		payments.GET("/fee", r.Payments.Fee)
		payments.POST("/log", r.RequireAuth, r.Payments.Log)
		payments.GET("/my", r.RequireAuth, r.Payments.Mine)
	}

	api.GET("/notifications/global", r.Notifications.Global)

	ai := api.Group("/ai")
	{
		ai.POST("/extract-skills", r.AI.ExtractSkills)
		ai.POST("/match-score", r.AI.MatchScore)
	}
}
