package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/Dietly/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))

	// auth
	api.Post("/signup", controllers.HandleSignup)
	api.Post("/login", controllers.HandleLogin)

	// catalogs
	api.Get("/plans", controllers.HandleListSubscriptionPlans)
	api.Get("/diet-plans", controllers.HandleListDietPlans)

	// diet assignment
	api.Post("/ai-diet", controllers.HandleAIDietRecommendation)
	api.Get("/current-diet/:userId", controllers.HandleCurrentDiet)

	// subscriptions
	api.Get("/subscriptions/current/:userId", controllers.HandleCurrentSubscription)
	api.Post("/subscribe", controllers.HandleSubscribe)

	// meals
	api.Get("/daily-meal-plan/:userId", controllers.HandleDailyMealPlan)

	// delivery
	api.Get("/delivery/:distanceKm", controllers.HandleDeliveryETA)

	// analytics dashboards
	api.Get("/analytics/subscriptions", controllers.HandleAnalyticsSubscriptions)
	api.Get("/analytics/diet-plans", controllers.HandleAnalyticsDietPlans)
	api.Get("/analytics/weekly-subs", controllers.HandleAnalyticsWeeklySubs)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
