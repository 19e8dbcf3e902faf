package controllers

import (
	"sync"

	"github.com/ManuelReschke/Dietly/app/repository"
	"github.com/ManuelReschke/Dietly/internal/pkg/database"
	"github.com/ManuelReschke/Dietly/internal/pkg/delivery"
	"github.com/ManuelReschke/Dietly/internal/pkg/dietai"
	"github.com/ManuelReschke/Dietly/internal/pkg/mealplan"
	"github.com/ManuelReschke/Dietly/internal/pkg/payment"
	"github.com/ManuelReschke/Dietly/internal/pkg/subscription"
)

// Handlers are plain functions, so the services they share live here as
// lazily built singletons wired from the environment.
var (
	servicesOnce sync.Once

	dietService         *dietai.Service
	mealService         *mealplan.Service
	subscriptionService *subscription.Service
	etaEstimator        delivery.Estimator
)

func setupServices() {
	servicesOnce.Do(func() {
		repos := repository.GetGlobalFactory().GetRepositories()

		dietService = dietai.NewService(dietai.NewExecScorerFromEnv(), repos.User, repos.Catalog)
		mealService = mealplan.NewService(repos.Catalog, repos.DailyMeal, dietService)
		subscriptionService = subscription.NewServiceFromDB(
			database.GetDB(),
			payment.NewExecSettlerFromEnv(),
			mealService,
		)
		etaEstimator = delivery.NewExecEstimatorFromEnv()
	})
}

func getDietService() *dietai.Service {
	setupServices()
	return dietService
}

func getMealService() *mealplan.Service {
	setupServices()
	return mealService
}

func getSubscriptionService() *subscription.Service {
	setupServices()
	return subscriptionService
}

func getETAEstimator() delivery.Estimator {
	setupServices()
	return etaEstimator
}
