package dietai

import (
	"context"
	"errors"

	"github.com/ManuelReschke/Dietly/app/models"
	"github.com/ManuelReschke/Dietly/app/repository"
	"gorm.io/gorm"
)

// AssignmentResult is what the quiz endpoint returns: the recommendation
// message plus the authoritative catalog row for the assigned plan.
type AssignmentResult struct {
	Message         string           `json:"message"`
	RecommendedPlan *models.DietPlan `json:"recommended_plan"`
}

// Service owns users.diet_plan_id: it is the only component that assigns a
// diet plan to a user.
type Service struct {
	scorer  Scorer
	users   repository.UserRepository
	catalog repository.CatalogRepository
}

// NewService creates a diet assignment service.
func NewService(scorer Scorer, users repository.UserRepository, catalog repository.CatalogRepository) *Service {
	return &Service{scorer: scorer, users: users, catalog: catalog}
}

// Recommend scores the quiz answers, persists the recommended plan on the
// user and returns the catalog entry for it. The plan name and description
// come from the catalog re-read, never from the scorer's echo. On any
// scoring error the user's assignment is left untouched.
func (s *Service) Recommend(ctx context.Context, userID uint, answers map[string]interface{}) (*AssignmentResult, error) {
	rec, err := s.scorer.Score(ctx, answers)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateDietPlan(userID, rec.RecommendedPlanID); err != nil {
		return nil, err
	}

	plan, err := s.catalog.GetDietPlan(rec.RecommendedPlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The scorer named a plan the catalog does not have.
			return nil, ErrInvalidScoringOutput
		}
		return nil, err
	}

	return &AssignmentResult{
		Message:         rec.Message,
		RecommendedPlan: plan,
	}, nil
}

// CurrentDiet resolves the user's assigned diet plan, or nil when the user
// has none yet. An unknown user is reported as unassigned, not as an error.
func (s *Service) CurrentDiet(ctx context.Context, userID uint) (*models.DietPlan, error) {
	_ = ctx
	user, err := s.users.GetByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.DietPlanID == nil {
		return nil, nil
	}

	plan, err := s.catalog.GetDietPlan(*user.DietPlanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}
