package mealplan

import (
	"math/rand"

	"github.com/ManuelReschke/Dietly/app/models"
)

// sampleWithoutReplacement picks up to count distinct meals uniformly at
// random. Independent calls are independent draws; stability within a day
// is layered on top via the plan cache, not here.
func sampleWithoutReplacement(meals []models.Meal, count int) []models.Meal {
	if count >= len(meals) {
		out := make([]models.Meal, len(meals))
		copy(out, meals)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	picked := make([]models.Meal, 0, count)
	for _, idx := range rand.Perm(len(meals))[:count] {
		picked = append(picked, meals[idx])
	}
	return picked
}
