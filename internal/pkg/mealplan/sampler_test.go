package mealplan

import (
	"testing"

	"github.com/ManuelReschke/Dietly/app/models"
)

func catalogOf(n int) []models.Meal {
	meals := make([]models.Meal, n)
	for i := range meals {
		meals[i] = models.Meal{ID: uint(i + 1), MealName: string(rune('A' + i))}
	}
	return meals
}

func TestSampleWithoutReplacement_Distinct(t *testing.T) {
	meals := catalogOf(10)

	for i := 0; i < 50; i++ {
		picked := sampleWithoutReplacement(meals, 3)
		if len(picked) != 3 {
			t.Fatalf("expected 3 meals, got %d", len(picked))
		}
		seen := map[uint]bool{}
		for _, m := range picked {
			if seen[m.ID] {
				t.Fatalf("meal %d picked twice in one draw", m.ID)
			}
			seen[m.ID] = true
			if m.ID == 0 || m.ID > 10 {
				t.Fatalf("meal %d not from the source catalog", m.ID)
			}
		}
	}
}

func TestSampleWithoutReplacement_SmallCatalog(t *testing.T) {
	meals := catalogOf(2)

	picked := sampleWithoutReplacement(meals, 3)
	if len(picked) != 2 {
		t.Fatalf("expected the whole catalog when it is smaller than count, got %d", len(picked))
	}
	if picked[0].ID == picked[1].ID {
		t.Fatalf("expected distinct meals")
	}
}

func TestSampleWithoutReplacement_Empty(t *testing.T) {
	if picked := sampleWithoutReplacement(nil, 3); len(picked) != 0 {
		t.Fatalf("expected no meals from an empty catalog, got %d", len(picked))
	}
}
