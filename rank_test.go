package paintmix

import "testing"

func rankedRecipe(score float64, paints ...*Paint) Recipe {
	comps := make([]MixtureComponent, len(paints))
	for i, p := range paints {
		comps[i] = MixtureComponent{Paint: p, Proportion: 1 / float64(len(paints))}
	}
	return Recipe{Components: comps, MatchPercentage: score}
}

func TestRankRecipesDedupAndOrder(t *testing.T) {
	a := strengthPaint("a", StrengthMedium, LAB{50, 0, 0})
	b := strengthPaint("b", StrengthMedium, LAB{60, 0, 0})
	c := strengthPaint("c", StrengthMedium, LAB{70, 0, 0})

	pool := []Recipe{
		rankedRecipe(70, a, b),
		rankedRecipe(95, c),
		rankedRecipe(80, b, a), // same paint set as the first, better ratio
		rankedRecipe(85, a, c),
	}

	got := rankRecipes(pool, 10)
	if len(got) != 3 {
		t.Fatalf("got %d recipes, want 3 after dedup", len(got))
	}
	if got[0].MatchPercentage != 95 || got[1].MatchPercentage != 85 || got[2].MatchPercentage != 80 {
		t.Errorf("order = %v, %v, %v; want 95, 85, 80",
			got[0].MatchPercentage, got[1].MatchPercentage, got[2].MatchPercentage)
	}

	// The duplicate set keeps its highest-scoring variant, not the one
	// the search happened to discover first.
	if got[2].Components[0].Paint.ID != "b" {
		t.Errorf("dedup kept the wrong variant: %v", got[2].Components[0].Paint.ID)
	}
}

func TestRankRecipesTieBreakFewerComponents(t *testing.T) {
	a := strengthPaint("a", StrengthMedium, LAB{50, 0, 0})
	b := strengthPaint("b", StrengthMedium, LAB{60, 0, 0})

	pool := []Recipe{
		rankedRecipe(90, a, b),
		rankedRecipe(90, a),
	}
	got := rankRecipes(pool, 10)
	if len(got) != 2 {
		t.Fatalf("got %d recipes, want 2", len(got))
	}
	if len(got[0].Components) != 1 {
		t.Error("equal scores should rank the single-paint recipe first")
	}
}

func TestRankRecipesTruncates(t *testing.T) {
	paints := []*Paint{
		strengthPaint("a", StrengthMedium, LAB{50, 0, 0}),
		strengthPaint("b", StrengthMedium, LAB{55, 0, 0}),
		strengthPaint("c", StrengthMedium, LAB{60, 0, 0}),
		strengthPaint("d", StrengthMedium, LAB{65, 0, 0}),
	}
	pool := make([]Recipe, len(paints))
	for i, p := range paints {
		pool[i] = rankedRecipe(float64(60+i), p)
	}
	got := rankRecipes(pool, 2)
	if len(got) != 2 {
		t.Fatalf("got %d recipes, want 2", len(got))
	}
	if got[0].MatchPercentage != 63 {
		t.Errorf("top score = %v, want 63", got[0].MatchPercentage)
	}
}

func TestRankRecipesSkipsEmpty(t *testing.T) {
	a := strengthPaint("a", StrengthMedium, LAB{50, 0, 0})
	pool := []Recipe{
		{},
		rankedRecipe(50, a),
	}
	got := rankRecipes(pool, 10)
	if len(got) != 1 {
		t.Fatalf("got %d recipes, want 1", len(got))
	}
}
