//go:build integration

package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides seeded names and scores for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

func NewTestDataGenerator(seed uint64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// ConventionName returns a district convention name.
func (g *TestDataGenerator) ConventionName() string {
	return g.faker.City() + " District Convention"
}

// CompetitorNames returns n distinct quartet names. Registration rejects
// names that differ only by case, so uniqueness is checked case-insensitively.
func (g *TestDataGenerator) CompetitorNames(n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := g.faker.Adjective() + " " + g.faker.NounCollectivePeople()
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}

func (g *TestDataGenerator) PanelistName() string {
	return g.faker.Name()
}

// TightPanel returns n points within two of each other, which never trigger
// variance.
func (g *TestDataGenerator) TightPanel(n int) []int {
	base := g.faker.IntRange(60, 85)
	points := make([]int, n)
	for i := range points {
		points[i] = base + g.faker.IntRange(0, 2)
	}
	return points
}
