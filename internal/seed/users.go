package seed

import (
	"context"
	"fmt"

	"karma/internal/utils"
	"karma/pkg/types"
)

type UserCreator interface {
	Create(ctx context.Context, user *types.User) error
}

type fakeUserSeed struct {
	ID        string
	Email     string
	FullName  string
	Location  types.Location
	Preferred []types.Category
}

var fakeUsers = []fakeUserSeed{
	{ID: "11111111-1111-1111-1111-111111111111", Email: "ava.williams+seed1@example.com", FullName: "Ava Williams", Location: at("New York", "NY", "USA", 40.7306, -73.9352), Preferred: []types.Category{types.CategoryHealth, types.CategoryYouthDevelopment}},
	{ID: "22222222-2222-2222-2222-222222222222", Email: "liam.johnson+seed2@example.com", FullName: "Liam Johnson", Location: at("Arlington", "VA", "USA", 38.8816, -77.0910), Preferred: []types.Category{types.CategoryDisasterRelief}},
	{ID: "33333333-3333-3333-3333-333333333333", Email: "noah.brown+seed3@example.com", FullName: "Noah Brown", Location: at("Atlanta", "GA", "USA", 33.7490, -84.3880), Preferred: []types.Category{types.CategoryCommunityDevelopment, types.CategoryPoverty}},
	{ID: "44444444-4444-4444-4444-444444444444", Email: "mia.davis+seed4@example.com", FullName: "Mia Davis", Location: at("London", "", "UK", 51.5155, -0.0922), Preferred: []types.Category{types.CategoryHumanRights, types.CategoryEnvironment}},
	{ID: "55555555-5555-5555-5555-555555555555", Email: "elijah.garcia+seed5@example.com", FullName: "Elijah Garcia"},
}

func FakeUsers() []*types.User {
	volunteer := string(types.UserTypeVolunteer)

	users := make([]*types.User, 0, len(fakeUsers))
	for _, fake := range fakeUsers {
		preferred := make([]string, 0, len(fake.Preferred))
		for _, c := range fake.Preferred {
			preferred = append(preferred, string(c))
		}

		users = append(users, &types.User{
			ID:                  fake.ID,
			Email:               utils.StringPtr(fake.Email),
			FullName:            utils.StringPtr(fake.FullName),
			UserType:            utils.StringPtr(volunteer),
			Location:            fake.Location,
			PreferredCategories: preferred,
			FavoriteNonprofits:  []string{},
			ProfileCompleted:    len(preferred) > 0,
		})
	}
	return users
}

func SeedFakeUsers(ctx context.Context, userRepo UserCreator) error {
	seeded := 0
	for _, user := range FakeUsers() {
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to upsert fake user %s: %w", user.ID, err)
		}
		seeded++
	}

	fmt.Printf("Fake users seeded: %d upserted\n", seeded)
	return nil
}
