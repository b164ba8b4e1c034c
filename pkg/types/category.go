package types

type Category string

const (
	CategoryEducation            Category = "education"
	CategoryEnvironment          Category = "environment"
	CategoryHealth               Category = "health"
	CategoryPoverty              Category = "poverty"
	CategoryAnimals              Category = "animals"
	CategoryArtsCulture          Category = "arts_culture"
	CategoryCommunityDevelopment Category = "community_development"
	CategoryHumanRights          Category = "human_rights"
	CategoryDisasterRelief       Category = "disaster_relief"
	CategoryElderlyCare          Category = "elderly_care"
	CategoryYouthDevelopment     Category = "youth_development"
	CategoryOther                Category = "other"
)

var AllCategories = []Category{
	CategoryEducation,
	CategoryEnvironment,
	CategoryHealth,
	CategoryPoverty,
	CategoryAnimals,
	CategoryArtsCulture,
	CategoryCommunityDevelopment,
	CategoryHumanRights,
	CategoryDisasterRelief,
	CategoryElderlyCare,
	CategoryYouthDevelopment,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
