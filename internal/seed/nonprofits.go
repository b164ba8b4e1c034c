package seed

import (
	"context"
	"fmt"

	"karma/internal/utils"
	"karma/pkg/types"
)

type NonprofitUpserter interface {
	Upsert(ctx context.Context, nonprofit *types.Nonprofit) error
}

type OpportunityUpserter interface {
	Upsert(ctx context.Context, opportunity *types.Opportunity) error
}

type opportunitySeed struct {
	ID             string
	Title          string
	Description    string
	Skills         []string
	TimeCommitment string
	Needed         int
}

type nonprofitSeed struct {
	types.Nonprofit
	Opportunities []opportunitySeed
}

func at(city, state, country string, lat, lng float64) types.Location {
	loc := types.Location{
		Latitude:  utils.Ptr(lat),
		Longitude: utils.Ptr(lng),
		City:      utils.StringPtr(city),
		Country:   utils.StringPtr(country),
	}
	if state != "" {
		loc.State = utils.StringPtr(state)
	}
	return loc
}

// directory is the source of truth for the curated nonprofit directory.
// IDs are fixed so re-running the seed updates rows in place.
//
// To generate new IDs: `go run ./cmd/karma nanoid`
var directory = []nonprofitSeed{
	{
		Nonprofit: types.Nonprofit{
			ID:               "kE3pTq9WvB1xYz7Lm2Nc4Rd8",
			Name:             "American Red Cross",
			Category:         types.CategoryDisasterRelief,
			Description:      "Prevents and alleviates human suffering in the face of emergencies by mobilizing volunteers and donors.",
			MissionStatement: utils.StringPtr("Prevent and alleviate human suffering in the face of emergencies."),
			Website:          utils.StringPtr("https://www.redcross.org"),
			EIN:              utils.StringPtr("53-0196605"),
			Location:         at("Washington", "DC", "USA", 38.8951, -77.0364),
		},
		Opportunities: []opportunitySeed{
			{ID: "Rc1DisasterResponder00001", Title: "Disaster Responder", Description: "Help provide aid and support to communities affected by disasters.", Skills: []string{"First Aid", "Communication"}, TimeCommitment: "On-call", Needed: 25},
			{ID: "Rc2BloodDonorAmbassador01", Title: "Blood Donor Ambassador", Description: "Assist staff at blood drives to ensure a positive donor experience.", Skills: []string{"Customer Service", "Organization"}, TimeCommitment: "Flexible hours", Needed: 10},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Hm5sVn2QaJ8cXk4Wp9Tb6Ye1",
			Name:        "Doctors Without Borders",
			Category:    types.CategoryHealth,
			Description: "International medical humanitarian organization providing aid in conflict zones, disasters and underserved communities worldwide.",
			Website:     utils.StringPtr("https://www.doctorswithoutborders.org"),
			EIN:         utils.StringPtr("13-3433452"),
			Location:    at("New York", "NY", "USA", 40.7128, -74.0060),
		},
		Opportunities: []opportunitySeed{
			{ID: "Dw1AdministrativeSupport1", Title: "Administrative Support", Description: "Assist with office tasks and data entry.", Skills: []string{"Data Entry", "Microsoft Office"}, TimeCommitment: "Weekly", Needed: 4},
			{ID: "Dw2FundraisingEventVol001", Title: "Fundraising Event Volunteer", Description: "Help organize and run fundraising events.", Skills: []string{"Event Planning", "Communication"}, TimeCommitment: "One-time event", Needed: 12},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Uc7nFz3LrK9dGh2Mv5Qw8Xs4",
			Name:        "UNICEF",
			Category:    types.CategoryYouthDevelopment,
			Description: "Works for the rights of every child, especially the most disadvantaged, with humanitarian and developmental aid worldwide.",
			Website:     utils.StringPtr("https://www.unicefusa.org"),
			Location:    at("New York", "NY", "USA", 40.7489, -73.9680),
		},
		Opportunities: []opportunitySeed{
			{ID: "Un1AdvocacyCampaigner0001", Title: "Advocacy Campaigner", Description: "Participate in campaigns to raise awareness for children's rights.", Skills: []string{"Public Speaking", "Persuasion"}, TimeCommitment: "Flexible hours", Needed: 15},
			{ID: "Un2SocialMediaAssistant01", Title: "Social Media Assistant", Description: "Help manage social media content and engagement.", Skills: []string{"Social Media Management", "Content Creation"}, TimeCommitment: "Weekly", Needed: 3},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Ww4gBy8RtN1pJc6Dk3Hf9Lz2",
			Name:        "World Wildlife Fund",
			Category:    types.CategoryEnvironment,
			Description: "Dedicated to conserving nature and reducing the most pressing threats to the diversity of life on Earth.",
			Website:     utils.StringPtr("https://www.worldwildlife.org"),
			Location:    at("Washington", "DC", "USA", 38.9072, -77.0369),
		},
		Opportunities: []opportunitySeed{
			{ID: "Wf1ConservationSupporter1", Title: "Conservation Supporter", Description: "Help with local conservation efforts and community outreach.", Skills: []string{"Environmental Knowledge", "Community Engagement"}, TimeCommitment: "Weekends", Needed: 20},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Hh9qCw2ZmT5vBn8Ks1Pd4Gx7",
			Name:        "Habitat for Humanity",
			Category:    types.CategoryCommunityDevelopment,
			Description: "Helps families build and improve homes, working to eliminate poverty housing and homelessness.",
			Website:     utils.StringPtr("https://www.habitat.org"),
			Location:    at("Americus", "GA", "USA", 32.0724, -84.2327),
		},
		Opportunities: []opportunitySeed{
			{ID: "Hb1ConstructionVolunteer1", Title: "Construction Volunteer", Description: "Help build and repair homes on construction sites.", Skills: []string{"Basic Construction", "Teamwork"}, TimeCommitment: "Weekends", Needed: 30},
			{ID: "Hb2ReStoreAssistant000001", Title: "ReStore Assistant", Description: "Help organize and sell donated goods at ReStore locations.", Skills: []string{"Retail", "Customer Service"}, TimeCommitment: "Flexible hours", Needed: 6},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Ox2jRk6WnV9sLc3Tb7Mq1Fy5",
			Name:        "Oxfam International",
			Category:    types.CategoryPoverty,
			Description: "A global organization working to end the injustice of poverty.",
			Website:     utils.StringPtr("https://www.oxfam.org"),
			Location:    at("Oxford", "", "UK", 51.7520, -1.2577),
		},
		Opportunities: []opportunitySeed{
			{ID: "Ox1CampaignOrganizer00001", Title: "Campaign Organizer", Description: "Support campaigns for fair trade and poverty eradication.", Skills: []string{"Advocacy", "Research"}, TimeCommitment: "Weekly", Needed: 8},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Uw8bHd1XcP4mZq7Nr2Vk5Js9",
			Name:        "United Way",
			Category:    types.CategoryCommunityDevelopment,
			Description: "A network of local organizations advancing the common good through education, income and health.",
			Website:     utils.StringPtr("https://www.unitedway.org"),
			Location:    at("Alexandria", "VA", "USA", 38.8048, -77.0469),
		},
		Opportunities: []opportunitySeed{
			{ID: "Uw1CommunityCoordinator01", Title: "Community Coordinator", Description: "Help coordinate local volunteer activities and community programs.", Skills: []string{"Organization", "Communication"}, TimeCommitment: "Monthly", Needed: 5},
			{ID: "Uw2FundraisingVolunteer01", Title: "Fundraising Volunteer", Description: "Assist with fundraising events and donor outreach.", Skills: []string{"Sales", "Networking"}, TimeCommitment: "Flexible hours", Needed: 10},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Sc3fLp7GwQ2rYt5Bx9Dm1Kn6",
			Name:        "Save the Children",
			Category:    types.CategoryYouthDevelopment,
			Description: "Promotes children's rights, provides relief and supports children in developing countries.",
			Website:     utils.StringPtr("https://www.savethechildren.org"),
			Location:    at("Fairfield", "CT", "USA", 41.1412, -73.2637),
		},
		Opportunities: []opportunitySeed{
			{ID: "Sc1EducationAdvocate00001", Title: "Education Advocate", Description: "Support educational programs and literacy initiatives.", Skills: []string{"Education", "Mentoring"}, TimeCommitment: "Weekly", Needed: 10},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Gp6mTs1KvH4nWc8Zq3Rb7Lx2",
			Name:        "Greenpeace",
			Category:    types.CategoryEnvironment,
			Description: "An environmental organization with offices in over 55 countries that campaigns to protect the environment.",
			Website:     utils.StringPtr("https://www.greenpeace.org"),
			Location:    at("Amsterdam", "", "Netherlands", 52.3676, 4.9041),
		},
		Opportunities: []opportunitySeed{
			{ID: "Gp1CampaignActivist000001", Title: "Campaign Activist", Description: "Participate in environmental campaigns and awareness events.", Skills: []string{"Activism", "Public Speaking"}, TimeCommitment: "Flexible hours", Needed: 40},
			{ID: "Gp2ResearchAssistant00001", Title: "Research Assistant", Description: "Help with environmental research and data collection.", Skills: []string{"Research", "Data Analysis"}, TimeCommitment: "Weekly", Needed: 2},
		},
	},
	{
		Nonprofit: types.Nonprofit{
			ID:          "Ai5cNw9PrD2kBv6Ht1Ms4Qz8",
			Name:        "Amnesty International",
			Category:    types.CategoryHumanRights,
			Description: "A global movement campaigning for a world where human rights are enjoyed by all.",
			Website:     utils.StringPtr("https://www.amnesty.org"),
			Location:    at("London", "", "UK", 51.5074, -0.1278),
		},
		Opportunities: []opportunitySeed{
			{ID: "Ai1LetterWritingVolunteer", Title: "Letter Writing Volunteer", Description: "Write letters supporting individuals at risk.", Skills: []string{"Writing", "Research"}, TimeCommitment: "Flexible hours", Needed: 50},
		},
	},
}

// Directory returns the curated nonprofits and their opportunities, ready
// to upsert.
func Directory() ([]*types.Nonprofit, []*types.Opportunity) {
	nonprofits := make([]*types.Nonprofit, 0, len(directory))
	opportunities := make([]*types.Opportunity, 0)

	for _, entry := range directory {
		nonprofit := entry.Nonprofit
		nonprofits = append(nonprofits, &nonprofit)

		for _, o := range entry.Opportunities {
			opportunities = append(opportunities, &types.Opportunity{
				ID:               o.ID,
				NonprofitID:      nonprofit.ID,
				Title:            o.Title,
				Description:      o.Description,
				Category:         nonprofit.Category,
				TimeCommitment:   utils.StringPtr(o.TimeCommitment),
				SkillsRequired:   o.Skills,
				Location:         nonprofit.Location,
				VolunteersNeeded: o.Needed,
				IsActive:         true,
			})
		}
	}

	return nonprofits, opportunities
}

// SeedDirectory upserts every curated nonprofit and opportunity. Running
// totals on existing rows are left alone.
func SeedDirectory(ctx context.Context, nonprofitRepo NonprofitUpserter, opportunityRepo OpportunityUpserter) error {
	nonprofits, opportunities := Directory()

	fmt.Println("Starting directory sync...")
	fmt.Printf("  Seed file contains %d nonprofits and %d opportunities\n", len(nonprofits), len(opportunities))

	for _, nonprofit := range nonprofits {
		fmt.Printf("  Upserting nonprofit: %s (id: %s)\n", nonprofit.Name, nonprofit.ID)
		if err := nonprofitRepo.Upsert(ctx, nonprofit); err != nil {
			return fmt.Errorf("failed to upsert nonprofit %s: %w", nonprofit.ID, err)
		}
	}

	for _, opportunity := range opportunities {
		if err := opportunityRepo.Upsert(ctx, opportunity); err != nil {
			return fmt.Errorf("failed to upsert opportunity %s: %w", opportunity.ID, err)
		}
	}

	fmt.Printf("\nSync complete: %d nonprofits, %d opportunities\n", len(nonprofits), len(opportunities))
	return nil
}
