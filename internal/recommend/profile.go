package recommend

import "karma/pkg/types"

// Profile is what the scorers know about a user's interests. It is built
// once per request from the user and their donation and review history.
type Profile struct {
	interested map[types.Category]struct{}
	supported  map[string]struct{}
}

// BuildProfile derives interested categories (preferred categories plus the
// categories of past donations) and supported nonprofits (donated to,
// reviewed or favorited). A nil user yields an empty profile.
func BuildProfile(user *types.User, donations []*types.Donation, reviews []*types.Review) Profile {
	p := Profile{
		interested: make(map[types.Category]struct{}),
		supported:  make(map[string]struct{}),
	}

	if user != nil {
		for _, c := range user.PreferredCategories {
			p.interested[types.Category(c)] = struct{}{}
		}
		for _, id := range user.FavoriteNonprofits {
			p.supported[id] = struct{}{}
		}
	}

	for _, d := range donations {
		if d == nil {
			continue
		}
		p.supported[d.NonprofitID] = struct{}{}
		if d.Category != nil && *d.Category != "" {
			p.interested[*d.Category] = struct{}{}
		}
	}

	for _, r := range reviews {
		if r == nil {
			continue
		}
		p.supported[r.NonprofitID] = struct{}{}
	}

	return p
}

func (p Profile) Interested(c types.Category) bool {
	_, ok := p.interested[c]
	return ok
}

func (p Profile) Supports(nonprofitID string) bool {
	_, ok := p.supported[nonprofitID]
	return ok
}

// SupportedIDs returns the supported nonprofit ids in no particular order.
func (p Profile) SupportedIDs() []string {
	ids := make([]string, 0, len(p.supported))
	for id := range p.supported {
		ids = append(ids, id)
	}
	return ids
}
