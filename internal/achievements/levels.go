package achievements

type Level struct {
	Name    string  `json:"level"`
	Icon    string  `json:"icon"`
	Minimum float64 `json:"minimum"`
}

// Levels are the wallet tiers, highest first.
var Levels = []Level{
	{Name: "Philanthropist", Icon: "🏆", Minimum: 1000},
	{Name: "Generous", Icon: "💎", Minimum: 500},
	{Name: "Supporter", Icon: "⭐", Minimum: 100},
	{Name: "Helper", Icon: "🌟", Minimum: 25},
	{Name: "Starter", Icon: "🌱", Minimum: 0},
}

// LevelFor returns the highest tier reached by a donated total.
func LevelFor(totalDonated float64) Level {
	for _, l := range Levels {
		if totalDonated >= l.Minimum {
			return l
		}
	}
	return Levels[len(Levels)-1]
}
