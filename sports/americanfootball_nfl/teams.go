package americanfootball_nfl

import (
	"strings"
)

// sharedMarketTeams disambiguates franchises whose city hosts two teams.
// Keys are matched as substrings of the vendor name.
var sharedMarketTeams = []struct {
	nickname string
	display  string
}{
	{"Chargers", "Los Angeles (LAC)"},
	{"Rams", "Los Angeles (LAR)"},
	{"Giants", "New York (NYG)"},
	{"Jets", "New York (NYJ)"},
}

// NormalizeTeamName reduces a vendor team name to the city form used by pick'em sites.
// "Kansas City Chiefs" -> "Kansas City", "Los Angeles Chargers" -> "Los Angeles (LAC)".
func NormalizeTeamName(name string) string {
	name = strings.TrimSpace(name)

	for _, team := range sharedMarketTeams {
		if strings.Contains(name, team.nickname) {
			name = team.display
			break
		}
	}

	// Already disambiguated
	if strings.Contains(name, "(") {
		return name
	}

	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name
	}
	return name[:idx]
}
