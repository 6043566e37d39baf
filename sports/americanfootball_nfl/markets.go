package americanfootball_nfl

// MarketSpreads is the point spread market key
const MarketSpreads = "spreads"

// FeaturedMarkets returns the markets requested for the weekly report
func FeaturedMarkets() []string {
	return []string{MarketSpreads}
}
