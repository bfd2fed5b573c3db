package constants

import "time"

// Default cache TTLs per namespace. Volatile data expires quickly, the
// hero/item catalogs are near-static.
const (
	TeamDataTTL   = 10 * time.Minute
	PlayerDataTTL = 15 * time.Minute
	MatchDataTTL  = 30 * time.Minute
	HeroListTTL   = 24 * time.Hour
	ItemListTTL   = 24 * time.Hour
)

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

const (
	BatchConcurrency = 4
	RecentMatchLimit = 20
)

// Circuit breaker settings for upstream providers.
const (
	BreakerMaxFailures  = 5
	BreakerOpenInterval = 60 * time.Second
	BreakerOpenTimeout  = 30 * time.Second
)

// Aggregation thresholds.
const (
	MinGamesFloor        = 5    // ignore heroes below this sample size
	SuccessWinRate       = 60.0 // hero counts as most-successful at or above
	UnderperformWinRate  = 40.0 // hero counts as underperforming at or below
	TopHeroLimit         = 8
	StrengthScore        = 60.0
	WeaknessScore        = 40.0
	TrendWindow          = 5   // matches per rolling comparison window
	TrendDelta           = 0.1 // win-rate shift that counts as a trend
	EarlyGameCutoff      = 25 * time.Minute
	LateGameCutoff       = 40 * time.Minute
	KeyMomentGoldSwing   = 3000 // per-minute radiant gold swing worth flagging
)

// Role detection: purchases of these items inside the opening window mark a
// player as a support; the farming set marks a core.
const SupportPurchaseWindow = 600 // seconds

var SupportItems = map[string]bool{
	"ward_observer":   true,
	"ward_sentry":     true,
	"ward_dispenser":  true,
	"smoke_of_deceit": true,
	"dust":            true,
}

var FarmingItems = map[string]bool{
	"quelling_blade": true,
	"hand_of_midas":  true,
	"maelstrom":      true,
	"bfury":          true,
	"radiance":       true,
}

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DBBusyTimeoutMS = 5000
)
