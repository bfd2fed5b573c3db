// Package roles infers lane roles from item purchase timing and lane
// assignment. Detection is a pure function of the player slice: no network,
// no cache, no call-order dependence.
package roles

import (
	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
)

const noPurchase = 1 << 30

// Detect assigns a role per account id. A player with no purchase timing
// data gets RoleUnknown: inferring a role without timing is unreliable, so
// the heuristic refuses to guess.
//
// With timing present, support detection runs on the earliest
// ward/consumable purchase inside the opening window and lane assignment;
// lane_role (1=safe carry, 2=mid, 3=off, 4/5=support) breaks ties when the
// two disagree.
func Detect(players []domain.MatchPlayer) map[int64]domain.Role {
	assigned := make(map[int64]domain.Role, len(players))
	for i := range players {
		assigned[players[i].AccountID] = detectOne(&players[i])
	}
	return assigned
}

func detectOne(p *domain.MatchPlayer) domain.Role {
	if len(p.Purchases) == 0 {
		return domain.RoleUnknown
	}

	supportAt := earliestSupportPurchase(p.Purchases)
	farmAt := earliestFarmingPurchase(p.Purchases)

	// A farming item bought no later than the first ward cancels the support
	// signal: cores grab a quelling blade and still carry the courier ward.
	if supportAt != noPurchase && (farmAt == noPurchase || supportAt < farmAt) {
		// Item signal says support. A core lane_role overrides it: cores do
		// buy the odd ward.
		switch p.LaneRole {
		case 1:
			return domain.RoleCarry
		case 2:
			return domain.RoleMid
		case 3:
			return domain.RoleOfflane
		case 4:
			return domain.RoleSoftSupport
		case 5:
			return domain.RoleHardSupport
		}
		// Pre-horn ward buyers are the dedicated support.
		if supportAt <= 0 {
			return domain.RoleHardSupport
		}
		return domain.RoleSoftSupport
	}

	switch p.LaneRole {
	case 1:
		return domain.RoleCarry
	case 2:
		return domain.RoleMid
	case 3:
		return domain.RoleOfflane
	case 4:
		return domain.RoleSoftSupport
	case 5:
		return domain.RoleHardSupport
	}

	// No lane_role recorded; fall back to the raw lane.
	switch p.Lane {
	case 1:
		return domain.RoleCarry
	case 2:
		return domain.RoleMid
	case 3:
		return domain.RoleOfflane
	}
	return domain.RoleUnknown
}

func earliestSupportPurchase(purchases []domain.ItemPurchase) int {
	return earliestIn(purchases, constants.SupportItems)
}

func earliestFarmingPurchase(purchases []domain.ItemPurchase) int {
	return earliestIn(purchases, constants.FarmingItems)
}

func earliestIn(purchases []domain.ItemPurchase, items map[string]bool) int {
	earliest := noPurchase
	for _, p := range purchases {
		if !items[p.Item] {
			continue
		}
		if p.Time > constants.SupportPurchaseWindow {
			continue
		}
		if p.Time < earliest {
			earliest = p.Time
		}
	}
	return earliest
}
