package planner

import "transitplanner.dev/internal/feed"

// TransferBuffer is the minimum wait the planner requires between the
// arrival of one leg and the departure of the next whenever the trip
// changes.
const TransferBuffer feed.ServiceSeconds = 5 * 60

// DefaultMaxTransfers is used when a query omits max_transfers.
const DefaultMaxTransfers = 2

// MaxMaxTransfers is the upper bound max_transfers may be set to.
const MaxMaxTransfers = 2

// IterationCap is the Best-First Search's safety bound on frontier pops,
// independent of the query's wall-clock budget.
const IterationCap = 20000

// EarlyTerminationDistanceKm is the "good enough" threshold: a candidate
// reaching a target this close to the destination short-circuits the
// search immediately.
const EarlyTerminationDistanceKm = 0.35

// WalkRadiusKm bounds the walk-fallback's search for walkable stops near
// the source.
const WalkRadiusKm = 0.5

// WalkSpeedMetersPerMinute is the assumed walking pace for estimating a
// Walk leg's duration.
const WalkSpeedMetersPerMinute = 80.0

// MaxWalkCandidates caps how many nearby stops the walk-fallback retries
// the search from.
const MaxWalkCandidates = 20

// TargetSetSize is how many nearest stops to the destination form the
// target set.
const TargetSetSize = 20

// TransferScorePenaltyMinutes is the walk-fallback scoring rule's per-transfer
// penalty.
const TransferScorePenaltyMinutes = 30
