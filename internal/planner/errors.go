package planner

// Reason is a query's soft-failure classification. Soft failures are
// not Go errors: a query that finds no journey is a successful query with
// an empty result, surfaced on QueryResult.Reason.
type Reason string

const (
	// ReasonNone indicates the query found a journey.
	ReasonNone Reason = ""

	// ReasonNoServiceOnDate: the Service-Day Filter produced an empty
	// valid-trip set for the query date (and route filter, if any).
	ReasonNoServiceOnDate Reason = "NoServiceOnDate"

	// ReasonNoJourney: the search completed but found no path within
	// max_transfers, and the walk-fallback radius produced nothing better.
	ReasonNoJourney Reason = "NoJourney"

	// ReasonTimeout: the query exceeded its wall-clock budget.
	ReasonTimeout Reason = "Timeout"

	// ReasonIterationCap: a Best-First Search invocation hit its internal
	// safety cap; surfaced the same way as ReasonTimeout.
	ReasonIterationCap Reason = "IterationCap"
)
