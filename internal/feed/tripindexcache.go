package feed

import "sync"

// tripIndexCacheKey identifies one (date, route_type) combination. routeType
// uses -1 to mean "unfiltered" since RouteType's valid range starts at 0.
type tripIndexCacheKey struct {
	date      ServiceDate
	routeType int
}

// tripIndexCache avoids rebuilding the Trip Index when consecutive queries
// share a service day and route filter. Readers never block each other;
// writers are rare (one per distinct (date, route_type) ever seen).
type tripIndexCache struct {
	mu      sync.RWMutex
	entries map[tripIndexCacheKey]*TripIndex
}

func newTripIndexCache() *tripIndexCache {
	return &tripIndexCache{entries: make(map[tripIndexCacheKey]*TripIndex)}
}

func cacheKey(date ServiceDate, routeType *RouteType) tripIndexCacheKey {
	if routeType == nil {
		return tripIndexCacheKey{date: date, routeType: -1}
	}
	return tripIndexCacheKey{date: date, routeType: int(*routeType)}
}

// TripIndexFor returns the cached TripIndex for (date, routeType), building
// and caching one via ValidTrips + BuildTripIndex if this is the first
// query for that combination.
func (s *Store) TripIndexFor(date ServiceDate, routeType *RouteType) (*TripIndex, error) {
	key := cacheKey(date, routeType)

	s.cache.mu.RLock()
	if idx, ok := s.cache.entries[key]; ok {
		s.cache.mu.RUnlock()
		return idx, nil
	}
	s.cache.mu.RUnlock()

	valid, err := s.ValidTrips(date, routeType)
	if err != nil {
		return nil, err
	}
	idx := s.BuildTripIndex(valid)

	s.cache.mu.Lock()
	s.cache.entries[key] = idx
	s.cache.mu.Unlock()

	return idx, nil
}
