package models

// CacheStats reports cache performance metrics. Entries is a live count
// taken at snapshot time, not a stored counter.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
