package domain

// SyncReport summarises one indexing pass over a set of pages.
// A non-zero Failed count means some pages were left untouched in the cache
// and will be retried on the next sync.
type SyncReport struct {
	// Updated counts pages whose chunks were re-indexed.
	Updated int

	// Unchanged counts pages whose fingerprint matched the cache.
	Unchanged int

	// Failed counts pages that errored mid-reindex.
	Failed int
}

// Total returns the number of pages examined.
func (r SyncReport) Total() int {
	return r.Updated + r.Unchanged + r.Failed
}
