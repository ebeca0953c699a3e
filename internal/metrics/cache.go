package metrics

// RecordCacheLookup records the outcome of a cache lookup
func (m *Metrics) RecordCacheLookup(key string, hit bool) {
	m.safeExecute("RecordCacheLookup", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.CacheLookupsTotal.WithLabelValues(key, result).Inc()
	})
}
