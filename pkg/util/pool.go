package util

import "runtime"

const (
	minPoolSize = 4
	maxPoolSize = 32
)

// PoolSize is the number of parsers per dialect and of lint workers:
// twice the CPU count, clamped to [4, 32]. Parsing happens in cgo, so workers
// outnumber cores. A positive override is returned unchanged.
func PoolSize(override int) int {
	if override > 0 {
		return override
	}
	return min(max(runtime.NumCPU()*2, minPoolSize), maxPoolSize)
}
