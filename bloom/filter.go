// Package bloom remembers article URLs across pipeline runs using a Bloom
// filter.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/newsdesk"
)

// Sizing defaults for a long-running watch process.
const (
	DefaultExpectedURLs      = 100000
	DefaultFalsePositiveRate = 0.001
)

var _ newsdesk.SeenFilter = (*Filter)(nil)

// Filter is a concurrency-safe seen-URL filter. A false positive makes an
// unseen article look seen; an added URL is never forgotten.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given false
// positive rate. Zero values select the defaults.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = DefaultExpectedURLs
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// TestAndAdd records url and reports whether it was probably seen before.
// URLs differing only by fragment are the same article.
func (f *Filter) TestAndAdd(url string) bool {
	key := canonical(url)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(key)
}

// Test reports whether url was probably seen, without recording it.
func (f *Filter) Test(url string) bool {
	key := canonical(url)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

func canonical(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return strings.TrimSpace(url)
}
