package parser

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentParsing checks that many goroutines can share one manager.
func TestConcurrentParsing(t *testing.T) {
	manager := newTestManager(t)

	const numGoroutines = 100
	var wg sync.WaitGroup
	errChan := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			src := fmt.Sprintf("const C%d = () => <div>%d</div>;", id, id)
			tree, err := manager.Parse([]byte(src), SupportedDialects()[id%2*2])
			if err != nil {
				errChan <- err
				return
			}
			if tree.Root() == nil {
				errChan <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs)

	stats := manager.GetStats()
	assert.Equal(t, numGoroutines, stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, 2*manager.poolSize)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 2)
}

// TestPoolBlocksAtMaxSize checks a pool of one parser still serves many callers.
func TestPoolBlocksAtMaxSize(t *testing.T) {
	manager := NewParserManagerWithPoolSize(nil, 1)
	defer manager.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Parse([]byte("let a = 1;"), DialectJavaScript)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, manager.GetStats().ParsersCreated)
}

func BenchmarkParse(b *testing.B) {
	manager := NewParserManager(nil)
	defer manager.Close()
	src := []byte(sampleJSX)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := manager.Parse(src, DialectJavaScript); err != nil {
				b.Fatal(err)
			}
		}
	})
}
