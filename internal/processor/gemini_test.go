package processor

import (
	"sync"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

func TestKeyRotationWrapsAround(t *testing.T) {
	g := NewGeminiBackend([]string{"k1", "k2", "k3"}, "m", logger.New("error")).(*implGemini)

	want := []string{"k1", "k2", "k3", "k1"}
	for i, w := range want {
		key, idx := g.activeKey()
		if key != w {
			t.Errorf("rotation %d: key = %q, want %q", i, key, w)
		}
		if key != g.apiKeys[idx] {
			t.Errorf("rotation %d: index %d does not match key %q", i, idx, key)
		}
		g.rotateKey()
	}
}

// Watch mode runs concurrent pipelines against one shared backend, so
// rotation on quota errors must be safe from multiple goroutines.
func TestKeyRotationConcurrent(t *testing.T) {
	g := NewGeminiBackend([]string{"k1", "k2", "k3"}, "m", logger.New("error")).(*implGemini)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				g.rotateKey()
				key, idx := g.activeKey()
				if idx < 0 || idx >= len(g.apiKeys) || key != g.apiKeys[idx] {
					t.Errorf("inconsistent rotation state: key=%q idx=%d", key, idx)
					return
				}
			}
		}()
	}
	wg.Wait()
}
