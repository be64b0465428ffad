package graph

import (
	"fmt"
	"strings"
	"sync"
)

// recordingObserver captures observer lines for assertions. Safe for
// concurrent use; the resolver reports from multiple goroutines.
type recordingObserver struct {
	mu       sync.Mutex
	progress []string
	diags    []string
}

func (o *recordingObserver) Progressf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress = append(o.progress, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) Diagf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.diags = append(o.diags, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) diagContaining(substr string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, d := range o.diags {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

// fakeHash builds a 40-character object id from a short label.
func fakeHash(label string) string {
	if len(label) > 40 {
		panic("label too long")
	}
	return label + strings.Repeat("0", 40-len(label))
}
