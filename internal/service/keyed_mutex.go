package service

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// KeyedMutex serialises check-then-write sequences per key, typically one
// key per appointment date.
//
// Lock Ordering (to prevent deadlocks):
// multiple keys are always acquired in sorted order.
type KeyedMutex struct {
	log   *logrus.Logger
	locks sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewKeyedMutex starts the background cleanup goroutine.
// Call Stop() during graceful shutdown.
func NewKeyedMutex(log *logrus.Logger) *KeyedMutex {
	k := &KeyedMutex{
		log:      log,
		stopChan: make(chan struct{}),
	}

	k.wg.Add(1)
	go k.cleanupLoop()

	return k
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (k *KeyedMutex) Stop() {
	if k.stopped.CompareAndSwap(false, true) {
		close(k.stopChan)
		k.wg.Wait()
	}
}

// Lock acquires every distinct key and returns the function releasing them.
func (k *KeyedMutex) Lock(keys ...string) (unlock func()) {
	keys = uniqueSorted(keys)
	held := make([]*mutexWithTimestamp, 0, len(keys))
	for _, key := range keys {
		held = append(held, k.lockOne(key))
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].lastUsed.Store(time.Now().Unix())
			held[i].mu.Unlock()
		}
	}
}

func (k *KeyedMutex) lockOne(key string) *mutexWithTimestamp {
	for {
		v, _ := k.locks.LoadOrStore(key, &mutexWithTimestamp{})
		mt := v.(*mutexWithTimestamp)
		mt.lastUsed.Store(time.Now().Unix())
		mt.mu.Lock()

		// cleanup may have dropped this mutex between load and lock
		if cur, ok := k.locks.Load(key); ok && cur == mt {
			return mt
		}
		mt.mu.Unlock()
	}
}

func (k *KeyedMutex) cleanupLoop() {
	defer k.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-k.stopChan:
			return
		case <-ticker.C:
			k.cleanupStale(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStale removes mutexes unused since cutoff. A mutex that is held
// is never removed.
func (k *KeyedMutex) cleanupStale(cutoff time.Time) int {
	var cleaned int
	k.locks.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				k.locks.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 && k.log != nil {
		k.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}

func uniqueSorted(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// DateKey is the lock key guarding appointments of one calendar date.
func DateKey(date string) string {
	return "date:" + date
}
