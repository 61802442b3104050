package service

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	k := NewKeyedMutex(quietLogger())
	defer k.Stop()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(DateKey(monday))
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
}

func TestKeyedMutexMultipleKeysNoDeadlock(t *testing.T) {
	k := NewKeyedMutex(quietLogger())
	defer k.Stop()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() { defer wg.Done(); k.Lock("a", "b")() }()
			go func() { defer wg.Done(); k.Lock("b", "a", "b")() }()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("locking keys in different orders deadlocked")
	}
}

func TestKeyedMutexCleanup(t *testing.T) {
	k := NewKeyedMutex(quietLogger())
	defer k.Stop()

	k.Lock("idle")()
	unlockBusy := k.Lock("busy")

	if n := k.cleanupStale(time.Now().Add(time.Hour)); n != 1 {
		t.Errorf("cleanupStale() = %d, want 1 (held mutex must survive)", n)
	}
	unlockBusy()

	if _, ok := k.locks.Load("busy"); !ok {
		t.Error("held mutex was removed")
	}
	if _, ok := k.locks.Load("idle"); ok {
		t.Error("idle mutex was not removed")
	}
}
