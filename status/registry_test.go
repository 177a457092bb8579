package status

import (
	"sync"
	"testing"
)

// TestMetricMapGetCachesPointer verifies repeated Get returns the same value
func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyKills)
	a.Add(3)
	b := r.Ints.Get(KeyKills)
	if a != b {
		t.Fatal("Get returned a different pointer for the same key")
	}
	if b.Load() != 3 {
		t.Errorf("kills = %d, want 3", b.Load())
	}
	if !r.Ints.Has(KeyKills) || r.Ints.Has(KeyMisses) {
		t.Error("Has reports wrong membership")
	}
}

// TestRegistryExport verifies every metric type lands in the export map
func TestRegistryExport(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get(KeyAudioEnabled).Store(true)
	r.Ints.Get(KeyTicks).Store(60)
	r.Floats.Get(KeyMasterVolume).Set(0.5)
	r.Strings.Get(KeyLastGameOver).Store("time_up")

	out := r.Export()
	if len(out) != 4 || r.TotalCount() != 4 {
		t.Fatalf("export has %d entries, total %d", len(out), r.TotalCount())
	}
	if out[KeyAudioEnabled] != true || out[KeyTicks] != int64(60) ||
		out[KeyMasterVolume] != 0.5 || out[KeyLastGameOver] != "time_up" {
		t.Errorf("unexpected export: %v", out)
	}
}

// TestAtomicStringTruncates verifies long labels are cut
func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should be empty")
	}
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	s.Store(long)
	if got := s.Load(); got != long[:MaxStringLen] {
		t.Errorf("Load() = %q", got)
	}
}

// TestAtomicFloatConcurrentAdd verifies CAS addition under contention
func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 400 {
		t.Errorf("sum = %v, want 400", f.Get())
	}
}
