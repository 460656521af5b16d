package gwas

import (
	"sync"
	"testing"
)

func TestSharedViewStateZeroValue(t *testing.T) {
	var s SharedViewState
	if got := s.Load(); got != DefaultView() {
		t.Errorf("zero SharedViewState Load() = %+v, want %+v", got, DefaultView())
	}
}

func TestSharedViewStateStoreClamps(t *testing.T) {
	s := NewSharedViewState(View{Center: 1, Scale: -5, BaseBpWidth: 10})
	if got := s.Load().Scale; got != MinScale {
		t.Errorf("Load().Scale = %v, want %v", got, MinScale)
	}
	s.Store(View{Center: 2, Scale: 0, BaseBpWidth: 10})
	if got := s.Load(); got.Scale != MinScale || got.Center != 2 {
		t.Errorf("Load() = %+v, want center 2 and scale %v", got, MinScale)
	}
}

func TestSharedViewStateUpdate(t *testing.T) {
	s := NewSharedViewState(View{Center: 100, Scale: 50, BaseBpWidth: 10})
	got := s.Update(func(v View) View { return v.Zoom(-100, ScrollLine) })
	if got.Scale != 100 {
		t.Errorf("Update() returned scale %v, want 100", got.Scale)
	}
	if s.Load() != got {
		t.Errorf("Load() = %+v, want %+v", s.Load(), got)
	}
}

// Writers store views whose fields are all equal; a torn read would show
// fields from different stores.
func TestSharedViewStateNoTornReads(t *testing.T) {
	s := NewSharedViewState(View{Center: 1, Scale: 1, BaseBpWidth: 1})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				k := float64(w*1_000_000 + i)
				s.Store(View{Center: k, Scale: k, BaseBpWidth: k})
			}
		}()
	}

	for range 100_000 {
		v := s.Load()
		if v.Center != v.Scale || v.Scale != v.BaseBpWidth {
			close(stop)
			wg.Wait()
			t.Fatalf("torn read: %+v", v)
		}
	}
	close(stop)
	wg.Wait()
}

func TestSharedViewStateConcurrentUpdates(t *testing.T) {
	s := NewSharedViewState(View{Center: 0, Scale: 1000, BaseBpWidth: 10})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				s.Update(func(v View) View { return v.Pan(1, 100) })
			}
		}()
	}
	wg.Wait()

	// Races may drop updates but never corrupt the view.
	got := s.Load()
	if got.Center <= 0 || got.Center > 8*1000*PanStep*1000/100 {
		t.Errorf("center after concurrent pans = %v, want in (0, %v]", got.Center, 8*1000*PanStep*1000/100)
	}
	if got.Scale != 1000 || got.BaseBpWidth != 10 {
		t.Errorf("pans changed scale or base width: %+v", got)
	}
}
