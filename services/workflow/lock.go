package workflow

import "sync"

// vehicleLockSet serializes approvals per vehicle number. Two
// concurrent approvals against the same vehicle must not interleave
// their read-modify-write of the ledger row; approvals for different
// vehicles proceed independently.
type vehicleLockSet struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newVehicleLockSet() *vehicleLockSet {
	return &vehicleLockSet{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given vehicle number and returns its
// unlock function. Locks are kept for the process lifetime; the key
// space is bounded by the vehicle fleet.
func (s *vehicleLockSet) Lock(vehicleNumber string) func() {
	s.mu.Lock()
	l, ok := s.locks[vehicleNumber]
	if !ok {
		l = &sync.Mutex{}
		s.locks[vehicleNumber] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
