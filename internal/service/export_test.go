package service

import "time"

// SetClock pins "today" for services that read the clock.
func SetClock(svc any, now func() time.Time) {
	switch s := svc.(type) {
	case *petService:
		s.now = now
	case *visitService:
		s.now = now
	}
}
