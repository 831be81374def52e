package monitor

import "time"

// Session counts what happened to the analyses of one client session
type Session struct {
	Issued    *Counter // requests dispatched to the service
	Applied   *Counter // success responses merged into the store
	Ignored   *Counter // 2xx responses that carried nothing to apply
	Failed    *Counter // service, network and malformed-response failures
	Rejected  *Counter // analyses refused before dispatch (empty URL)
	Discarded *Counter // responses dropped because a newer request exists
	InFlight  *Gauge
	Latency   *Timer
}

// NewSession creates zeroed session statistics
func NewSession() *Session {
	return &Session{
		Issued:    NewCounter("issued"),
		Applied:   NewCounter("applied"),
		Ignored:   NewCounter("ignored"),
		Failed:    NewCounter("failed"),
		Rejected:  NewCounter("rejected"),
		Discarded: NewCounter("discarded"),
		InFlight:  NewGauge("in_flight"),
		Latency:   NewTimer("latency"),
	}
}

// Snapshot is a point-in-time copy of Session
type Snapshot struct {
	Issued      int64         `json:"issued"`
	Applied     int64         `json:"applied"`
	Ignored     int64         `json:"ignored"`
	Failed      int64         `json:"failed"`
	Rejected    int64         `json:"rejected"`
	Discarded   int64         `json:"discarded"`
	InFlight    int64         `json:"in_flight"`
	LastLatency time.Duration `json:"last_latency"`
	AvgLatency  time.Duration `json:"avg_latency"`
	MaxLatency  time.Duration `json:"max_latency"`
}

// Snapshot copies the current values
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Issued:      s.Issued.Get(),
		Applied:     s.Applied.Get(),
		Ignored:     s.Ignored.Get(),
		Failed:      s.Failed.Get(),
		Rejected:    s.Rejected.Get(),
		Discarded:   s.Discarded.Get(),
		InFlight:    s.InFlight.Get(),
		LastLatency: s.Latency.Last(),
		AvgLatency:  s.Latency.AvgTime(),
		MaxLatency:  s.Latency.MaxTime(),
	}
}
