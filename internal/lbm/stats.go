package lbm

// TickStats summarises the mass pass of one tick.
type TickStats struct {
	Tick        int
	Filled      int
	Emptied     int
	Orphans     int
	DroppedMass float64
}

// LastTick returns the statistics of the most recent tick.
func (s *Sim) LastTick() TickStats { return s.last }

// DroppedMass is the total mass lost to redistribution since construction.
func (s *Sim) DroppedMass() float64 { return s.dropped }

// Ticks returns the number of ticks simulated.
func (s *Sim) Ticks() int { return s.ticks }
