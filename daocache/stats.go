package daocache

import "github.com/puzpuzpuz/xsync/v3"

// Stats is a point in time snapshot of a Store's cache activity.
type Stats struct {
	Hits    int64
	Misses  int64
	Writes  int64
	Deletes int64
	Errors  int64
}

// HitRatio returns hits / (hits + misses), or 0 before any read.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type counters struct {
	hits    *xsync.Counter
	misses  *xsync.Counter
	writes  *xsync.Counter
	deletes *xsync.Counter
	errors  *xsync.Counter
}

func newCounters() *counters {
	return &counters{
		hits:    xsync.NewCounter(),
		misses:  xsync.NewCounter(),
		writes:  xsync.NewCounter(),
		deletes: xsync.NewCounter(),
		errors:  xsync.NewCounter(),
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:    c.hits.Value(),
		Misses:  c.misses.Value(),
		Writes:  c.writes.Value(),
		Deletes: c.deletes.Value(),
		Errors:  c.errors.Value(),
	}
}

func (c *counters) reset() {
	c.hits.Reset()
	c.misses.Reset()
	c.writes.Reset()
	c.deletes.Reset()
	c.errors.Reset()
}
