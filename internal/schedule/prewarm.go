package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/cities"
)

// prewarmDays is the rolling window the sweep keeps warm.
const prewarmDays = 7

// Prewarm recomputes and stores prayer times for every built-in city for
// the next prewarmDays days starting at referenceDate. Recomputation is
// deterministic, so existing entries are overwritten unconditionally, and
// an overlapping sweep is safe without locking. One bad city/date never
// aborts the rest.
func (c *Cache) Prewarm(referenceDate time.Time) {
	var stored, failed int

	for _, city := range cities.All() {
		loc := city.Location()
		for offset := 0; offset < prewarmDays; offset++ {
			date := referenceDate.AddDate(0, 0, offset)

			entry, err := c.calc.ForDate(loc.Name, loc.Latitude, loc.Longitude, date, loc.Timezone)
			if err != nil {
				log.Error().Err(err).Str("city", loc.Name).Time("date", date).Msg("prewarm compute failed, skipping")
				failed++
				continue
			}
			if err := c.store.UpsertPrayerTimes(entry); err != nil {
				log.Error().Err(err).Str("city", loc.Name).Time("date", date).Msg("prewarm store failed, skipping")
				failed++
				continue
			}
			stored++
		}
	}

	log.Info().Int("stored", stored).Int("failed", failed).Msg("prewarm sweep finished")
}

// Runner fires the pre-warm sweep on a fixed interval (daily in
// production) until its context is canceled.
type Runner struct {
	cache    *Cache
	interval time.Duration
}

func NewRunner(cache *Cache, interval time.Duration) *Runner {
	return &Runner{cache: cache, interval: interval}
}

// Run sweeps once immediately, then on every tick.
func (r *Runner) Run(ctx context.Context) {
	r.cache.Prewarm(time.Now())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("prewarm runner stopping")
			return
		case <-ticker.C:
			r.cache.Prewarm(time.Now())
		}
	}
}
