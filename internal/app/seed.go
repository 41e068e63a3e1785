package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"homenest/internal/domain"
)

// Seeder bulk-loads properties through PropertyService so that seeded rows
// get the same defaults as API-created ones.
type Seeder struct {
	props   *PropertyService
	workers int64
	limiter *rate.Limiter
}

type SeedReport struct {
	Inserted int64
	Failed   int64
}

// NewSeeder bounds concurrency to workers and inserts to rps per second.
// rps <= 0 disables throttling.
func NewSeeder(p *PropertyService, workers int, rps float64) *Seeder {
	if workers <= 0 {
		workers = 1
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Seeder{props: p, workers: int64(workers), limiter: lim}
}

// LoadSeedFile reads a JSON array of properties.
func LoadSeedFile(path string) ([]domain.Property, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var out []domain.Property
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return out, nil
}

// Run inserts every item. Individual failures are counted and logged; only
// context cancellation stops the run early.
func (s *Seeder) Run(ctx context.Context, items []domain.Property) (SeedReport, error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg               sync.WaitGroup
		inserted, failed atomic.Int64
	)

	for i, p := range items {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return SeedReport{Inserted: inserted.Load(), Failed: failed.Load()}, err
		}

		wg.Add(1)
		go func(i int, p domain.Property) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.limiter.Wait(ctx); err != nil {
				failed.Add(1)
				return
			}
			id, err := s.props.Create(ctx, p)
			if err != nil {
				failed.Add(1)
				log.Warn().Int("index", i).Str("name", p.PropertyName).Err(err).Msg("seed insert failed")
				return
			}
			inserted.Add(1)
			log.Debug().Int("index", i).Str("id", id.Hex()).Msg("seed insert ok")
		}(i, p)
	}

	wg.Wait()
	return SeedReport{Inserted: inserted.Load(), Failed: failed.Load()}, ctx.Err()
}
