package scheduler

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/walk"
)

// LocationLister reports locations already present in the forecast cache,
// so ad-hoc queried locations stay warm alongside stored preferences.
type LocationLister interface {
	Locations() []string
}

// Scheduler periodically re-fetches forecasts for every location that
// appears in stored preferences or in the forecast cache, keeping the cache
// warm so best-walk requests rarely block on the provider.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *walk.Service
	repo      prefs.Repository
	cached    LocationLister
	interval  time.Duration
}

func New(repo prefs.Repository, cached LocationLister, interval time.Duration, service *walk.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		repo:      repo,
		cached:    cached,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stored, err := s.repo.Locations(ctx)
	if err != nil {
		log.Printf("scheduler: listing preference locations failed: %v", err)
		return
	}

	seen := make(map[string]struct{})
	var locations []string
	add := func(locs []string) {
		for _, loc := range locs {
			key := strings.ToLower(strings.TrimSpace(loc))
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			locations = append(locations, loc)
		}
	}
	add(stored)
	if s.cached != nil {
		add(s.cached.Locations())
	}

	if len(locations) == 0 {
		return
	}

	log.Printf("scheduler: refreshing forecasts for %d locations", len(locations))

	var wg sync.WaitGroup
	for _, loc := range locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			fetchCtx, fetchCancel := context.WithTimeout(ctx, 30*time.Second)
			defer fetchCancel()

			if err := s.service.RefreshForecast(fetchCtx, loc); err != nil {
				log.Printf("scheduler: forecast refresh failed for %q: %v", loc, err)
			}
		}()
	}
	wg.Wait()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
