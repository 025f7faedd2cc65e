// Package snapshots persists periodic captures of the dashboard read
// model so that portfolio trends can be inspected over time.
package snapshots

import (
	"encoding/json"
	"os"
	"time"

	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/reports"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// defaultSchedule is used when SNAPSHOT_SCHEDULE is not set.
const defaultSchedule = "@daily"

// Scheduler captures a dashboard snapshot for every portfolio on a cron
// schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
}

// NewScheduler creates a scheduler with the schedule from the
// SNAPSHOT_SCHEDULE environment variable, falling back to a daily run.
func NewScheduler() *Scheduler {
	schedule, ok := os.LookupEnv("SNAPSHOT_SCHEDULE")
	if !ok || schedule == "" {
		schedule = defaultSchedule
	}

	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start registers the capture job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := CaptureAll(time.Now()); err != nil {
			log.Error().Err(err).Msg("Snapshots")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Snapshots")

	return nil
}

// Stop stops the cron loop and waits for a running capture to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// CaptureAll renders and persists the default dashboard read model for
// every portfolio. A failing portfolio does not stop the others, the
// first error is returned after all portfolios were tried.
func CaptureAll(now time.Time) error {
	var portfolios []models.Portfolio
	if err := models.DB.Find(&portfolios).Error; err != nil {
		return err
	}

	var firstErr error
	for _, portfolio := range portfolios {
		if err := Capture(portfolio, now); err != nil {
			log.Error().Err(err).Str("portfolio", portfolio.ID.String()).Msg("Snapshots")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Capture renders and persists one portfolio's dashboard.
func Capture(portfolio models.Portfolio, now time.Time) error {
	dashboard, err := reports.Build(portfolio, now, reports.DefaultOptions())
	if err != nil {
		return err
	}

	payload, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}

	snapshot := models.DashboardSnapshot{
		PortfolioID: portfolio.ID,
		CapturedAt:  now.UTC(),
		Payload:     payload,
	}

	return models.DB.Create(&snapshot).Error
}
