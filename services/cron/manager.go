package cron

import (
	"log"

	"github.com/campusmatch/college-discovery-api/services/discovery"
	"github.com/robfig/cron/v3"
)

// CronManager manages all scheduled jobs
type CronManager struct {
	cron *cron.Cron
	refs *discovery.ReferenceCache
}

// NewCronManager creates a new cron manager
func NewCronManager(refs *discovery.ReferenceCache) *CronManager {
	return &CronManager{
		cron: cron.New(),
		refs: refs,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 4 minutes: re-warm the reference cache so the 5-minute TTL
	// never expires on a live request path
	_, err := m.cron.AddFunc("*/4 * * * *", m.WarmReferenceCache)
	if err != nil {
		return err
	}

	return nil
}
