package cron

import (
	"context"
	"log"
	"time"
)

// WarmReferenceCache re-primes the stream and interest lists
func (m *CronManager) WarmReferenceCache() {
	start := time.Now()
	log.Println("[CRON] warm_reference_cache: starting")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := m.refs.Warm(ctx); err != nil {
		log.Printf("[CRON] warm_reference_cache: failed after %v: %v", time.Since(start), err)
		return
	}

	log.Printf("[CRON] warm_reference_cache: completed in %v", time.Since(start))
}
