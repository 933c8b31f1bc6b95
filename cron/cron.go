package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"healthcare-backend/blacklist"
)

// StartCronJobs schedules the hourly purge of blacklist entries whose
// tokens have expired on their own.
func StartCronJobs(store blacklist.Store) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		purgeExpiredTokens(store)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for token blacklist cleanup")
}

func purgeExpiredTokens(store blacklist.Store) {
	purged, err := store.PurgeExpired(time.Now())
	if err != nil {
		log.Printf("Error purging expired blacklist entries: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d expired blacklist entries", purged)
	}
}
