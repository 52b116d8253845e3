package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// SchedulePurge starts a cron job that deletes expired sessions on spec
// (for example "@hourly"). Stop the returned scheduler on shutdown.
func (s *Service) SchedulePurge(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := s.PurgeExpired(context.Background())
		if err != nil {
			log.Printf("purge sessions: %v", err)
			return
		}
		if n > 0 {
			log.Printf("purged %d expired sessions", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session purge %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
