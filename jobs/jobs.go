package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher reloads cached admin lists from the store.
type Refresher interface {
	RefreshCaches(ctx context.Context) error
}

const refreshTimeout = 30 * time.Second

/*
* Register the cache refresh on the given cron spec
* Start the scheduler and hand it back so the caller can stop it
 */
func StartCacheRefresher(spec string, r Refresher) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		RunCacheRefresh(r)
	})
	if err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("Error from cron AddFunc")
		return nil, err
	}
	c.Start()
	log.Info().Str("spec", spec).Msg("cache refresher scheduled")
	return c, nil
}

func RunCacheRefresh(r Refresher) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	log.Debug().Msg("Running admin cache refresh...")
	if err := r.RefreshCaches(ctx); err != nil {
		log.Error().Err(err).Msg("Error from RefreshCaches")
	}
}
