package catalog

import (
	"context"
	"log/slog"
	"time"

	"seriesrip/internal/logging"
	"seriesrip/internal/services/tvdb"
)

// Service reads episode listings through the local cache, falling back to
// the remote catalog on miss or expiry.
type Service struct {
	lister   tvdb.Lister
	store    *Store
	language string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService constructs a cache-backed catalog service. A nil store disables
// caching and every call goes remote.
func NewService(lister tvdb.Lister, store *Store, language string, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		lister:   lister,
		store:    store,
		language: language,
		ttl:      ttl,
		logger:   logging.NewComponentLogger(logger, "catalog"),
	}
}

// Episodes returns the full listing for one numbering view.
func (s *Service) Episodes(ctx context.Context, seriesID int64, seasonType tvdb.SeasonType) ([]tvdb.Episode, error) {
	if s.store != nil {
		cached, ok, err := s.store.Get(ctx, seriesID, seasonType, s.language, s.ttl)
		if err != nil {
			s.logger.Warn("catalog cache read failed; fetching remote", logging.Error(err))
		} else if ok {
			s.logger.Debug("catalog cache hit",
				logging.String("season_type", string(seasonType)),
				logging.Int("episodes", len(cached)),
			)
			return cached, nil
		}
	}

	episodes, err := s.lister.FetchAllEpisodes(ctx, seriesID, seasonType)
	if err != nil {
		return nil, err
	}
	s.logger.Info("fetched episode listing",
		logging.String("season_type", string(seasonType)),
		logging.Int("episodes", len(episodes)),
	)

	if s.store != nil {
		if err := s.store.Put(ctx, seriesID, seasonType, s.language, episodes); err != nil {
			s.logger.Warn("catalog cache write failed", logging.Error(err))
		}
	}
	return episodes, nil
}
