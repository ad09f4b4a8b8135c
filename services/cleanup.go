package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/AreaFiftyLAN/landev/repository"
)

// CleanupService sweeps expired authentication tokens in the background.
// Expiry is enforced at lookup time regardless, the sweep only keeps the
// token table from growing without bound.
type CleanupService struct {
	tokens   repository.AuthTokenRepo
	log      *zap.Logger
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCleanupService(tokens repository.AuthTokenRepo, log *zap.Logger, interval time.Duration) *CleanupService {
	return &CleanupService{
		tokens:   tokens,
		log:      log,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for the current sweep to finish.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *CleanupService) sweep() {
	n, err := s.tokens.DeleteExpiredBefore(time.Now())
	if err != nil {
		s.log.Warn("token sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired tokens removed", zap.Int64("count", n))
	}
}
