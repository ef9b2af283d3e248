package scheduler

import (
	"context"
	"time"

	"github.com/dkrylov/irrbb-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs periodic revaluations of the stored banking book.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// NewScheduler initializes a scheduler
func NewScheduler(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}
}

// Start registers the revaluation job under the given cron spec and
// launches the scheduler
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runValuation)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Scheduled revaluation registered: %s", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runValuation() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.log.Info("Starting scheduled revaluation")
	if _, err := s.svc.RunValuation(ctx); err != nil {
		s.log.Errorf("Scheduled revaluation failed: %v", err)
	}
}
