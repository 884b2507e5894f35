package storage

import (
	"context"
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	storageInterfaces "reviewreminder/internal/storage/interfaces"
	"reviewreminder/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Prober checks connectivity once and publishes the result.
type Prober interface {
	Probe(ctx context.Context) models.NetworkState
}

type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  interfaces.KeyValueStore
	prober Prober
	cron   *gron.Cron
	opsMu  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if interval := s.config.Storage.SaveInterval; interval > 0 {
		s.cron.AddFunc(gron.Every(interval), func() {
			if err := s.Persist(); err == nil {
				s.logger.Debugf(providers.TypeApp, "Settings flushed")
			}
		})
	}

	if s.prober != nil && s.config.Reachability.ProbeURL != "" {
		interval := s.config.Reachability.Interval
		if interval <= 0 {
			interval = 30 * time.Second
		}
		s.cron.AddFunc(gron.Every(interval), s.probe)
		// the first probe resolves the Unknown state without waiting a full interval
		go s.probe()
	}

	s.cron.Start()
}

func (s *Scheduler) probe() {
	state := s.prober.Probe(s.ctx)
	s.logger.Debugf(providers.TypeReachability, "Probe result: %s", state)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.cancel()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.store.Flush()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while flushing settings: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store interfaces.KeyValueStore, prober Prober) storageInterfaces.SchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
		prober: prober,
		ctx:    ctx,
		cancel: cancel,
	}
}
