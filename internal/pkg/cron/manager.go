package cron

import (
	"Beacon/internal/api/config"
	"Beacon/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	tokenRefreshJob *job.TokenRefreshJob
}

func NewCronManager(tokenRefreshJob *job.TokenRefreshJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		tokenRefreshJob: tokenRefreshJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	spec := config.Cfg.Cron.TokenRefreshSpec
	if spec == "" {
		spec = "@hourly"
	}
	if _, err := s.engine.AddJob(spec, s.tokenRefreshJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
