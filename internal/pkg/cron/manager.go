package cron

import (
	"MedWarehouse/internal/api/config"
	"MedWarehouse/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine      *cron.Cron
	pipelineJob *job.PipelineJob
}

func NewCronManager(pipelineJob *job.PipelineJob) *Manager {
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		pipelineJob: pipelineJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	schedule := config.Cfg.Pipeline.Schedule
	if schedule == "" {
		schedule = "@daily"
	}
	if _, err := s.engine.AddJob(schedule, s.pipelineJob); err != nil {
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
