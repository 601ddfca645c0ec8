package scheduler

import (
	"fmt"
	"sync"
	"time"

	"ahp_profiler/config"
	"ahp_profiler/logger"
	"ahp_profiler/services"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// TaskType identifies a scheduled job.
type TaskType int

const (
	TaskKnowledgeReload TaskType = iota
)

// TaskStatus tracks one scheduled job.
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler periodically re-reads the rule files so hand edits to the
// YAML sources are picked up without an admin call.
type Scheduler struct {
	cfg   *config.Config
	kb    *services.KnowledgeBase
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

// NewScheduler builds a scheduler over the knowledge base.
func NewScheduler(cfg *config.Config, kb *services.KnowledgeBase) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		kb:    kb,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start launches the scheduler loop when periodic reload is enabled.
func Start(cfg *config.Config, kb *services.KnowledgeBase) {
	if !cfg.Scheduler.ReloadEnabled {
		logger.Info("periodic knowledge base reload disabled")
		return
	}

	s := NewScheduler(cfg, kb)
	s.initTasks()
	go s.run()

	logger.Info("scheduler started",
		"check_interval_sec", cfg.Scheduler.CheckIntervalSec,
		"reload_interval_sec", cfg.Scheduler.ReloadIntervalSec)
}

func (s *Scheduler) initTasks() {
	now := time.Now()
	interval := secondsToDuration(s.cfg.Scheduler.ReloadIntervalSec)

	s.tasks[TaskKnowledgeReload] = &TaskStatus{
		LastRun:     now,
		NextRun:     now.Add(interval),
		IsRunning:   false,
		Description: fmt.Sprintf("knowledge base reload (every %ds)", s.cfg.Scheduler.ReloadIntervalSec),
	}

	logger.Info("scheduled tasks initialized", "task_count", len(s.tasks))
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(secondsToDuration(s.cfg.Scheduler.CheckIntervalSec))
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning {
			continue
		}
		if status.NextRun.IsZero() {
			continue
		}
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		switch taskType {
		case TaskKnowledgeReload:
			status.NextRun = now.Add(secondsToDuration(s.cfg.Scheduler.ReloadIntervalSec))
		}

		logger.Info("task finished", "task", status.Description,
			"next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskKnowledgeReload:
		s.kb.Reload()
	}
}
