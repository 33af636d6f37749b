package download

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/transcode"
)

// Task ID prefix
const taskIDPrefix = "job-"

// Service runs pipelines on a bounded worker pool: at most maxParallel
// jobs execute concurrently, the rest queue as Pending. Each submitted job
// receives zero or more progress updates followed by exactly one terminal
// update (Completed or Error).
type Service struct {
	tasks       map[string]*model.PipelineTask
	tasksMutex  sync.RWMutex
	fs          afero.Fs
	engine      Engine
	converter   transcode.Converter
	extractor   transcode.Extractor
	maxParallel int
	activeCount int
	onUpdate    func(*model.PipelineTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(fs afero.Fs, engine Engine, converter transcode.Converter, extractor transcode.Extractor, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		tasks:       make(map[string]*model.PipelineTask),
		fs:          fs,
		engine:      engine,
		converter:   converter,
		extractor:   extractor,
		maxParallel: maxParallel,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.PipelineTask)) {
	s.onUpdate = callback
}

// Submit validates and enqueues a job, starting it immediately when the
// pool has capacity. Invalid jobs are rejected here and never reach a
// worker.
func (s *Service) Submit(job model.Job) (*model.PipelineTask, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Reject a duplicate of a still-running URL
	for _, task := range s.tasks {
		if task.Job.URL == job.URL && !task.Status.IsFinished() {
			return nil, fmt.Errorf("task already exists for URL: %s", job.URL)
		}
	}

	task := &model.PipelineTask{
		ID:        generateTaskID(),
		Job:       job,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task

	if s.activeCount < s.maxParallel {
		go s.startTask(task)
	}

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.PipelineTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.PipelineTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.PipelineTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// startTask runs one pipeline on the worker goroutine and emits the single
// terminal update when it finishes.
func (s *Service) startTask(task *model.PipelineTask) {
	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusPending {
		// Already picked up by another worker slot
		s.tasksMutex.Unlock()
		return
	}
	s.activeCount++
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.tasksMutex.Unlock()

		s.startNextPendingTask()
	}()

	pipeline := NewPipeline(s.fs, s.engine, s.converter, s.extractor, task.Job,
		func(percent float64) {
			s.tasksMutex.Lock()
			task.Percent = percent
			task.Progress = percent / 100.0
			s.tasksMutex.Unlock()
			s.notifyUpdate(task)
		},
		func(status model.TaskStatus) {
			s.tasksMutex.Lock()
			task.Status = status
			s.tasksMutex.Unlock()
			s.notifyUpdate(task)
		},
	)

	outcome := pipeline.Run(context.Background())

	s.tasksMutex.Lock()
	task.SafeTitle = pipeline.SafeTitle()
	task.VideoPath, task.AudioPath = pipeline.Artifacts()
	task.Message = outcome.Message
	if outcome.Succeeded {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	} else {
		task.Status = model.TaskStatusError
		task.LastError = outcome.Message
		log.Printf("Task %s failed (%s): %s", task.ID, outcome.Failure, outcome.Message)
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// startNextPendingTask starts the next pending task if we have capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.activeCount >= s.maxParallel {
		return
	}

	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending {
			go s.startTask(task)
			return
		}
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.PipelineTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better
// uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(taskIDPrefix+"%d", time.Now().UnixNano())
	}
	return taskIDPrefix + id.String()
}
