package jobs

import (
	"context"
	"fmt"
	"log"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/model"
)

// ProgressFunc reports how far a running job has come.
type ProgressFunc func(current, total int, message string)

// JobFunc is the work of a job. Its result is stored on the job when it
// returns without error.
type JobFunc func(ctx context.Context, progress ProgressFunc) (any, error)

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	ctx      context.Context
	stop     context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *JobMetrics
	claimed  map[string]struct{} // Jobs handed to ExecuteJob, guarded by mu
}

// NewManager creates a new job manager running at most maxWorkers jobs at once.
func NewManager(maxWorkers int) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		claimed: make(map[string]struct{}),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		stop:    stop,
		metrics: NewJobMetrics(),
	}
}

// Start begins background cleanup of finished jobs
func (m *Manager) Start() {
	log.Printf("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return. It is safe to call
// more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		// Cancelling under mu orders it against ExecuteJob's wg.Add.
		m.mu.Lock()
		m.stop()
		m.mu.Unlock()
		m.wg.Wait()
		log.Printf("Job manager stopped")
	})
}

// CreateJob registers a pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	log.Printf("Created job %s (type: %s)", job.ID, job.Type)
	return job.ID
}

// GetJob retrieves a copy of a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs, oldest first, optionally filtered by status
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// copyJob copies everything but Result, which job functions never mutate
// after returning it.
func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	jobCopy.Metadata = maps.Clone(job.Metadata)
	return &jobCopy
}

// ExecuteJob runs jobFunc for a pending job in the background. The job waits
// for a free worker slot before it starts running.
func (m *Manager) ExecuteJob(jobID string, jobFunc JobFunc) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if _, taken := m.claimed[jobID]; taken || job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	if m.ctx.Err() != nil {
		m.setStatusUnsafe(job, model.JobStatusCancelled, "Job manager shutting down")
		m.mu.Unlock()
		return fmt.Errorf("job manager is shutting down")
	}
	m.claimed[jobID] = struct{}{}
	jobType := job.Type
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
			defer func() { <-m.workers }()
		case <-m.ctx.Done():
			m.updateJobStatus(jobID, model.JobStatusCancelled, "Job manager shutting down")
			return
		}

		m.markRunning(jobID)
		startTime := time.Now()

		result, err := jobFunc(m.ctx, func(current, total int, message string) {
			m.UpdateJobProgress(jobID, current, total, message)
		})

		executionTime := time.Since(startTime)
		switch {
		case err != nil && m.ctx.Err() != nil:
			m.updateJobStatus(jobID, model.JobStatusCancelled, err.Error())
			log.Printf("Job %s cancelled after %v: %v", jobID, executionTime, err)
		case err != nil:
			m.updateJobStatus(jobID, model.JobStatusFailed, err.Error())
			m.metrics.RecordJobFailed(jobType)
			log.Printf("Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.setResult(jobID, result)
			m.updateJobStatus(jobID, model.JobStatusCompleted, "")
			m.metrics.RecordJobCompleted(jobType, executionTime)
			log.Printf("Job %s completed successfully in %v", jobID, executionTime)
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}

	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

func (m *Manager) markRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	oldStatus := job.Status
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(oldStatus, job.Status)
}

func (m *Manager) setResult(jobID string, result any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, exists := m.jobs[jobID]; exists {
		job.Result = result
	}
}

// updateJobStatus updates the status of a job (internal method)
func (m *Manager) updateJobStatus(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, exists := m.jobs[jobID]; exists {
		m.setStatusUnsafe(job, status, errorMsg)
	}
}

// setStatusUnsafe moves job to status. Callers must hold m.mu.
func (m *Manager) setStatusUnsafe(job *model.Job, status model.JobStatus, errorMsg string) {
	oldStatus := job.Status
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	if status.IsTerminal() {
		now := time.Now()
		job.CompletedAt = &now
		delete(m.claimed, job.ID)
	}

	m.metrics.RecordJobStatusChange(oldStatus, status)
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old jobs", cleaned)
	}
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
