package scheduler

import (
	"context"
	"time"
)

// Job is a pipeline task run on a cron schedule (metrics refresh, export cleanup)
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	Name() string

	// Run is retried by the scheduler, so it must be safe to repeat:
	// exports overwrite the same key, cleanup skips missing files.
	Run(ctx context.Context) error

	// Schedule is a six-field cron expression, e.g. "0 0 6 * * 2"
	// (Tuesday 06:00, after the Cartola round closes) or "@every 6h".
	Schedule() string
}

// JobResult is one scheduled run including its retries
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// maxHistory is the number of results kept per job
const maxHistory = 100

// JobHistory is a bounded, oldest-first log of runs
type JobHistory struct {
	Results []JobResult
}

// AddResult appends result, dropping the oldest beyond maxHistory
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)

	if len(h.Results) > maxHistory {
		h.Results = h.Results[len(h.Results)-maxHistory:]
	}
}

// GetLatestResults returns up to n of the newest results, oldest first
func (h *JobHistory) GetLatestResults(n int) []JobResult {
	if n > len(h.Results) {
		n = len(h.Results)
	}

	out := make([]JobResult, n)
	copy(out, h.Results[len(h.Results)-n:])
	return out
}

func (h *JobHistory) GetFailedResults() []JobResult {
	failed := make([]JobResult, 0)
	for _, result := range h.Results {
		if !result.Success {
			failed = append(failed, result)
		}
	}
	return failed
}

// LastSuccess returns the newest successful run
func (h *JobHistory) LastSuccess() (JobResult, bool) {
	return h.last(true)
}

// LastFailure returns the newest failed run
func (h *JobHistory) LastFailure() (JobResult, bool) {
	return h.last(false)
}

func (h *JobHistory) last(success bool) (JobResult, bool) {
	for i := len(h.Results) - 1; i >= 0; i-- {
		if h.Results[i].Success == success {
			return h.Results[i], true
		}
	}
	return JobResult{}, false
}

// GetSuccessRate returns the success rate (0.0 - 1.0); 0 with no runs
func (h *JobHistory) GetSuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	successCount := 0
	for _, result := range h.Results {
		if result.Success {
			successCount++
		}
	}

	return float64(successCount) / float64(len(h.Results))
}
