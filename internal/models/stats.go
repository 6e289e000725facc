package models

// TaskStatsDB holds the raw task counters of a reporting window.
type TaskStatsDB struct {
	Total          int     `db:"total"`
	Completed      int     `db:"completed"`
	Failed         int     `db:"failed"`
	FailedRefunded int     `db:"failed_refunded"`
	Pending        int     `db:"pending"`
	Processing     int     `db:"processing"`
	InFlight       int     `db:"inflight"`
	Stuck          int     `db:"stuck"`
	P95Seconds     float64 `db:"p95_seconds"`
	AvgSeconds     float64 `db:"avg_seconds"`
}

// TaskCounts are task counts by status.
// swagger:model TaskCounts
type TaskCounts struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Failed         int `json:"failed"`
	FailedRefunded int `json:"failedRefunded"`
	Pending        int `json:"pending"`
	Processing     int `json:"processing"`
	Terminal       int `json:"terminal"`
	InFlight       int `json:"inflight"`
	Stuck          int `json:"stuck"`
}

// TaskRates are ratios in [0, 1] rounded to four decimals.
// swagger:model TaskRates
type TaskRates struct {
	SuccessRate float64 `json:"successRate"`
	RefundRate  float64 `json:"refundRate"`
	StuckRate   float64 `json:"stuckRate"`
}

// TaskLatency is the completion time of completed tasks.
// swagger:model TaskLatency
type TaskLatency struct {
	P95Seconds float64 `json:"p95Seconds"`
	AvgSeconds float64 `json:"avgSeconds"`
}

// TaskStats summarizes generation tasks for the admin dashboard.
// swagger:model TaskStats
type TaskStats struct {
	WindowHours  int         `json:"windowHours"`
	StaleSeconds int         `json:"staleSeconds"`
	Counts       TaskCounts  `json:"counts"`
	Rates        TaskRates   `json:"rates"`
	Latency      TaskLatency `json:"latency"`
}
