package domain

import "context"

// RunnerPort accepts scan requests; the pipeline itself runs on the worker
type RunnerPort interface {
	RunScan(ctx context.Context, in RunInput) (string, error)
}

// QueryPort reads job status and checkpoint history
type QueryPort interface {
	Job(ctx context.Context, id string) (JobView, error)
}

// WorkerPort drains queued scans
type WorkerPort interface {
	Run(ctx context.Context) error
	DrainOnce(ctx context.Context) (int, error)
}
