package collider

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrWorkerStopped is returned for requests sent to a stopped worker.
var ErrWorkerStopped = errors.New("collider: worker stopped")

// Request asks a worker for one simulation.
type Request struct {
	ID      uint64      `msgpack:"id"`
	Config  BlockConfig `msgpack:"config"`
	Options Options     `msgpack:"options"`
}

// Response carries the outcome of a Request.
type Response struct {
	ID         uint64        `msgpack:"id"`
	Records    []Record      `msgpack:"records"`
	Collisions int64         `msgpack:"collisions"`
	Elapsed    time.Duration `msgpack:"elapsed"`
	Err        string        `msgpack:"err,omitempty"`
}

type job struct {
	ctx   context.Context
	req   Request
	reply chan Response
}

// Worker computes simulations on its own goroutine, one at a time, so a
// caller driving an animation never blocks on a long run. Abandoning a
// request cancels the computation; partial results are discarded.
type Worker struct {
	jobs   chan job
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
	logger *log.Logger
}

// NewWorker starts a worker. logger may be nil.
func NewWorker(logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.Default()
	}
	w := &Worker{
		jobs:   make(chan job),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger.WithPrefix("collider"),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case j := <-w.jobs:
			j.reply <- w.handle(j)
		}
	}
}

func (w *Worker) handle(j job) Response {
	start := time.Now()
	records, err := SimulateContext(j.ctx, j.req.Config, j.req.Options)
	resp := Response{
		ID:         j.req.ID,
		Records:    records,
		Collisions: CountCollisions(records),
		Elapsed:    time.Since(start),
	}
	if err != nil {
		resp.Err = err.Error()
		w.logger.Warn("simulation failed", "id", j.req.ID, "err", err)
		return resp
	}
	w.logger.Debug("simulation done", "id", j.req.ID, "records", len(records), "collisions", resp.Collisions, "elapsed", resp.Elapsed)
	return resp
}

// Calculate submits req and waits for its response. If ctx ends first the
// computation is abandoned and ctx's error returned.
func (w *Worker) Calculate(ctx context.Context, req Request) (Response, error) {
	reply := make(chan Response, 1)
	select {
	case w.jobs <- job{ctx: ctx, req: req, reply: reply}:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-w.quit:
		return Response{}, ErrWorkerStopped
	}

	select {
	case resp := <-reply:
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Stop terminates the worker once the current job, if any, has finished
// or noticed its cancellation.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}
