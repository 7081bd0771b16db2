package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/pkg/metrics"
)

const channelBuffer = 256

// ErrPoolStopped is returned for jobs submitted after the pool shut down.
var ErrPoolStopped = errors.New("hash pool stopped")

type jobKind int

const (
	jobHash jobKind = iota
	jobCompare
)

type hashJob struct {
	kind      jobKind
	plaintext string
	hash      string
	reply     chan hashResult
}

type hashResult struct {
	hash  string
	match bool
	err   error
}

// HashPool runs bcrypt on a fixed set of workers fed by a buffered channel.
type HashPool struct {
	jobs    chan hashJob
	cost    int
	workers int
	done    chan struct{}
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers hashing at cost.
// If numWorkers <= 0, runtime.NumCPU() is used. A cost outside bcrypt's
// range falls back to bcrypt.DefaultCost.
func NewHashPool(numWorkers, cost int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &HashPool{
		jobs:    make(chan hashJob, channelBuffer),
		cost:    cost,
		workers: numWorkers,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs submitted afterwards fail with ErrPoolStopped.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
}

// Hash returns the bcrypt digest of plaintext. Inputs bcrypt cannot take
// are refused as a password validation error without reaching a worker.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	if len(plaintext) > domain.MaxPasswordBytes {
		return "", &domain.ValidationError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes", domain.MaxPasswordBytes)}
	}
	res, err := p.submit(ctx, hashJob{kind: jobHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Compare reports whether plaintext matches hash. A mismatch is not an
// error; a malformed hash is.
func (p *HashPool) Compare(ctx context.Context, hash, plaintext string) (bool, error) {
	res, err := p.submit(ctx, hashJob{kind: jobCompare, hash: hash, plaintext: plaintext})
	if err != nil {
		return false, err
	}
	return res.match, res.err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	select {
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	default:
	}

	job.reply = make(chan hashResult, 1)
	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case res := <-job.reply:
		return res, nil
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			job.reply <- p.execute(job, id)
		}
	}
}

func (p *HashPool) execute(job hashJob, workerID int) hashResult {
	start := time.Now()
	switch job.kind {
	case jobHash:
		b, err := bcrypt.GenerateFromPassword([]byte(job.plaintext), p.cost)
		metrics.HashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
		if err != nil {
			p.log.Error().Err(err).Int("worker_id", workerID).Msg("password hashing failed")
			return hashResult{err: fmt.Errorf("bcrypt hash: %w", err)}
		}
		return hashResult{hash: string(b)}
	default:
		err := bcrypt.CompareHashAndPassword([]byte(job.hash), []byte(job.plaintext))
		metrics.HashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
		switch {
		case err == nil:
			return hashResult{match: true}
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return hashResult{match: false}
		default:
			return hashResult{err: fmt.Errorf("bcrypt compare: %w", err)}
		}
	}
}
