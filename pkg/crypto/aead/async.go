// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"context"
	"runtime"
	"sync"

	"github.com/pion/logging"
)

// AsyncTemplateName is the template that offloads an engine to workers.
const AsyncTemplateName = "cryptd"

type asyncJob struct {
	ctx     context.Context //nolint:containedctx
	req     *Request
	encrypt bool
	result  chan asyncResult
}

type asyncResult struct {
	out []byte
	err error
}

// asyncEngine runs the operations of an inner engine on a pool of worker
// goroutines. Callers block until their request completes, the context is
// done or the engine is closed.
type asyncEngine struct {
	inner Engine

	jobs      chan asyncJob
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	log logging.LeveledLogger
}

// NewAsync wraps inner so that Encrypt and Decrypt execute on workers
// goroutines. A workers value <= 0 uses runtime.NumCPU(). The returned engine
// owns inner.
func NewAsync(inner Engine, workers int, loggerFactory logging.LoggerFactory) Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	a := &asyncEngine{
		inner: inner,
		jobs:  make(chan asyncJob),
		done:  make(chan struct{}),
		log:   loggerFactory.NewLogger("aead"),
	}

	a.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go a.worker()
	}

	return a
}

func (a *asyncEngine) worker() {
	defer a.wg.Done()

	for {
		select {
		case <-a.done:
			return
		case job := <-a.jobs:
			var r asyncResult
			if job.encrypt {
				r.out, r.err = a.inner.Encrypt(job.ctx, job.req)
			} else {
				r.out, r.err = a.inner.Decrypt(job.ctx, job.req)
			}
			job.result <- r
		}
	}
}

func (a *asyncEngine) submit(ctx context.Context, req *Request, encrypt bool) ([]byte, error) {
	job := asyncJob{
		ctx:     ctx,
		req:     req,
		encrypt: encrypt,
		result:  make(chan asyncResult, 1),
	}

	select {
	case <-a.done:
		return nil, ErrEngineClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case a.jobs <- job:
	}

	select {
	case r := <-job.result:
		return r.out, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.done:
		return nil, ErrEngineClosed
	}
}

func (a *asyncEngine) Name() string       { return AsyncTemplateName + "(" + a.inner.Name() + ")" }
func (a *asyncEngine) DriverName() string { return AsyncTemplateName + "(" + a.inner.DriverName() + ")" }
func (a *asyncEngine) Priority() int      { return a.inner.Priority() + 50 }
func (a *asyncEngine) IVSize() int        { return a.inner.IVSize() }
func (a *asyncEngine) AuthSize() int      { return a.inner.AuthSize() }
func (a *asyncEngine) MaxAuthSize() int   { return a.inner.MaxAuthSize() }
func (a *asyncEngine) BlockSize() int     { return a.inner.BlockSize() }
func (a *asyncEngine) Flags() Flags       { return a.inner.Flags() }
func (a *asyncEngine) SetFlags(f Flags)   { a.inner.SetFlags(f) }
func (a *asyncEngine) ClearFlags(f Flags) { a.inner.ClearFlags(f) }

func (a *asyncEngine) SetKey(key []byte) error { return a.inner.SetKey(key) }
func (a *asyncEngine) SetAuthSize(n int) error { return a.inner.SetAuthSize(n) }

func (a *asyncEngine) Encrypt(ctx context.Context, req *Request) ([]byte, error) {
	return a.submit(ctx, req, true)
}

func (a *asyncEngine) Decrypt(ctx context.Context, req *Request) ([]byte, error) {
	return a.submit(ctx, req, false)
}

func (a *asyncEngine) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
		a.log.Debugf("closed %s", a.Name())
		err = a.inner.Close()
	})

	return err
}
