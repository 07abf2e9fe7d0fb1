package service

import (
	"context"
	"errors"
	"sync"

	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/google/uuid"
)

var (
	ErrPoolClosed    = errors.New("engine pool closed")
	ErrWrongInstance = errors.New("wrong engine instance released")
)

type EngineInstance struct {
	id     uuid.UUID
	Engine *engine.Engine
}

func (i *EngineInstance) ID() string {
	return i.id.String()
}

// EnginePool hands out a fixed number of engines so that only that many
// searches run at once.
type EnginePool struct {
	idSet     map[uuid.UUID]bool
	pool      chan *EngineInstance
	closed    chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	checkedOut map[uuid.UUID]bool
}

func NewEnginePool(cfg engine.Config, limit int) (*EnginePool, error) {
	if limit < 1 {
		limit = 1
	}
	idSet := make(map[uuid.UUID]bool, limit)
	ch := make(chan *EngineInstance, limit)

	for i := 0; i < limit; i++ {
		eng, err := engine.New(cfg)
		if err != nil {
			return nil, err
		}

		id := uuid.New()
		idSet[id] = true
		ch <- &EngineInstance{
			id:     id,
			Engine: eng,
		}
	}

	return &EnginePool{
		idSet:      idSet,
		pool:       ch,
		closed:     make(chan struct{}),
		checkedOut: make(map[uuid.UUID]bool, limit),
	}, nil
}

// Acquire blocks until an engine is free, ctx is done or the pool closes.
func (ep *EnginePool) Acquire(ctx context.Context) (*EngineInstance, error) {
	select {
	case <-ep.closed:
		return nil, ErrPoolClosed
	default:
	}

	select {
	case instance := <-ep.pool:
		ep.mu.Lock()
		ep.checkedOut[instance.id] = true
		ep.mu.Unlock()
		return instance, nil
	case <-ep.closed:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an acquired engine. Engines from another pool, or ones
// already released, are rejected.
func (ep *EnginePool) Release(instance *EngineInstance) error {
	if instance == nil || !ep.idSet[instance.id] {
		return ErrWrongInstance
	}

	ep.mu.Lock()
	if !ep.checkedOut[instance.id] {
		ep.mu.Unlock()
		return ErrWrongInstance
	}
	delete(ep.checkedOut, instance.id)
	ep.mu.Unlock()

	// only checked out engines come back, so there is always room
	ep.pool <- instance
	return nil
}

func (ep *EnginePool) Size() int {
	return len(ep.idSet)
}

func (ep *EnginePool) Available() int {
	return len(ep.pool)
}

// Close makes every pending and future Acquire fail. Engines already handed
// out may still be released.
func (ep *EnginePool) Close() {
	ep.closeOnce.Do(func() {
		close(ep.closed)
	})
}
