/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package sftp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fileforge/h2h/internal/system/log"
)

const (
	defaultMaxConnectionsPerEndpoint = 3
	defaultMaxIdleTime               = 10 * time.Minute
	defaultCleanupInterval           = 5 * time.Minute
	defaultSessionTimeout            = 30 * time.Second
)

// ErrNoConnectionAvailable is returned by Borrow when the endpoint pool holds
// no idle connection. The caller is expected to dial a new one.
var ErrNoConnectionAvailable = errors.New("no pooled connection available for endpoint")

// ErrPoolClosed is returned when the pool has been shut down.
var ErrPoolClosed = errors.New("connection pool is closed")

// PoolOptions configures the connection pool.
type PoolOptions struct {
	MaxConnectionsPerEndpoint int
	MaxIdleTime               time.Duration
	CleanupInterval           time.Duration
}

// EndpointStats reports the pool state for one endpoint.
type EndpointStats struct {
	Pooled int `json:"pooled"`
	InUse  int `json:"inUse"`
}

// endpointPool holds the idle connections of one endpoint. The idle queue is a
// buffered channel; enqueue and dequeue are atomic and never hold a lock
// across I/O. Borrowed connections are not in the queue, so the reaper can
// never evict a connection that is in use.
type endpointPool struct {
	idle  chan *Connection
	inUse atomic.Int32
}

// ConnectionPool amortizes the cost of establishing authenticated SFTP
// sessions by pooling connections per remote endpoint.
type ConnectionPool struct {
	opts      PoolOptions
	endpoints sync.Map // endpoint key -> *endpointPool
	closed    atomic.Bool
	stop      chan struct{}
	done      chan struct{}
}

// NewConnectionPool creates a connection pool and starts its background
// idle-reclamation task.
func NewConnectionPool(opts PoolOptions) *ConnectionPool {
	if opts.MaxConnectionsPerEndpoint <= 0 {
		opts.MaxConnectionsPerEndpoint = defaultMaxConnectionsPerEndpoint
	}
	if opts.MaxIdleTime <= 0 {
		opts.MaxIdleTime = defaultMaxIdleTime
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}

	pool := &ConnectionPool{
		opts: opts,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go pool.reclaimLoop()
	return pool
}

// Borrow returns an idle, still-live connection for the endpoint key. Dead
// connections found in the queue are dropped and the next one is tried. When
// the queue is empty, ErrNoConnectionAvailable is returned and the caller must
// create a connection itself.
func (p *ConnectionPool) Borrow(endpointKey string) (*Connection, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	value, ok := p.endpoints.Load(endpointKey)
	if !ok {
		return nil, ErrNoConnectionAvailable
	}
	ep := value.(*endpointPool)

	for {
		select {
		case conn := <-ep.idle:
			if !conn.IsLive() {
				log.GetLogger().Debug("Dropping dead pooled connection",
					log.String(log.LoggerKeyEndpointKey, endpointKey))
				conn.Disconnect()
				continue
			}
			conn.markBorrowed()
			ep.inUse.Add(1)
			return conn, nil
		default:
			return nil, ErrNoConnectionAvailable
		}
	}
}

// BorrowOrDial borrows a pooled connection for the endpoint, dialing a new
// one through the dialer when the pool has none.
func (p *ConnectionPool) BorrowOrDial(dialer Dialer, cfg EndpointConfig) (*Connection, error) {
	conn, err := p.Borrow(cfg.Key())
	if err == nil {
		return conn, nil
	}
	if !errors.Is(err, ErrNoConnectionAvailable) {
		return nil, err
	}

	conn, err = dialer.Dial(cfg)
	if err != nil {
		return nil, err
	}
	ep := p.endpoint(cfg.Key())
	conn.markBorrowed()
	ep.inUse.Add(1)
	return conn, nil
}

// Return puts the connection back into its endpoint pool. The connection is
// discarded when the pool for the endpoint is already full or when the
// connection reports itself disconnected.
func (p *ConnectionPool) Return(conn *Connection) {
	if conn == nil {
		return
	}
	ep := p.endpoint(conn.EndpointKey())
	if conn.InUse() {
		ep.inUse.Add(-1)
	}
	conn.markReturned()

	if p.closed.Load() || !conn.IsLive() {
		conn.Disconnect()
		return
	}

	select {
	case ep.idle <- conn:
	default:
		// Endpoint pool is full.
		conn.Disconnect()
	}
}

// Stats reports, per endpoint, the pooled connection count and the number of
// connections currently in use.
func (p *ConnectionPool) Stats() map[string]EndpointStats {
	stats := make(map[string]EndpointStats)
	p.endpoints.Range(func(key, value any) bool {
		ep := value.(*endpointPool)
		stats[key.(string)] = EndpointStats{
			Pooled: len(ep.idle) + int(ep.inUse.Load()),
			InUse:  int(ep.inUse.Load()),
		}
		return true
	})
	return stats
}

// Shutdown drains and disconnects every pooled connection across all endpoints
// and stops the background reclamation task. It waits for the task to
// terminate until the context expires.
func (p *ConnectionPool) Shutdown(ctx context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(p.stop)

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.endpoints.Range(func(_, value any) bool {
		ep := value.(*endpointPool)
		for {
			select {
			case conn := <-ep.idle:
				conn.Disconnect()
			default:
				return true
			}
		}
	})
	return nil
}

// endpoint returns the pool for the endpoint key, creating it if needed.
func (p *ConnectionPool) endpoint(key string) *endpointPool {
	if value, ok := p.endpoints.Load(key); ok {
		return value.(*endpointPool)
	}
	created := &endpointPool{
		idle: make(chan *Connection, p.opts.MaxConnectionsPerEndpoint),
	}
	actual, _ := p.endpoints.LoadOrStore(key, created)
	return actual.(*endpointPool)
}

// reclaimLoop periodically evicts idle connections. It runs on its own
// dedicated goroutine, independent of run execution.
func (p *ConnectionPool) reclaimLoop() {
	defer close(p.done)
	ticker := time.NewTicker(p.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.reclaimIdle()
		case <-p.stop:
			return
		}
	}
}

// reclaimIdle disconnects and evicts every pooled connection that has been
// idle longer than the configured maximum. Borrowed connections are never in
// the idle queue and therefore never evicted regardless of age.
func (p *ConnectionPool) reclaimIdle() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SftpConnectionPool"))
	p.endpoints.Range(func(key, value any) bool {
		ep := value.(*endpointPool)
		keep := make([]*Connection, 0, len(ep.idle))
		evicted := 0

	drain:
		for {
			select {
			case conn := <-ep.idle:
				if time.Since(conn.LastUsedAt()) > p.opts.MaxIdleTime {
					conn.Disconnect()
					evicted++
					continue
				}
				keep = append(keep, conn)
			default:
				break drain
			}
		}

		for _, conn := range keep {
			select {
			case ep.idle <- conn:
			default:
				conn.Disconnect()
			}
		}

		if evicted > 0 {
			logger.Debug("Reclaimed idle SFTP connections",
				log.String(log.LoggerKeyEndpointKey, key.(string)), log.Int("evicted", evicted))
		}
		return true
	})
}
