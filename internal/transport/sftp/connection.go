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
	"io"
	"sync/atomic"
	"time"

	"github.com/fileforge/h2h/internal/system/log"
)

// Connection is a reusable authenticated SFTP session owned by the pool.
// A connection is borrowed exclusively by one caller at a time.
type Connection struct {
	endpointKey string
	client      Client
	transport   io.Closer
	inUse       atomic.Bool
	closed      atomic.Bool
	lastUsedAt  atomic.Int64
}

// NewConnection wraps an established client as a pool-managed connection.
// The transport closer may be nil when the client owns the transport itself.
func NewConnection(endpointKey string, client Client, transport io.Closer) *Connection {
	conn := &Connection{
		endpointKey: endpointKey,
		client:      client,
		transport:   transport,
	}
	conn.lastUsedAt.Store(time.Now().UnixNano())
	return conn
}

// EndpointKey returns the endpoint key this connection belongs to.
func (c *Connection) EndpointKey() string {
	return c.endpointKey
}

// Client returns the SFTP client of this connection.
func (c *Connection) Client() Client {
	return c.client
}

// InUse checks whether the connection is currently borrowed.
func (c *Connection) InUse() bool {
	return c.inUse.Load()
}

// LastUsedAt returns the time the connection was last borrowed or returned.
func (c *Connection) LastUsedAt() time.Time {
	return time.Unix(0, c.lastUsedAt.Load())
}

// IsLive checks whether the session is still usable. The check performs a
// cheap working-directory round trip against the remote endpoint.
func (c *Connection) IsLive() bool {
	if c.closed.Load() {
		return false
	}
	_, err := c.client.Getwd()
	return err == nil
}

// Disconnect closes the session and the underlying transport. It is safe to
// call more than once.
func (c *Connection) Disconnect() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if err := c.client.Close(); err != nil {
		log.GetLogger().Debug("Failed to close SFTP client",
			log.String(log.LoggerKeyEndpointKey, c.endpointKey), log.Error(err))
	}
	if c.transport != nil {
		if err := c.transport.Close(); err != nil {
			log.GetLogger().Debug("Failed to close SSH transport",
				log.String(log.LoggerKeyEndpointKey, c.endpointKey), log.Error(err))
		}
	}
}

// markBorrowed flags the connection as borrowed and refreshes the usage time.
func (c *Connection) markBorrowed() {
	c.inUse.Store(true)
	c.lastUsedAt.Store(time.Now().UnixNano())
}

// markReturned flags the connection as idle and refreshes the usage time.
func (c *Connection) markReturned() {
	c.inUse.Store(false)
	c.lastUsedAt.Store(time.Now().UnixNano())
}
