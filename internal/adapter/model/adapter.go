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

// Package model defines the data structures for adapters.
package model

import (
	"strconv"
	"strings"

	"github.com/fileforge/h2h/internal/adapter/constants"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// Adapter represents a configured endpoint with a fixed direction.
// The configuration is immutable once loaded for a run and is owned by the flow definition.
type Adapter struct {
	ID            string                `json:"id"`
	Type          constants.AdapterType `json:"adapterType"`
	Direction     constants.Direction   `json:"direction"`
	Configuration map[string]string     `json:"configuration"`
}

// ConfigString returns the configuration value for the given key.
func (a *Adapter) ConfigString(key string) (string, bool) {
	value, ok := a.Configuration[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// ConfigStringDefault returns the configuration value for the given key, or the
// fallback when the key is absent or empty.
func (a *Adapter) ConfigStringDefault(key, fallback string) string {
	value, ok := a.ConfigString(key)
	if !ok {
		return fallback
	}
	return value
}

// ConfigInt returns the numeric configuration value for the given key.
func (a *Adapter) ConfigInt(key string) (int, bool) {
	value, ok := a.ConfigString(key)
	if !ok {
		return 0, false
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return number, true
}

// RequireStrings validates that every given key is present and non-empty.
func (a *Adapter) RequireStrings(keys ...string) *serviceerror.ServiceError {
	missing := make([]string, 0)
	for _, key := range keys {
		if _, ok := a.ConfigString(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return constants.ErrorInvalidAdapterConfiguration.WithDescription(
			"missing or empty configuration value(s): " + strings.Join(missing, ", "))
	}
	return nil
}

// RequireInt validates that the given key is present and numeric.
func (a *Adapter) RequireInt(key string) *serviceerror.ServiceError {
	if svcErr := a.RequireStrings(key); svcErr != nil {
		return svcErr
	}
	if _, ok := a.ConfigInt(key); !ok {
		return constants.ErrorInvalidAdapterConfiguration.WithDescription(
			"configuration value for " + key + " must be numeric")
	}
	return nil
}
