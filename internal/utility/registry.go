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

// Package utility provides the utility step executors and their registry.
package utility

import (
	"sort"

	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// Registry resolves utility executors by name. Like the adapter executor
// factory, it is an immutable table injected into the engine.
type Registry struct {
	table map[string]flowmodel.UtilityExecutor
}

// NewRegistry creates a registry holding the given executors.
func NewRegistry(executors ...flowmodel.UtilityExecutor) *Registry {
	table := make(map[string]flowmodel.UtilityExecutor, len(executors))
	for _, e := range executors {
		table[e.Name()] = e
	}
	return &Registry{table: table}
}

// Resolve returns the executor registered under the given name.
func (r *Registry) Resolve(name string) (flowmodel.UtilityExecutor, *serviceerror.ServiceError) {
	executor, ok := r.table[name]
	if !ok {
		return nil, flowconst.ErrorUnknownUtility.WithDescription(
			"no utility executor registered for name: " + name)
	}
	return executor, nil
}

// Names returns the registered utility names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
