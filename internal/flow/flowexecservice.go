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

// Package flow provides the FlowExecService interface and its implementation.
// It is the entry point for running configured flows by ID.
package flow

import (
	"context"
	"sort"

	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/flow/engine"
	"github.com/fileforge/h2h/internal/flow/model"
	flowutils "github.com/fileforge/h2h/internal/flow/utils"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/system/log"
)

const defaultWorkerPoolSize = 4

// FlowExecServiceInterface defines the entry point for flow execution.
type FlowExecServiceInterface interface {
	Execute(ctx context.Context, flowID string) (*model.FlowExecutionReport, *serviceerror.ServiceError)
	FlowIDs() []string
}

// FlowExecService runs registered flow graphs through the execution engine.
// Concurrent runs are bounded by the configured worker pool size.
type FlowExecService struct {
	engine  *engine.FlowExecutionEngine
	graphs  map[string]*model.Graph
	workers chan struct{}
}

// NewFlowExecService creates a service over the graphs found in the given
// directory. workerPoolSize bounds concurrent flow runs.
func NewFlowExecService(flowEngine *engine.FlowExecutionEngine, graphDirectory string,
	workerPoolSize int) (*FlowExecService, error) {
	graphs, err := flowutils.LoadGraphDirectory(graphDirectory)
	if err != nil {
		return nil, err
	}
	return NewFlowExecServiceWithGraphs(flowEngine, graphs, workerPoolSize), nil
}

// NewFlowExecServiceWithGraphs creates a service over pre-built graphs.
func NewFlowExecServiceWithGraphs(flowEngine *engine.FlowExecutionEngine,
	graphs map[string]*model.Graph, workerPoolSize int) *FlowExecService {
	if workerPoolSize <= 0 {
		workerPoolSize = defaultWorkerPoolSize
	}
	return &FlowExecService{
		engine:  flowEngine,
		graphs:  graphs,
		workers: make(chan struct{}, workerPoolSize),
	}
}

// Execute runs the flow with the given ID. The call blocks until a worker
// slot is available or the context is cancelled.
func (s *FlowExecService) Execute(ctx context.Context,
	flowID string) (*model.FlowExecutionReport, *serviceerror.ServiceError) {
	graph, ok := s.graphs[flowID]
	if !ok {
		return nil, constants.ErrorFlowGraphNotInitialized.WithDescription(
			"no flow registered with ID " + flowID)
	}

	select {
	case s.workers <- struct{}{}:
		defer func() { <-s.workers }()
	case <-ctx.Done():
		return nil, constants.ErrorRunCancelled.WithDescription(ctx.Err().Error())
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"),
		log.String(log.LoggerKeyFlowID, flowID))
	logger.Debug("Dispatching flow run to the engine")
	return s.engine.Execute(ctx, graph)
}

// FlowIDs returns the registered flow IDs in sorted order.
func (s *FlowExecService) FlowIDs() []string {
	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
