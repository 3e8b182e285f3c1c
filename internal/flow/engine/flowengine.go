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

// Package engine provides the flow execution engine that walks a flow graph
// and dispatches its nodes to adapter and utility executors.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fileforge/h2h/internal/adapter/executor"
	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/system/log"
	"github.com/fileforge/h2h/internal/utility"
)

const loggerComponentName = "FlowExecutionEngine"

// StepReporter receives step records as the engine finalizes them.
type StepReporter interface {
	ReportStep(runID, flowID string, step *model.FlowExecutionStep)
}

// LogStepReporter is the default reporter. It writes each finalized step to
// the system log.
type LogStepReporter struct{}

// ReportStep logs the finalized step.
func (r *LogStepReporter) ReportStep(runID, flowID string, step *model.FlowExecutionStep) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyRunID, runID), log.String(log.LoggerKeyFlowID, flowID))
	logger.Info("Flow step finalized", log.String("stepID", step.StepID),
		log.String(log.LoggerKeyNodeID, step.NodeID), log.String("status", string(step.Status)),
		log.Int("fileOutcomes", len(step.FilesProcessed)))
}

// Options tunes engine behavior.
type Options struct {
	// FailFast cancels the sibling branches of a parallel split as soon as
	// one branch fails. The run still waits for every branch to return.
	FailFast bool
}

// FlowExecutionEngine executes flow graphs.
type FlowExecutionEngine struct {
	factory   executor.FactoryInterface
	utilities *utility.Registry
	reporter  StepReporter
	options   Options
}

// NewFlowExecutionEngine creates an engine with the given executor factory and
// utility registry. A nil reporter falls back to the log reporter.
func NewFlowExecutionEngine(factory executor.FactoryInterface, utilities *utility.Registry,
	reporter StepReporter, options Options) *FlowExecutionEngine {
	if reporter == nil {
		reporter = &LogStepReporter{}
	}
	return &FlowExecutionEngine{
		factory:   factory,
		utilities: utilities,
		reporter:  reporter,
		options:   options,
	}
}

// Execute runs the given flow graph to completion and returns the execution
// report. A fatal error aborts the walk; the report then carries the steps
// finalized before the abort.
func (fe *FlowExecutionEngine) Execute(ctx context.Context,
	graph *model.Graph) (*model.FlowExecutionReport, *serviceerror.ServiceError) {
	if graph == nil {
		return nil, &constants.ErrorFlowGraphNotInitialized
	}

	runID := uuid.New().String()
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyFlowID, graph.ID), log.String(log.LoggerKeyRunID, runID))
	logger.Info("Starting flow run")

	report := &model.FlowExecutionReport{
		RunID:     runID,
		FlowID:    graph.ID,
		StartedAt: time.Now(),
		Steps:     make([]model.FlowExecutionStep, 0),
	}

	startNode, err := graph.GetStartNode()
	if err != nil {
		report.Status = constants.FlowStatusFailed
		report.EndedAt = time.Now()
		return report, constants.ErrorStartNodeNotFoundInGraph.WithDescription(err.Error())
	}

	execCtx := model.NewExecutionContext(runID, graph.ID)
	steps, svcErr := fe.runBranch(ctx, graph, startNode, execCtx, logger)
	report.Steps = append(report.Steps, steps...)
	report.EndedAt = time.Now()
	if svcErr != nil {
		report.Status = constants.FlowStatusFailed
		logger.Error("Flow run aborted", log.String("errorCode", svcErr.Code),
			log.String("errorDescription", svcErr.ErrorDescription))
		return report, svcErr
	}

	report.Status = aggregateRunStatus(report.Steps)
	logger.Info("Flow run finished", log.String("status", string(report.Status)),
		log.Int("steps", len(report.Steps)))
	return report, nil
}

// runBranch walks the graph from the given node until a terminal node or a
// fatal error. Parallel splits recurse into runBranch per outgoing edge.
func (fe *FlowExecutionEngine) runBranch(ctx context.Context, graph *model.Graph,
	node *model.FlowNode, execCtx *model.ExecutionContext,
	logger *log.Logger) ([]model.FlowExecutionStep, *serviceerror.ServiceError) {
	steps := make([]model.FlowExecutionStep, 0)

	for node != nil {
		if ctx.Err() != nil {
			return steps, constants.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}
		logger.Debug("Executing node", log.String(log.LoggerKeyNodeID, node.ID),
			log.String("nodeKind", string(node.Kind)))

		switch node.Kind {
		case constants.NodeKindStart:
			next, svcErr := fe.resolveSingleNext(graph, node)
			if svcErr != nil {
				return steps, svcErr
			}
			node = next

		case constants.NodeKindEnd:
			return steps, nil

		case constants.NodeKindMessageEnd:
			logger.Info("Flow branch completed", log.String(log.LoggerKeyNodeID, node.ID),
				log.String("message", node.Properties["message"]))
			return steps, nil

		case constants.NodeKindDecision:
			next, svcErr := fe.resolveDecision(graph, node, execCtx)
			if svcErr != nil {
				step := fe.failNode(execCtx, node, svcErr)
				steps = append(steps, *step)
				return steps, svcErr
			}
			node = next

		case constants.NodeKindParallelSplit:
			branchSteps, svcErr := fe.runParallel(ctx, graph, node, execCtx, logger)
			steps = append(steps, branchSteps...)
			return steps, svcErr

		case constants.NodeKindAdapter, constants.NodeKindUtility:
			step, svcErr := fe.executeNode(ctx, node, execCtx)
			steps = append(steps, *step)
			if svcErr != nil {
				return steps, svcErr
			}
			next, svcErr := fe.resolveSingleNext(graph, node)
			if svcErr != nil {
				return steps, svcErr
			}
			node = next

		default:
			return steps, constants.ErrorNextNodeNotFoundInGraph.WithDescription(
				"unknown node kind: " + string(node.Kind))
		}
	}
	return steps, nil
}

// executeNode dispatches an adapter or utility node and finalizes its step.
func (fe *FlowExecutionEngine) executeNode(ctx context.Context, node *model.FlowNode,
	execCtx *model.ExecutionContext) (*model.FlowExecutionStep, *serviceerror.ServiceError) {
	step := model.NewFlowExecutionStep(node.ID)
	step.Start()

	result, svcErr := fe.dispatch(ctx, node, execCtx, step)
	if svcErr != nil {
		step.Fail(svcErr.ErrorDescription)
		fe.reporter.ReportStep(execCtx.RunID, execCtx.FlowID, step)
		return step, svcErr
	}

	step.Finalize(result.StepStatus())
	fe.reporter.ReportStep(execCtx.RunID, execCtx.FlowID, step)
	return step, nil
}

// dispatch resolves and runs the executor behind an adapter or utility node.
func (fe *FlowExecutionEngine) dispatch(ctx context.Context, node *model.FlowNode,
	execCtx *model.ExecutionContext,
	step *model.FlowExecutionStep) (*model.ExecutionResult, *serviceerror.ServiceError) {
	if node.Kind == constants.NodeKindUtility {
		utilityExec, svcErr := fe.utilities.Resolve(node.UtilityName)
		if svcErr != nil {
			return nil, svcErr
		}
		return utilityExec.Execute(ctx, node.Properties, execCtx, step)
	}

	if node.Adapter == nil {
		return nil, constants.ErrorAdapterNotConfigured.WithDescription(
			"adapter node " + node.ID + " has no adapter")
	}
	adapterExec, svcErr := fe.factory.CreateExecutor(node.Adapter.Type, node.Adapter.Direction)
	if svcErr != nil {
		return nil, svcErr
	}
	if svcErr := adapterExec.ValidateConfiguration(node.Adapter); svcErr != nil {
		return nil, svcErr
	}
	return adapterExec.Execute(ctx, node.Adapter, execCtx, step)
}

// runParallel forks one branch per outgoing edge of the split node. Every
// branch gets an isolated deep copy of the execution context. The engine
// always waits for all branches before returning.
func (fe *FlowExecutionEngine) runParallel(ctx context.Context, graph *model.Graph,
	node *model.FlowNode, execCtx *model.ExecutionContext,
	logger *log.Logger) ([]model.FlowExecutionStep, *serviceerror.ServiceError) {
	branchCtx := ctx
	var cancel context.CancelFunc
	if fe.options.FailFast {
		branchCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	type branchResult struct {
		steps  []model.FlowExecutionStep
		svcErr *serviceerror.ServiceError
	}
	results := make([]branchResult, len(node.Outgoing))

	var wg sync.WaitGroup
	for i, edge := range node.Outgoing {
		target, ok := graph.GetNode(edge.TargetNodeID)
		if !ok {
			return nil, constants.ErrorNextNodeNotFoundInGraph.WithDescription(
				"parallel branch target " + edge.TargetNodeID + " not found")
		}

		wg.Add(1)
		go func(i int, target *model.FlowNode) {
			defer wg.Done()
			branchLogger := logger.With(log.String("branch", target.ID))
			steps, svcErr := fe.runBranch(branchCtx, graph, target, execCtx.Clone(), branchLogger)
			results[i] = branchResult{steps: steps, svcErr: svcErr}
			if svcErr != nil && cancel != nil {
				cancel()
			}
		}(i, target)
	}
	wg.Wait()

	steps := make([]model.FlowExecutionStep, 0)
	var firstErr *serviceerror.ServiceError
	for _, result := range results {
		steps = append(steps, result.steps...)
		if result.svcErr != nil && firstErr == nil {
			firstErr = result.svcErr
		}
	}
	return steps, firstErr
}

// resolveDecision evaluates the decision condition and follows the matching edge.
func (fe *FlowExecutionEngine) resolveDecision(graph *model.Graph, node *model.FlowNode,
	execCtx *model.ExecutionContext) (*model.FlowNode, *serviceerror.ServiceError) {
	if node.Condition == nil {
		return nil, constants.ErrorInvalidDecisionNode.WithDescription(
			"decision node " + node.ID + " has no condition")
	}

	matched, svcErr := node.Condition.Evaluate(execCtx)
	if svcErr != nil {
		return nil, svcErr
	}

	label := constants.EdgeLabelNo
	if matched {
		label = constants.EdgeLabelYes
	}
	edge, ok := node.EdgeByLabel(label)
	if !ok {
		return nil, constants.ErrorInvalidDecisionNode.WithDescription(
			"decision node " + node.ID + " has no " + label + " edge")
	}
	return fe.targetNode(graph, edge)
}

// resolveSingleNext follows the single outgoing edge of a pass-through node.
func (fe *FlowExecutionEngine) resolveSingleNext(graph *model.Graph,
	node *model.FlowNode) (*model.FlowNode, *serviceerror.ServiceError) {
	if len(node.Outgoing) != 1 {
		return nil, constants.ErrorNextNodeNotFoundInGraph.WithDescription(
			"node " + node.ID + " does not have exactly one outgoing edge")
	}
	return fe.targetNode(graph, node.Outgoing[0])
}

func (fe *FlowExecutionEngine) targetNode(graph *model.Graph,
	edge model.Edge) (*model.FlowNode, *serviceerror.ServiceError) {
	target, ok := graph.GetNode(edge.TargetNodeID)
	if !ok {
		return nil, constants.ErrorNextNodeNotFoundInGraph.WithDescription(
			"node " + edge.TargetNodeID + " not found in the graph")
	}
	return target, nil
}

// failNode records a failed step for a node that could not be executed.
func (fe *FlowExecutionEngine) failNode(execCtx *model.ExecutionContext, node *model.FlowNode,
	svcErr *serviceerror.ServiceError) *model.FlowExecutionStep {
	step := model.NewFlowExecutionStep(node.ID)
	step.Start()
	step.Fail(svcErr.ErrorDescription)
	fe.reporter.ReportStep(execCtx.RunID, execCtx.FlowID, step)
	return step
}

// aggregateRunStatus folds the step statuses into the run status. Any failed
// step fails the run; any partial step downgrades a clean run.
func aggregateRunStatus(steps []model.FlowExecutionStep) constants.FlowStatus {
	status := constants.FlowStatusSuccess
	for _, step := range steps {
		switch step.Status {
		case constants.StepStatusFailed:
			return constants.FlowStatusFailed
		case constants.StepStatusPartialSuccess:
			status = constants.FlowStatusPartialSuccess
		}
	}
	return status
}
