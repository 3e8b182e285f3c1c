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

// Package constants defines the constants used in the flow execution engine.
package constants

// NodeKind defines the node kinds in the flow graph.
type NodeKind string

const (
	// NodeKindStart represents the entry node of a flow.
	NodeKindStart NodeKind = "START"
	// NodeKindEnd represents a terminal node of a flow.
	NodeKindEnd NodeKind = "END"
	// NodeKindMessageEnd represents a terminal node that emits a message.
	NodeKindMessageEnd NodeKind = "MESSAGE_END"
	// NodeKindDecision represents an exclusive gateway with yes/no edges.
	NodeKindDecision NodeKind = "DECISION"
	// NodeKindParallelSplit represents a parallel gateway forking all outgoing edges.
	NodeKindParallelSplit NodeKind = "PARALLEL_SPLIT"
	// NodeKindAdapter represents a node executed by an adapter executor.
	NodeKindAdapter NodeKind = "ADAPTER"
	// NodeKindUtility represents a node executed by a utility executor.
	NodeKindUtility NodeKind = "UTILITY"
)

// FlowStatus defines the overall status of a flow run.
type FlowStatus string

const (
	// FlowStatusSuccess indicates that every step completed successfully.
	FlowStatusSuccess FlowStatus = "SUCCESS"
	// FlowStatusPartialSuccess indicates that at least one step completed with file-level failures.
	FlowStatusPartialSuccess FlowStatus = "PARTIAL_SUCCESS"
	// FlowStatusFailed indicates that at least one step failed or a branch was aborted.
	FlowStatusFailed FlowStatus = "FAILED"
)

// StepStatus defines the status of a single flow execution step.
type StepStatus string

const (
	// StepStatusPending indicates that the step has not started yet.
	StepStatusPending StepStatus = "PENDING"
	// StepStatusRunning indicates that the step is currently executing.
	StepStatusRunning StepStatus = "RUNNING"
	// StepStatusSuccess indicates that the step completed without file failures.
	StepStatusSuccess StepStatus = "SUCCESS"
	// StepStatusPartialSuccess indicates that the step completed with some file failures.
	StepStatusPartialSuccess StepStatus = "PARTIAL_SUCCESS"
	// StepStatusFailed indicates that the step failed.
	StepStatusFailed StepStatus = "FAILED"
	// StepStatusSkipped indicates that the step was not executed.
	StepStatusSkipped StepStatus = "SKIPPED"
)

// ConditionType defines the condition types supported by decision nodes.
type ConditionType string

const (
	// ConditionAlwaysTrue always routes to the yes edge.
	ConditionAlwaysTrue ConditionType = "ALWAYS_TRUE"
	// ConditionAlwaysFalse always routes to the no edge.
	ConditionAlwaysFalse ConditionType = "ALWAYS_FALSE"
	// ConditionContextContainsKey routes to the yes edge when the context contains the key.
	ConditionContextContainsKey ConditionType = "CONTEXT_CONTAINS_KEY"
	// ConditionContextValueEquals routes to the yes edge when the context value equals the expected value.
	ConditionContextValueEquals ConditionType = "CONTEXT_VALUE_EQUALS"
	// ConditionFileCountGreaterThan routes to the yes edge when the pending file count exceeds the threshold.
	ConditionFileCountGreaterThan ConditionType = "FILE_COUNT_GREATER_THAN"
)

// Edge labels used by decision nodes.
const (
	// EdgeLabelYes is the edge taken when a decision condition evaluates to true.
	EdgeLabelYes = "yes"
	// EdgeLabelNo is the edge taken when a decision condition evaluates to false.
	EdgeLabelNo = "no"
)

// FileOutcomeCode defines the per-file outcome codes recorded in a step.
type FileOutcomeCode string

const (
	// FileOutcomeSuccess indicates that the file was transferred successfully.
	FileOutcomeSuccess FileOutcomeCode = "SUCCESS"
	// FileOutcomeFailed indicates that the file transfer failed.
	FileOutcomeFailed FileOutcomeCode = "FAILED"
	// FileOutcomeVerificationFailed indicates that the remote size did not match the local size.
	FileOutcomeVerificationFailed FileOutcomeCode = "VERIFICATION_FAILED"
)
