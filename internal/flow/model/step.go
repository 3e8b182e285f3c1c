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

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fileforge/h2h/internal/flow/constants"
)

// FileOutcome records the result of transferring a single file within a step.
type FileOutcome struct {
	FileName string                    `json:"fileName"`
	Outcome  constants.FileOutcomeCode `json:"outcome"`
	Bytes    int64                     `json:"bytes"`
	Detail   string                    `json:"detail,omitempty"`
}

// FlowExecutionStep is the per-node execution record emitted to the
// persistence and audit layer. It is created when the engine enters a node and
// finalized when the node's executor returns.
type FlowExecutionStep struct {
	StepID         string               `json:"stepId"`
	NodeID         string               `json:"nodeId"`
	Status         constants.StepStatus `json:"status"`
	StartedAt      time.Time            `json:"startedAt"`
	EndedAt        time.Time            `json:"endedAt,omitempty"`
	FilesProcessed []FileOutcome        `json:"filesProcessed,omitempty"`
	ErrorMessage   string               `json:"errorMessage,omitempty"`
}

// NewFlowExecutionStep creates a pending step record for the given node.
func NewFlowExecutionStep(nodeID string) *FlowExecutionStep {
	return &FlowExecutionStep{
		StepID:         uuid.New().String(),
		NodeID:         nodeID,
		Status:         constants.StepStatusPending,
		FilesProcessed: make([]FileOutcome, 0),
	}
}

// Start marks the step as running.
func (s *FlowExecutionStep) Start() {
	s.Status = constants.StepStatusRunning
	s.StartedAt = time.Now()
}

// Finalize marks the step with its terminal status.
func (s *FlowExecutionStep) Finalize(status constants.StepStatus) {
	s.Status = status
	s.EndedAt = time.Now()
}

// Fail marks the step as failed with the given message.
func (s *FlowExecutionStep) Fail(message string) {
	s.ErrorMessage = message
	s.Finalize(constants.StepStatusFailed)
}

// AddFileOutcome appends a per-file outcome to the step record.
func (s *FlowExecutionStep) AddFileOutcome(outcome FileOutcome) {
	s.FilesProcessed = append(s.FilesProcessed, outcome)
}

// FlowExecutionReport aggregates the step records of one flow run.
type FlowExecutionReport struct {
	RunID     string               `json:"runId"`
	FlowID    string               `json:"flowId"`
	Status    constants.FlowStatus `json:"status"`
	StartedAt time.Time            `json:"startedAt"`
	EndedAt   time.Time            `json:"endedAt,omitempty"`
	Steps     []FlowExecutionStep  `json:"steps"`
}
