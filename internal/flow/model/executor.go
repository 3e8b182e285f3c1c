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
	"context"

	adapterconst "github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// ExecutionResult summarizes the outcome of one executor invocation.
// Per-file failures are data, never errors: an executor only returns a service
// error for configuration or connection level failures that abort the step.
type ExecutionResult struct {
	SuccessCount int           `json:"successCount"`
	ErrorCount   int           `json:"errorCount"`
	TotalBytes   int64         `json:"totalBytes"`
	Outcomes     []FileOutcome `json:"outcomes,omitempty"`
}

// AddOutcome records a per-file outcome and updates the counters.
func (r *ExecutionResult) AddOutcome(outcome FileOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	if outcome.Outcome == constants.FileOutcomeSuccess {
		r.SuccessCount++
		r.TotalBytes += outcome.Bytes
	} else {
		r.ErrorCount++
	}
}

// StepStatus derives the step status from the per-file counters.
func (r *ExecutionResult) StepStatus() constants.StepStatus {
	switch {
	case r.ErrorCount == 0:
		return constants.StepStatusSuccess
	case r.SuccessCount == 0:
		return constants.StepStatusFailed
	default:
		return constants.StepStatusPartialSuccess
	}
}

// AdapterExecutor is the contract implemented by every adapter executor variant.
type AdapterExecutor interface {
	// SupportedType returns the adapter type this executor handles.
	SupportedType() adapterconst.AdapterType
	// SupportedDirection returns the adapter direction this executor handles.
	SupportedDirection() adapterconst.Direction
	// ValidateConfiguration checks the adapter configuration for the required
	// keys. It is side-effect free and idempotent.
	ValidateConfiguration(adapter *adaptermodel.Adapter) *serviceerror.ServiceError
	// Execute performs the adapter I/O for one node. Individual file failures
	// are captured as per-file outcomes in the result and the step record;
	// configuration and connection level failures abort the whole step.
	Execute(ctx context.Context, adapter *adaptermodel.Adapter, execCtx *ExecutionContext,
		step *FlowExecutionStep) (*ExecutionResult, *serviceerror.ServiceError)
}

// UtilityExecutor is the contract implemented by utility step executors.
type UtilityExecutor interface {
	// Name returns the utility name used by flow definitions.
	Name() string
	// Execute performs the utility transformation against the execution context.
	Execute(ctx context.Context, properties map[string]string, execCtx *ExecutionContext,
		step *FlowExecutionStep) (*ExecutionResult, *serviceerror.ServiceError)
}
