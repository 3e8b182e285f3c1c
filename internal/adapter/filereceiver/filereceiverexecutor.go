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

// Package filereceiver provides the file receiver executor that writes the
// pending file batch to a local directory.
package filereceiver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/system/log"
)

const loggerComponentName = "FileReceiverExecutor"

// FileReceiverExecutor implements the AdapterExecutor contract for local
// filesystem writes.
type FileReceiverExecutor struct{}

var _ flowmodel.AdapterExecutor = (*FileReceiverExecutor)(nil)

// NewFileReceiverExecutor creates a new FileReceiverExecutor.
func NewFileReceiverExecutor() *FileReceiverExecutor {
	return &FileReceiverExecutor{}
}

// SupportedType returns the adapter type handled by this executor.
func (e *FileReceiverExecutor) SupportedType() constants.AdapterType {
	return constants.AdapterTypeFile
}

// SupportedDirection returns the adapter direction handled by this executor.
func (e *FileReceiverExecutor) SupportedDirection() constants.Direction {
	return constants.DirectionReceiver
}

// ValidateConfiguration checks the adapter configuration for the required keys.
func (e *FileReceiverExecutor) ValidateConfiguration(
	adapter *adaptermodel.Adapter) *serviceerror.ServiceError {
	return adapter.RequireStrings(constants.ConfigKeyLocalDirectory)
}

// Execute writes every pending file to the configured local directory.
// Individual write failures are per-file outcomes.
func (e *FileReceiverExecutor) Execute(ctx context.Context, adapter *adaptermodel.Adapter,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyRunID, execCtx.RunID),
		log.String(log.LoggerKeyAdapterID, adapter.ID))

	if svcErr := e.ValidateConfiguration(adapter); svcErr != nil {
		return nil, svcErr
	}

	result := &flowmodel.ExecutionResult{}
	if len(execCtx.FilesToProcess) == 0 {
		logger.Debug("No files to process for local write")
		return result, nil
	}

	localDir, _ := adapter.ConfigString(constants.ConfigKeyLocalDirectory)
	if err := os.MkdirAll(localDir, 0o750); err != nil {
		return nil, constants.ErrorLocalIOFailure.WithDescription(
			"failed to create local directory " + localDir + ": " + err.Error())
	}

	for _, file := range execCtx.FilesToProcess {
		if ctx.Err() != nil {
			return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}

		targetPath := filepath.Clean(filepath.Join(localDir, file.FileName))
		outcome := flowmodel.FileOutcome{FileName: file.FileName}
		if err := os.WriteFile(targetPath, file.FileContent, 0o640); err != nil {
			outcome.Outcome = flowconst.FileOutcomeFailed
			outcome.Detail = "failed to write local file: " + err.Error()
		} else {
			outcome.Outcome = flowconst.FileOutcomeSuccess
			outcome.Bytes = int64(len(file.FileContent))
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	logger.Debug("Local file write finished", log.Int("successCount", result.SuccessCount),
		log.Int("errorCount", result.ErrorCount))
	return result, nil
}
