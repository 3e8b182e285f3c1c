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

// Package filesender provides the file sender executor that reads files from a
// local directory into the execution context.
package filesender

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

const loggerComponentName = "FileSenderExecutor"

// FileSenderExecutor implements the AdapterExecutor contract for local
// filesystem reads.
type FileSenderExecutor struct{}

var _ flowmodel.AdapterExecutor = (*FileSenderExecutor)(nil)

// NewFileSenderExecutor creates a new FileSenderExecutor.
func NewFileSenderExecutor() *FileSenderExecutor {
	return &FileSenderExecutor{}
}

// SupportedType returns the adapter type handled by this executor.
func (e *FileSenderExecutor) SupportedType() constants.AdapterType {
	return constants.AdapterTypeFile
}

// SupportedDirection returns the adapter direction handled by this executor.
func (e *FileSenderExecutor) SupportedDirection() constants.Direction {
	return constants.DirectionSender
}

// ValidateConfiguration checks the adapter configuration for the required keys.
func (e *FileSenderExecutor) ValidateConfiguration(
	adapter *adaptermodel.Adapter) *serviceerror.ServiceError {
	return adapter.RequireStrings(constants.ConfigKeyLocalDirectory)
}

// Execute reads every regular file in the configured local directory that
// matches the file pattern and appends the payloads to the execution context.
func (e *FileSenderExecutor) Execute(ctx context.Context, adapter *adaptermodel.Adapter,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyRunID, execCtx.RunID),
		log.String(log.LoggerKeyAdapterID, adapter.ID))

	if svcErr := e.ValidateConfiguration(adapter); svcErr != nil {
		return nil, svcErr
	}

	localDir, _ := adapter.ConfigString(constants.ConfigKeyLocalDirectory)
	pattern := adapter.ConfigStringDefault(constants.ConfigKeyFilePattern, "")

	entries, err := os.ReadDir(localDir)
	if err != nil {
		return nil, constants.ErrorLocalIOFailure.WithDescription(
			"failed to list local directory " + localDir + ": " + err.Error())
	}

	result := &flowmodel.ExecutionResult{}
	files := make([]flowmodel.FileRecord, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}
		if entry.IsDir() || !matchesPattern(pattern, entry.Name()) {
			continue
		}

		content, readErr := os.ReadFile(filepath.Clean(filepath.Join(localDir, entry.Name())))
		if readErr != nil {
			outcome := flowmodel.FileOutcome{
				FileName: entry.Name(),
				Outcome:  flowconst.FileOutcomeFailed,
				Detail:   "failed to read local file: " + readErr.Error(),
			}
			result.AddOutcome(outcome)
			step.AddFileOutcome(outcome)
			continue
		}

		outcome := flowmodel.FileOutcome{
			FileName: entry.Name(),
			Outcome:  flowconst.FileOutcomeSuccess,
			Bytes:    int64(len(content)),
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
		files = append(files, flowmodel.FileRecord{
			FileName:    entry.Name(),
			FileContent: content,
			Metadata:    map[string]string{"source": filepath.Join(localDir, entry.Name())},
		})
	}

	execCtx.AppendFiles(files...)
	logger.Debug("Local file read finished", log.Int("successCount", result.SuccessCount),
		log.Int("errorCount", result.ErrorCount))
	return result, nil
}

// matchesPattern checks the file name against the configured glob pattern.
// An empty or invalid pattern matches everything.
func matchesPattern(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return true
	}
	return matched
}
