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

package utility

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"

	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// UnarchiveName is the utility name used by flow definitions.
const UnarchiveName = "unarchive"

// UnarchiveExecutor expands every pending zip archive into its entries.
// Files that are not zip archives pass through unchanged.
type UnarchiveExecutor struct{}

var _ flowmodel.UtilityExecutor = (*UnarchiveExecutor)(nil)

// NewUnarchiveExecutor creates a new UnarchiveExecutor.
func NewUnarchiveExecutor() *UnarchiveExecutor {
	return &UnarchiveExecutor{}
}

// Name returns the utility name.
func (e *UnarchiveExecutor) Name() string {
	return UnarchiveName
}

// Execute expands the pending archives. A corrupt archive is a per-file
// failure; the remaining files are still processed.
func (e *UnarchiveExecutor) Execute(ctx context.Context, _ map[string]string,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	result := &flowmodel.ExecutionResult{}
	expanded := make([]flowmodel.FileRecord, 0, len(execCtx.FilesToProcess))

	for _, file := range execCtx.FilesToProcess {
		if ctx.Err() != nil {
			return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}
		if !strings.HasSuffix(strings.ToLower(file.FileName), ".zip") {
			expanded = append(expanded, file)
			continue
		}

		entries, err := extractZip(file)
		if err != nil {
			outcome := flowmodel.FileOutcome{
				FileName: file.FileName,
				Outcome:  flowconst.FileOutcomeFailed,
				Detail:   "failed to expand archive: " + err.Error(),
			}
			result.AddOutcome(outcome)
			step.AddFileOutcome(outcome)
			continue
		}

		expanded = append(expanded, entries...)
		outcome := flowmodel.FileOutcome{
			FileName: file.FileName,
			Outcome:  flowconst.FileOutcomeSuccess,
			Bytes:    int64(len(file.FileContent)),
			Detail:   "expanded into " + strings.Join(entryNames(entries), ", "),
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	execCtx.SetFiles(expanded)
	return result, nil
}

// extractZip reads every regular entry of the archive into memory.
func extractZip(file flowmodel.FileRecord) ([]flowmodel.FileRecord, error) {
	reader, err := zip.NewReader(bytes.NewReader(file.FileContent), int64(len(file.FileContent)))
	if err != nil {
		return nil, err
	}

	entries := make([]flowmodel.FileRecord, 0, len(reader.File))
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, flowmodel.FileRecord{
			FileName:    entry.Name,
			FileContent: content,
			Metadata:    map[string]string{"archive": file.FileName},
		})
	}
	return entries, nil
}

func entryNames(entries []flowmodel.FileRecord) []string {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.FileName
	}
	return names
}
