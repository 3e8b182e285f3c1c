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
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/fileforge/h2h/internal/export"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

const (
	// ExportPackageName is the utility name used by flow definitions.
	ExportPackageName = "export-package"

	// exportPackageFileSuffix is appended to the package name to form the
	// exported file name.
	exportPackageFileSuffix = ".pkg.json"

	propertyPackageName = "packageName"
)

// ExportPackageExecutor bundles the pending files into a single encrypted
// package-export envelope and replaces the batch with it.
type ExportPackageExecutor struct {
	service *export.Service
}

var _ flowmodel.UtilityExecutor = (*ExportPackageExecutor)(nil)

// NewExportPackageExecutor creates an ExportPackageExecutor over the given
// envelope crypto service.
func NewExportPackageExecutor(service *export.Service) *ExportPackageExecutor {
	return &ExportPackageExecutor{service: service}
}

// Name returns the utility name.
func (e *ExportPackageExecutor) Name() string {
	return ExportPackageName
}

// Execute encrypts the pending batch into one envelope file. The package name
// is taken from the node's packageName property, falling back to the flow ID.
func (e *ExportPackageExecutor) Execute(ctx context.Context, properties map[string]string,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	if ctx.Err() != nil {
		return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
	}

	packageName := properties[propertyPackageName]
	if packageName == "" {
		packageName = execCtx.FlowID
	}

	plain := map[string]any{
		"name":  packageName,
		"runId": execCtx.RunID,
		"files": packageFiles(execCtx.FilesToProcess),
	}
	envelope, err := e.service.Encrypt(plain)
	if err != nil {
		return nil, flowconst.ErrorPackageExportFailed.WithDescription(err.Error())
	}
	content, err := json.Marshal(envelope)
	if err != nil {
		return nil, flowconst.ErrorPackageExportFailed.WithDescription(err.Error())
	}

	result := &flowmodel.ExecutionResult{}
	for _, file := range execCtx.FilesToProcess {
		outcome := flowmodel.FileOutcome{
			FileName: file.FileName,
			Outcome:  flowconst.FileOutcomeSuccess,
			Bytes:    int64(len(file.FileContent)),
			Detail:   "packaged into " + packageName,
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	execCtx.SetFiles([]flowmodel.FileRecord{{
		FileName:    packageName + exportPackageFileSuffix,
		FileContent: content,
		Metadata:    map[string]string{"package": packageName},
	}})
	return result, nil
}

// packageFiles converts the batch into the serializable package payload.
func packageFiles(files []flowmodel.FileRecord) []map[string]any {
	payload := make([]map[string]any, len(files))
	for i, file := range files {
		payload[i] = map[string]any{
			"fileName": file.FileName,
			"content":  base64.StdEncoding.EncodeToString(file.FileContent),
		}
	}
	return payload
}
