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

// Package sftpsender provides the SFTP sender executor that downloads files
// from a remote endpoint into the execution context.
package sftpsender

import (
	"context"
	"io"
	"path"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	"github.com/fileforge/h2h/internal/adapter/sftpbase"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/system/log"
	"github.com/fileforge/h2h/internal/transport/sftp"
)

const loggerComponentName = "SftpSenderExecutor"

// SftpSenderExecutor implements the AdapterExecutor contract for SFTP downloads.
type SftpSenderExecutor struct {
	pool   *sftp.ConnectionPool
	dialer sftp.Dialer
	keys   sftpbase.KeyProvider
}

var _ flowmodel.AdapterExecutor = (*SftpSenderExecutor)(nil)

// NewSftpSenderExecutor creates a new SftpSenderExecutor.
func NewSftpSenderExecutor(pool *sftp.ConnectionPool, dialer sftp.Dialer,
	keys sftpbase.KeyProvider) *SftpSenderExecutor {
	return &SftpSenderExecutor{
		pool:   pool,
		dialer: dialer,
		keys:   keys,
	}
}

// SupportedType returns the adapter type handled by this executor.
func (e *SftpSenderExecutor) SupportedType() constants.AdapterType {
	return constants.AdapterTypeSftp
}

// SupportedDirection returns the adapter direction handled by this executor.
func (e *SftpSenderExecutor) SupportedDirection() constants.Direction {
	return constants.DirectionSender
}

// ValidateConfiguration checks the adapter configuration for the required keys.
func (e *SftpSenderExecutor) ValidateConfiguration(
	adapter *adaptermodel.Adapter) *serviceerror.ServiceError {
	if svcErr := sftpbase.ValidateConfiguration(adapter, false); svcErr != nil {
		return svcErr
	}
	return adapter.RequireStrings(constants.ConfigKeyRemoteDirectory)
}

// Execute downloads every regular file in the configured remote directory that
// matches the file pattern and appends the payloads to the execution context.
// Individual download failures are per-file outcomes.
func (e *SftpSenderExecutor) Execute(ctx context.Context, adapter *adaptermodel.Adapter,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyRunID, execCtx.RunID),
		log.String(log.LoggerKeyAdapterID, adapter.ID))

	if svcErr := e.ValidateConfiguration(adapter); svcErr != nil {
		return nil, svcErr
	}

	endpointCfg, svcErr := sftpbase.EndpointConfig(adapter, e.keys)
	if svcErr != nil {
		return nil, svcErr
	}

	conn, err := e.pool.BorrowOrDial(e.dialer, endpointCfg)
	if err != nil {
		return nil, constants.ErrorTransportFailure.WithDescription(err.Error())
	}
	defer e.pool.Return(conn)

	remoteDir, _ := adapter.ConfigString(constants.ConfigKeyRemoteDirectory)
	pattern := adapter.ConfigStringDefault(constants.ConfigKeyFilePattern, "")

	client := conn.Client()
	entries, err := client.ReadDir(remoteDir)
	if err != nil {
		return nil, constants.ErrorTransportFailure.WithDescription(
			"failed to list remote directory " + remoteDir + ": " + err.Error())
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

		record, outcome := e.downloadFile(client, remoteDir, entry.Name())
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
		if outcome.Outcome == flowconst.FileOutcomeSuccess {
			files = append(files, record)
		}
	}

	execCtx.AppendFiles(files...)
	logger.Debug("SFTP download finished", log.Int("successCount", result.SuccessCount),
		log.Int("errorCount", result.ErrorCount))
	return result, nil
}

// downloadFile fetches one remote file into memory.
func (e *SftpSenderExecutor) downloadFile(client sftp.Client, remoteDir,
	name string) (flowmodel.FileRecord, flowmodel.FileOutcome) {
	remotePath := path.Join(remoteDir, name)

	remoteFile, err := client.Open(remotePath)
	if err != nil {
		return flowmodel.FileRecord{}, flowmodel.FileOutcome{
			FileName: name,
			Outcome:  flowconst.FileOutcomeFailed,
			Detail:   "failed to open remote file: " + err.Error(),
		}
	}
	content, err := io.ReadAll(remoteFile)
	closeErr := remoteFile.Close()
	if err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return flowmodel.FileRecord{}, flowmodel.FileOutcome{
			FileName: name,
			Outcome:  flowconst.FileOutcomeFailed,
			Detail:   "failed to read remote file: " + err.Error(),
		}
	}

	record := flowmodel.FileRecord{
		FileName:    name,
		FileContent: content,
		Metadata:    map[string]string{"source": remotePath},
	}
	return record, flowmodel.FileOutcome{
		FileName: name,
		Outcome:  flowconst.FileOutcomeSuccess,
		Bytes:    int64(len(content)),
	}
}

// matchesPattern checks the file name against the configured glob pattern.
// An empty or invalid pattern matches everything.
func matchesPattern(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	matched, err := path.Match(pattern, name)
	if err != nil {
		return true
	}
	return matched
}
