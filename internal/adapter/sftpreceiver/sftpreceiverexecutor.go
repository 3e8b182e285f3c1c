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

// Package sftpreceiver provides the SFTP receiver executor that uploads the
// pending file batch to a remote endpoint.
package sftpreceiver

import (
	"context"
	"fmt"
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

const loggerComponentName = "SftpReceiverExecutor"

// SftpReceiverExecutor implements the AdapterExecutor contract for SFTP uploads.
type SftpReceiverExecutor struct {
	pool   *sftp.ConnectionPool
	dialer sftp.Dialer
	keys   sftpbase.KeyProvider
}

var _ flowmodel.AdapterExecutor = (*SftpReceiverExecutor)(nil)

// NewSftpReceiverExecutor creates a new SftpReceiverExecutor.
func NewSftpReceiverExecutor(pool *sftp.ConnectionPool, dialer sftp.Dialer,
	keys sftpbase.KeyProvider) *SftpReceiverExecutor {
	return &SftpReceiverExecutor{
		pool:   pool,
		dialer: dialer,
		keys:   keys,
	}
}

// SupportedType returns the adapter type handled by this executor.
func (e *SftpReceiverExecutor) SupportedType() constants.AdapterType {
	return constants.AdapterTypeSftp
}

// SupportedDirection returns the adapter direction handled by this executor.
func (e *SftpReceiverExecutor) SupportedDirection() constants.Direction {
	return constants.DirectionReceiver
}

// ValidateConfiguration checks the adapter configuration for the required keys.
func (e *SftpReceiverExecutor) ValidateConfiguration(
	adapter *adaptermodel.Adapter) *serviceerror.ServiceError {
	return sftpbase.ValidateConfiguration(adapter, true)
}

// Execute uploads every pending file to the configured remote directory. After
// each upload the remote size is compared to the local byte length; a mismatch
// is recorded as a VERIFICATION_FAILED outcome and excluded from the success
// count.
func (e *SftpReceiverExecutor) Execute(ctx context.Context, adapter *adaptermodel.Adapter,
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
		logger.Debug("No files to process for SFTP upload")
		return result, nil
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
	client := conn.Client()
	if err := client.MkdirAll(remoteDir); err != nil {
		return nil, constants.ErrorTransportFailure.WithDescription(
			"failed to create remote directory " + remoteDir + ": " + err.Error())
	}

	for _, file := range execCtx.FilesToProcess {
		if ctx.Err() != nil {
			return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}
		outcome := e.uploadFile(client, remoteDir, file)
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	logger.Debug("SFTP upload finished", log.Int("successCount", result.SuccessCount),
		log.Int("errorCount", result.ErrorCount))
	return result, nil
}

// uploadFile transfers one file and verifies its remote size. Failures are
// per-file outcomes, never step errors.
func (e *SftpReceiverExecutor) uploadFile(client sftp.Client, remoteDir string,
	file flowmodel.FileRecord) flowmodel.FileOutcome {
	remotePath := path.Join(remoteDir, file.FileName)

	remoteFile, err := client.Create(remotePath)
	if err != nil {
		return failedOutcome(file.FileName, "failed to create remote file: "+err.Error())
	}
	if _, err := remoteFile.Write(file.FileContent); err != nil {
		closeErr := remoteFile.Close()
		_ = closeErr
		return failedOutcome(file.FileName, "failed to write remote file: "+err.Error())
	}
	if err := remoteFile.Close(); err != nil {
		return failedOutcome(file.FileName, "failed to close remote file: "+err.Error())
	}

	info, err := client.Lstat(remotePath)
	if err != nil {
		return failedOutcome(file.FileName, "failed to stat remote file: "+err.Error())
	}
	localSize := int64(len(file.FileContent))
	if info.Size() != localSize {
		// Remove the partial upload so a retry starts clean.
		if removeErr := client.Remove(remotePath); removeErr != nil {
			log.GetLogger().Warn("Failed to remove unverified remote file",
				log.String("remotePath", remotePath), log.Error(removeErr))
		}
		return flowmodel.FileOutcome{
			FileName: file.FileName,
			Outcome:  flowconst.FileOutcomeVerificationFailed,
			Detail: fmt.Sprintf("remote size %d does not match local size %d",
				info.Size(), localSize),
		}
	}

	return flowmodel.FileOutcome{
		FileName: file.FileName,
		Outcome:  flowconst.FileOutcomeSuccess,
		Bytes:    localSize,
	}
}

func failedOutcome(fileName, detail string) flowmodel.FileOutcome {
	return flowmodel.FileOutcome{
		FileName: fileName,
		Outcome:  flowconst.FileOutcomeFailed,
		Detail:   detail,
	}
}
