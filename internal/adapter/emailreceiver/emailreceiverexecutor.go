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

// Package emailreceiver provides the email receiver executor that delivers the
// pending file batch as mail attachments. There is no email sender variant.
package emailreceiver

import (
	"context"
	"fmt"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/notification/mail"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/system/log"
)

const (
	loggerComponentName = "EmailReceiverExecutor"
	defaultSubject      = "H2H file delivery"
)

// EmailReceiverExecutor implements the AdapterExecutor contract for mail delivery.
type EmailReceiverExecutor struct {
	sender mail.Sender
}

var _ flowmodel.AdapterExecutor = (*EmailReceiverExecutor)(nil)

// NewEmailReceiverExecutor creates a new EmailReceiverExecutor.
func NewEmailReceiverExecutor(sender mail.Sender) *EmailReceiverExecutor {
	return &EmailReceiverExecutor{sender: sender}
}

// SupportedType returns the adapter type handled by this executor.
func (e *EmailReceiverExecutor) SupportedType() constants.AdapterType {
	return constants.AdapterTypeEmail
}

// SupportedDirection returns the adapter direction handled by this executor.
func (e *EmailReceiverExecutor) SupportedDirection() constants.Direction {
	return constants.DirectionReceiver
}

// ValidateConfiguration checks the adapter configuration for the required keys.
func (e *EmailReceiverExecutor) ValidateConfiguration(
	adapter *adaptermodel.Adapter) *serviceerror.ServiceError {
	if svcErr := adapter.RequireStrings(constants.ConfigKeySMTPHost,
		constants.ConfigKeyFromAddress, constants.ConfigKeyToAddress); svcErr != nil {
		return svcErr
	}
	return adapter.RequireInt(constants.ConfigKeySMTPPort)
}

// Execute delivers the pending batch as one mail message with every file
// attached. A submission failure is a connection-level failure aborting the
// whole step.
func (e *EmailReceiverExecutor) Execute(ctx context.Context, adapter *adaptermodel.Adapter,
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
		logger.Debug("No files to process for mail delivery")
		return result, nil
	}

	host, _ := adapter.ConfigString(constants.ConfigKeySMTPHost)
	port, _ := adapter.ConfigInt(constants.ConfigKeySMTPPort)
	from, _ := adapter.ConfigString(constants.ConfigKeyFromAddress)
	to, _ := adapter.ConfigString(constants.ConfigKeyToAddress)
	prefix := adapter.ConfigStringDefault(constants.ConfigKeyAttachmentPrefix, "")

	msg := mail.Message{
		From:    from,
		To:      to,
		Subject: adapter.ConfigStringDefault(constants.ConfigKeySubject, defaultSubject),
		Body: fmt.Sprintf("Flow %s delivered %d file(s).",
			execCtx.FlowID, len(execCtx.FilesToProcess)),
	}
	for _, file := range execCtx.FilesToProcess {
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Name:    prefix + file.FileName,
			Content: file.FileContent,
		})
	}

	server := mail.ServerConfig{
		Host:     host,
		Port:     port,
		Username: adapter.ConfigStringDefault(constants.ConfigKeySMTPUsername, ""),
		Password: adapter.ConfigStringDefault(constants.ConfigKeySMTPPassword, ""),
	}

	if err := e.sender.Send(ctx, server, msg); err != nil {
		return nil, constants.ErrorMailDeliveryFailure.WithDescription(err.Error())
	}

	for _, file := range execCtx.FilesToProcess {
		outcome := flowmodel.FileOutcome{
			FileName: file.FileName,
			Outcome:  flowconst.FileOutcomeSuccess,
			Bytes:    int64(len(file.FileContent)),
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	logger.Debug("Mail delivery finished", log.Int("successCount", result.SuccessCount))
	return result, nil
}
