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

package emailreceiver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/notification/mail"
)

type fakeSender struct {
	sent    []mail.Message
	servers []mail.ServerConfig
	err     error
}

func (s *fakeSender) Send(_ context.Context, server mail.ServerConfig, msg mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.servers = append(s.servers, server)
	s.sent = append(s.sent, msg)
	return nil
}

type EmailReceiverExecutorTestSuite struct {
	suite.Suite
	sender   *fakeSender
	executor *EmailReceiverExecutor
	execCtx  *flowmodel.ExecutionContext
	step     *flowmodel.FlowExecutionStep
}

func TestEmailReceiverExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(EmailReceiverExecutorTestSuite))
}

func (suite *EmailReceiverExecutorTestSuite) SetupTest() {
	suite.sender = &fakeSender{}
	suite.executor = NewEmailReceiverExecutor(suite.sender)
	suite.execCtx = flowmodel.NewExecutionContext("run-1", "flow-1")
	suite.step = flowmodel.NewFlowExecutionStep("deliver")
}

func (suite *EmailReceiverExecutorTestSuite) adapter() *adaptermodel.Adapter {
	return &adaptermodel.Adapter{
		ID:        "mail-out",
		Type:      constants.AdapterTypeEmail,
		Direction: constants.DirectionReceiver,
		Configuration: map[string]string{
			constants.ConfigKeySMTPHost:         "smtp.example.com",
			constants.ConfigKeySMTPPort:         "587",
			constants.ConfigKeyFromAddress:      "h2h@example.com",
			constants.ConfigKeyToAddress:        "ops@example.com",
			constants.ConfigKeyAttachmentPrefix: "export-",
		},
	}
}

func (suite *EmailReceiverExecutorTestSuite) TestExecuteDeliversBatchAsOneMessage() {
	suite.execCtx.SetFiles([]flowmodel.FileRecord{
		{FileName: "a.csv", FileContent: []byte("one")},
		{FileName: "b.csv", FileContent: []byte("twos")},
	})

	result, svcErr := suite.executor.Execute(context.Background(), suite.adapter(), suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(2, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)

	suite.Require().Len(suite.sender.sent, 1)
	msg := suite.sender.sent[0]
	suite.Equal("h2h@example.com", msg.From)
	suite.Equal("ops@example.com", msg.To)
	suite.Require().Len(msg.Attachments, 2)
	suite.Equal("export-a.csv", msg.Attachments[0].Name)
	suite.Equal("smtp.example.com", suite.sender.servers[0].Host)
	suite.Equal(587, suite.sender.servers[0].Port)
}

func (suite *EmailReceiverExecutorTestSuite) TestExecuteSubmissionFailureAbortsStep() {
	suite.sender.err = errors.New("smtp connection refused")
	suite.execCtx.SetFiles([]flowmodel.FileRecord{
		{FileName: "a.csv", FileContent: []byte("one")},
	})

	result, svcErr := suite.executor.Execute(context.Background(), suite.adapter(), suite.execCtx, suite.step)
	suite.Nil(result)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorMailDeliveryFailure.Code, svcErr.Code)
	suite.Empty(suite.step.FilesProcessed)
}

func (suite *EmailReceiverExecutorTestSuite) TestExecuteEmptyBatchSendsNothing() {
	result, svcErr := suite.executor.Execute(context.Background(), suite.adapter(), suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(0, result.SuccessCount)
	suite.Empty(suite.sender.sent)
}

func (suite *EmailReceiverExecutorTestSuite) TestValidateConfiguration() {
	adapter := suite.adapter()
	suite.Nil(suite.executor.ValidateConfiguration(adapter))

	delete(adapter.Configuration, constants.ConfigKeySMTPHost)
	svcErr := suite.executor.ValidateConfiguration(adapter)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInvalidAdapterConfiguration.Code, svcErr.Code)
}
