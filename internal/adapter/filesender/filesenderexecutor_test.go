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

package filesender

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
)

type FileSenderExecutorTestSuite struct {
	suite.Suite
	executor *FileSenderExecutor
	execCtx  *flowmodel.ExecutionContext
	step     *flowmodel.FlowExecutionStep
	localDir string
}

func TestFileSenderExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(FileSenderExecutorTestSuite))
}

func (suite *FileSenderExecutorTestSuite) SetupTest() {
	suite.executor = NewFileSenderExecutor()
	suite.execCtx = flowmodel.NewExecutionContext("run-1", "flow-1")
	suite.step = flowmodel.NewFlowExecutionStep("pickup")
	suite.localDir = suite.T().TempDir()
}

func (suite *FileSenderExecutorTestSuite) adapter(configuration map[string]string) *adaptermodel.Adapter {
	return &adaptermodel.Adapter{
		ID:            "local-pickup",
		Type:          constants.AdapterTypeFile,
		Direction:     constants.DirectionSender,
		Configuration: configuration,
	}
}

func (suite *FileSenderExecutorTestSuite) TestValidateConfiguration() {
	svcErr := suite.executor.ValidateConfiguration(suite.adapter(map[string]string{
		constants.ConfigKeyLocalDirectory: suite.localDir,
	}))
	suite.Nil(svcErr)

	svcErr = suite.executor.ValidateConfiguration(suite.adapter(map[string]string{}))
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInvalidAdapterConfiguration.Code, svcErr.Code)
}

func (suite *FileSenderExecutorTestSuite) TestExecuteReadsMatchingFiles() {
	suite.Require().NoError(os.WriteFile(
		filepath.Join(suite.localDir, "a.csv"), []byte("one"), 0o600))
	suite.Require().NoError(os.WriteFile(
		filepath.Join(suite.localDir, "b.csv"), []byte("twos"), 0o600))
	suite.Require().NoError(os.WriteFile(
		filepath.Join(suite.localDir, "notes.txt"), []byte("skip"), 0o600))
	suite.Require().NoError(os.Mkdir(filepath.Join(suite.localDir, "archive"), 0o750))

	adapter := suite.adapter(map[string]string{
		constants.ConfigKeyLocalDirectory: suite.localDir,
		constants.ConfigKeyFilePattern:    "*.csv",
	})

	result, svcErr := suite.executor.Execute(context.Background(), adapter, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(2, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)
	suite.Equal(int64(7), result.TotalBytes)

	suite.Require().Len(suite.execCtx.FilesToProcess, 2)
	names := []string{suite.execCtx.FilesToProcess[0].FileName, suite.execCtx.FilesToProcess[1].FileName}
	suite.ElementsMatch([]string{"a.csv", "b.csv"}, names)
	suite.Len(suite.step.FilesProcessed, 2)
}

func (suite *FileSenderExecutorTestSuite) TestExecuteMissingDirectoryFails() {
	adapter := suite.adapter(map[string]string{
		constants.ConfigKeyLocalDirectory: filepath.Join(suite.localDir, "does-not-exist"),
	})

	result, svcErr := suite.executor.Execute(context.Background(), adapter, suite.execCtx, suite.step)
	suite.Nil(result)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorLocalIOFailure.Code, svcErr.Code)
}

func (suite *FileSenderExecutorTestSuite) TestExecuteEmptyDirectory() {
	adapter := suite.adapter(map[string]string{
		constants.ConfigKeyLocalDirectory: suite.localDir,
	})

	result, svcErr := suite.executor.Execute(context.Background(), adapter, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(0, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)
	suite.Empty(suite.execCtx.FilesToProcess)
}
