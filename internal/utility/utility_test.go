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
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fileforge/h2h/internal/export"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
)

type UtilityTestSuite struct {
	suite.Suite
	key     []byte
	execCtx *flowmodel.ExecutionContext
	step    *flowmodel.FlowExecutionStep
}

func TestUtilityTestSuite(t *testing.T) {
	suite.Run(t, new(UtilityTestSuite))
}

func (suite *UtilityTestSuite) SetupTest() {
	key, err := export.GenerateRandomKey()
	suite.Require().NoError(err)
	suite.key = key
	suite.execCtx = flowmodel.NewExecutionContext("run-1", "flow-1")
	suite.step = flowmodel.NewFlowExecutionStep("node-1")
}

func (suite *UtilityTestSuite) TestRegistryResolve() {
	encryptExec, err := NewEncryptFilesExecutor(suite.key)
	suite.Require().NoError(err)
	registry := NewRegistry(encryptExec, NewUnarchiveExecutor())

	resolved, svcErr := registry.Resolve(EncryptFilesName)
	suite.Require().Nil(svcErr)
	suite.Equal(EncryptFilesName, resolved.Name())

	suite.Equal([]string{EncryptFilesName, UnarchiveName}, registry.Names())
}

func (suite *UtilityTestSuite) TestRegistryResolveUnknown() {
	registry := NewRegistry()
	resolved, svcErr := registry.Resolve("shred-files")
	suite.Nil(resolved)
	suite.Require().NotNil(svcErr)
	suite.Equal(flowconst.ErrorUnknownUtility.Code, svcErr.Code)
}

func (suite *UtilityTestSuite) TestEncryptFiles() {
	executor, err := NewEncryptFilesExecutor(suite.key)
	suite.Require().NoError(err)

	plaintext := []byte("statement 2026-08")
	suite.execCtx.SetFiles([]flowmodel.FileRecord{{FileName: "statement.csv", FileContent: plaintext}})

	result, svcErr := executor.Execute(context.Background(), nil, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(1, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)

	suite.Require().Len(suite.execCtx.FilesToProcess, 1)
	encrypted := suite.execCtx.FilesToProcess[0]
	suite.Equal("statement.csv.enc", encrypted.FileName)
	suite.NotEqual(plaintext, encrypted.FileContent)

	// The sealed content opens back to the original bytes under the same key.
	block, err := aes.NewCipher(suite.key)
	suite.Require().NoError(err)
	aead, err := cipher.NewGCM(block)
	suite.Require().NoError(err)
	nonce := encrypted.FileContent[:aead.NonceSize()]
	opened, err := aead.Open(nil, nonce, encrypted.FileContent[aead.NonceSize():], nil)
	suite.Require().NoError(err)
	suite.Equal(plaintext, opened)
}

func (suite *UtilityTestSuite) TestEncryptFilesRejectsShortKey() {
	executor, err := NewEncryptFilesExecutor([]byte("too short"))
	suite.Nil(executor)
	suite.Error(err)
}

func (suite *UtilityTestSuite) TestUnarchiveExpandsZip() {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"reports/january.csv": "jan",
		"reports/february.csv": "feb",
	} {
		entry, err := zipWriter.Create(name)
		suite.Require().NoError(err)
		_, err = entry.Write([]byte(content))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(zipWriter.Close())

	suite.execCtx.SetFiles([]flowmodel.FileRecord{
		{FileName: "reports.zip", FileContent: buf.Bytes()},
		{FileName: "readme.txt", FileContent: []byte("plain")},
	})

	executor := NewUnarchiveExecutor()
	result, svcErr := executor.Execute(context.Background(), nil, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(1, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)

	names := make(map[string]string)
	for _, file := range suite.execCtx.FilesToProcess {
		names[file.FileName] = string(file.FileContent)
	}
	suite.Len(names, 3)
	suite.Equal("jan", names["reports/january.csv"])
	suite.Equal("feb", names["reports/february.csv"])
	suite.Equal("plain", names["readme.txt"])
}

func (suite *UtilityTestSuite) TestUnarchiveCorruptArchiveIsPerFileFailure() {
	suite.execCtx.SetFiles([]flowmodel.FileRecord{
		{FileName: "broken.zip", FileContent: []byte("this is not a zip")},
		{FileName: "keep.txt", FileContent: []byte("kept")},
	})

	executor := NewUnarchiveExecutor()
	result, svcErr := executor.Execute(context.Background(), nil, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(0, result.SuccessCount)
	suite.Equal(1, result.ErrorCount)

	suite.Require().Len(suite.execCtx.FilesToProcess, 1)
	suite.Equal("keep.txt", suite.execCtx.FilesToProcess[0].FileName)
}

func (suite *UtilityTestSuite) TestExportPackageSealsBatch() {
	service, err := export.NewService(suite.key)
	suite.Require().NoError(err)
	executor := NewExportPackageExecutor(service)

	suite.execCtx.SetFiles([]flowmodel.FileRecord{
		{FileName: "flow.json", FileContent: []byte(`{"id":"daily"}`)},
		{FileName: "partner.pem", FileContent: []byte("key material")},
	})
	properties := map[string]string{"packageName": "partner-bundle"}

	result, svcErr := executor.Execute(context.Background(), properties, suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(2, result.SuccessCount)

	suite.Require().Len(suite.execCtx.FilesToProcess, 1)
	packaged := suite.execCtx.FilesToProcess[0]
	suite.Equal("partner-bundle.pkg.json", packaged.FileName)

	var envelope export.Envelope
	suite.Require().NoError(json.Unmarshal(packaged.FileContent, &envelope))
	plain, err := service.Decrypt(&envelope)
	suite.Require().NoError(err)
	suite.Equal("partner-bundle", plain["name"])
	suite.Equal("run-1", plain["runId"])
	suite.Len(plain["files"], 2)
}

func (suite *UtilityTestSuite) TestExportPackageCancelledContext() {
	service, err := export.NewService(suite.key)
	suite.Require().NoError(err)
	executor := NewExportPackageExecutor(service)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, svcErr := executor.Execute(ctx, nil, suite.execCtx, suite.step)
	suite.Nil(result)
	suite.Require().NotNil(svcErr)
	suite.Equal(flowconst.ErrorRunCancelled.Code, svcErr.Code)
}
