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

package sftpsender

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/transport/sftp"
)

// fakeRemote is an in-memory remote SFTP endpoint serving downloads.
type fakeRemote struct {
	files      map[string][]byte
	unreadable map[string]bool
}

type fakeFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i fakeFileInfo) Name() string       { return i.name }
func (i fakeFileInfo) Size() int64        { return i.size }
func (i fakeFileInfo) Mode() os.FileMode  { return 0o640 }
func (i fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (i fakeFileInfo) IsDir() bool        { return i.dir }
func (i fakeFileInfo) Sys() any           { return nil }

func (r *fakeRemote) Lstat(string) (os.FileInfo, error) { return nil, errors.New("not implemented") }
func (r *fakeRemote) MkdirAll(string) error             { return nil }

func (r *fakeRemote) Create(string) (io.WriteCloser, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRemote) Open(remotePath string) (io.ReadCloser, error) {
	if r.unreadable[remotePath] {
		return nil, errors.New("permission denied")
	}
	content, ok := r.files[remotePath]
	if !ok {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(strings.NewReader(string(content))), nil
}

func (r *fakeRemote) ReadDir(dir string) ([]os.FileInfo, error) {
	entries := make([]os.FileInfo, 0, len(r.files))
	for remotePath, content := range r.files {
		if path.Dir(remotePath) == dir {
			entries = append(entries, fakeFileInfo{
				name: path.Base(remotePath), size: int64(len(content)),
			})
		}
	}
	entries = append(entries, fakeFileInfo{name: "archive", dir: true})
	return entries, nil
}

func (r *fakeRemote) Remove(string) error    { return nil }
func (r *fakeRemote) Getwd() (string, error) { return "/", nil }
func (r *fakeRemote) Close() error           { return nil }

type fakeDialer struct {
	remote *fakeRemote
}

func (d *fakeDialer) Dial(cfg sftp.EndpointConfig) (*sftp.Connection, error) {
	return sftp.NewConnection(cfg.Key(), d.remote, nil), nil
}

type SftpSenderExecutorTestSuite struct {
	suite.Suite
	remote   *fakeRemote
	pool     *sftp.ConnectionPool
	executor *SftpSenderExecutor
	execCtx  *flowmodel.ExecutionContext
	step     *flowmodel.FlowExecutionStep
}

func TestSftpSenderExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(SftpSenderExecutorTestSuite))
}

func (suite *SftpSenderExecutorTestSuite) SetupTest() {
	suite.remote = &fakeRemote{
		files:      make(map[string][]byte),
		unreadable: make(map[string]bool),
	}
	suite.pool = sftp.NewConnectionPool(sftp.PoolOptions{})
	suite.executor = NewSftpSenderExecutor(suite.pool, &fakeDialer{remote: suite.remote}, nil)
	suite.execCtx = flowmodel.NewExecutionContext("run-1", "flow-1")
	suite.step = flowmodel.NewFlowExecutionStep("download")
}

func (suite *SftpSenderExecutorTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = suite.pool.Shutdown(ctx)
}

func (suite *SftpSenderExecutorTestSuite) adapter(pattern string) *adaptermodel.Adapter {
	configuration := map[string]string{
		constants.ConfigKeyHost:            "files.example.com",
		constants.ConfigKeyPort:            "22",
		constants.ConfigKeyUsername:        "batch",
		constants.ConfigKeyPassword:        "secret",
		constants.ConfigKeyRemoteDirectory: "/outbound",
	}
	if pattern != "" {
		configuration[constants.ConfigKeyFilePattern] = pattern
	}
	return &adaptermodel.Adapter{
		ID:            "partner-download",
		Type:          constants.AdapterTypeSftp,
		Direction:     constants.DirectionSender,
		Configuration: configuration,
	}
}

func (suite *SftpSenderExecutorTestSuite) TestExecuteDownloadsMatchingFiles() {
	suite.remote.files["/outbound/a.csv"] = []byte("one")
	suite.remote.files["/outbound/b.csv"] = []byte("twos")
	suite.remote.files["/outbound/readme.txt"] = []byte("skip")

	result, svcErr := suite.executor.Execute(
		context.Background(), suite.adapter("*.csv"), suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(2, result.SuccessCount)
	suite.Equal(0, result.ErrorCount)
	suite.Equal(int64(7), result.TotalBytes)

	names := make([]string, 0, len(suite.execCtx.FilesToProcess))
	for _, file := range suite.execCtx.FilesToProcess {
		names = append(names, file.FileName)
	}
	suite.ElementsMatch([]string{"a.csv", "b.csv"}, names)
}

func (suite *SftpSenderExecutorTestSuite) TestExecutePerFileDownloadFailure() {
	suite.remote.files["/outbound/a.csv"] = []byte("one")
	suite.remote.files["/outbound/b.csv"] = []byte("twos")
	suite.remote.unreadable["/outbound/b.csv"] = true

	result, svcErr := suite.executor.Execute(
		context.Background(), suite.adapter(""), suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(1, result.SuccessCount)
	suite.Equal(1, result.ErrorCount)
	suite.Equal(flowconst.StepStatusPartialSuccess, result.StepStatus())

	// Only the readable file made it into the batch.
	suite.Require().Len(suite.execCtx.FilesToProcess, 1)
	suite.Equal("a.csv", suite.execCtx.FilesToProcess[0].FileName)
}

func (suite *SftpSenderExecutorTestSuite) TestExecuteEmptyRemoteDirectory() {
	result, svcErr := suite.executor.Execute(
		context.Background(), suite.adapter(""), suite.execCtx, suite.step)
	suite.Require().Nil(svcErr)
	suite.Equal(0, result.SuccessCount)
	suite.Empty(suite.execCtx.FilesToProcess)
}

func (suite *SftpSenderExecutorTestSuite) TestValidateConfigurationRequiresRemoteDirectory() {
	adapter := suite.adapter("")
	delete(adapter.Configuration, constants.ConfigKeyRemoteDirectory)
	svcErr := suite.executor.ValidateConfiguration(adapter)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInvalidAdapterConfiguration.Code, svcErr.Code)
}
