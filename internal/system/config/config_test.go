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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

const testDeploymentYAML = `
server:
  hostname: "h2h.example.com"
  port: 8090
flow:
  graph_directory: "repository/conf/flows"
  worker_pool_size: 8
  fail_fast: true
transfer:
  sftp_pool:
    max_connections_per_endpoint: 5
    max_idle_minutes: 10
    cleanup_interval_minutes: 2
  session_timeout_ms: 30000
  channel_timeout_ms: 15000
  private_key_directory: "repository/security/keys"
mail:
  hostname: "smtp.example.com"
  port: 587
  username: "notifier"
  password: "secret"
crypto:
  key: "c2l4dGVlbmJ5dGVzISE="
`

type ConfigTestSuite struct {
	suite.Suite
	configPath string
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	dir := suite.T().TempDir()
	suite.configPath = filepath.Join(dir, "deployment.yaml")
	err := os.WriteFile(suite.configPath, []byte(testDeploymentYAML), 0600)
	suite.Require().NoError(err)
	ResetH2HRuntime()
}

func (suite *ConfigTestSuite) TearDownTest() {
	ResetH2HRuntime()
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	cfg, err := LoadConfig(suite.configPath)
	suite.Require().NoError(err)

	suite.Equal("h2h.example.com", cfg.Server.Hostname)
	suite.Equal(8090, cfg.Server.Port)

	suite.Equal("repository/conf/flows", cfg.Flow.GraphDirectory)
	suite.Equal(8, cfg.Flow.WorkerPoolSize)
	suite.True(cfg.Flow.FailFast)

	suite.Equal(5, cfg.Transfer.SftpPool.MaxConnectionsPerEndpoint)
	suite.Equal(10, cfg.Transfer.SftpPool.MaxIdleMinutes)
	suite.Equal(2, cfg.Transfer.SftpPool.CleanupIntervalMinutes)
	suite.Equal(30000, cfg.Transfer.SessionTimeoutMs)
	suite.Equal("repository/security/keys", cfg.Transfer.PrivateKeyDirectory)

	suite.Equal("smtp.example.com", cfg.Mail.Hostname)
	suite.Equal("notifier", cfg.Mail.Username)

	suite.Equal("c2l4dGVlbmJ5dGVzISE=", cfg.Crypto.Key)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	cfg, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Nil(cfg)
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedYAML() {
	path := filepath.Join(suite.T().TempDir(), "broken.yaml")
	err := os.WriteFile(path, []byte("server:\n  hostname: [unterminated"), 0600)
	suite.Require().NoError(err)

	cfg, loadErr := LoadConfig(path)
	suite.Nil(cfg)
	suite.Error(loadErr)
}

func (suite *ConfigTestSuite) TestRuntimeSingleton() {
	cfg, err := LoadConfig(suite.configPath)
	suite.Require().NoError(err)

	suite.Require().NoError(InitializeH2HRuntime("/opt/h2h", cfg))
	runtime := GetH2HRuntime()
	suite.Equal("/opt/h2h", runtime.H2HHome)
	suite.Equal(8090, runtime.Config.Server.Port)

	// Initialization happens once; a second call must not overwrite.
	other := *cfg
	other.Server.Port = 9999
	suite.Require().NoError(InitializeH2HRuntime("/other", &other))
	suite.Equal("/opt/h2h", GetH2HRuntime().H2HHome)
	suite.Equal(8090, GetH2HRuntime().Config.Server.Port)
}

func (suite *ConfigTestSuite) TestRuntimePanicsWhenUninitialized() {
	suite.Panics(func() { GetH2HRuntime() })
}
