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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/fileforge/h2h/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// FlowConfig holds the configuration details for the flow execution engine.
type FlowConfig struct {
	GraphDirectory string `yaml:"graph_directory"`
	WorkerPoolSize int    `yaml:"worker_pool_size"`
	FailFast       bool   `yaml:"fail_fast"`
}

// SftpPoolConfig holds the SFTP connection pool configuration details.
type SftpPoolConfig struct {
	MaxConnectionsPerEndpoint int `yaml:"max_connections_per_endpoint"`
	MaxIdleMinutes            int `yaml:"max_idle_minutes"`
	CleanupIntervalMinutes    int `yaml:"cleanup_interval_minutes"`
}

// TransferConfig holds the file transfer configuration details.
type TransferConfig struct {
	SftpPool            SftpPoolConfig `yaml:"sftp_pool"`
	SessionTimeoutMs    int            `yaml:"session_timeout_ms"`
	ChannelTimeoutMs    int            `yaml:"channel_timeout_ms"`
	PrivateKeyDirectory string         `yaml:"private_key_directory"`
}

// MailConfig holds the outbound mail configuration details.
type MailConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CryptoConfig holds the cryptographic configuration details.
type CryptoConfig struct {
	Key string `yaml:"key"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Flow     FlowConfig     `yaml:"flow"`
	Transfer TransferConfig `yaml:"transfer"`
	Mail     MailConfig     `yaml:"mail"`
	Crypto   CryptoConfig   `yaml:"crypto"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
