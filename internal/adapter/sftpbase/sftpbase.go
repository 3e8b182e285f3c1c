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

// Package sftpbase provides the configuration handling shared by the SFTP
// sender and receiver executors.
package sftpbase

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/transport/sftp"
)

// KeyProvider resolves private key material for a configured key alias.
type KeyProvider interface {
	PrivateKey(alias string) ([]byte, error)
}

// FileKeyProvider loads private keys from PEM files in a directory, one file
// per alias.
type FileKeyProvider struct {
	directory string
}

// NewFileKeyProvider creates a key provider reading from the given directory.
func NewFileKeyProvider(directory string) *FileKeyProvider {
	return &FileKeyProvider{directory: directory}
}

// PrivateKey returns the PEM bytes for the given alias.
func (p *FileKeyProvider) PrivateKey(alias string) ([]byte, error) {
	return os.ReadFile(filepath.Clean(filepath.Join(p.directory, alias+".pem")))
}

// ValidateConfiguration checks the SFTP adapter configuration. The remote
// directory is only required for receiver (upload) adapters.
func ValidateConfiguration(adapter *adaptermodel.Adapter,
	requireRemoteDirectory bool) *serviceerror.ServiceError {
	if svcErr := adapter.RequireStrings(constants.ConfigKeyHost,
		constants.ConfigKeyUsername); svcErr != nil {
		return svcErr
	}
	if svcErr := adapter.RequireInt(constants.ConfigKeyPort); svcErr != nil {
		return svcErr
	}

	_, hasPassword := adapter.ConfigString(constants.ConfigKeyPassword)
	_, hasKeyAlias := adapter.ConfigString(constants.ConfigKeyPrivateKeyAlias)
	if !hasPassword && !hasKeyAlias {
		return constants.ErrorInvalidAdapterConfiguration.WithDescription(
			"either " + constants.ConfigKeyPassword + " or " +
				constants.ConfigKeyPrivateKeyAlias + " must be configured")
	}

	if requireRemoteDirectory {
		if svcErr := adapter.RequireStrings(constants.ConfigKeyRemoteDirectory); svcErr != nil {
			return svcErr
		}
	}
	return nil
}

// EndpointConfig builds the transport endpoint configuration from the adapter
// configuration, resolving key material through the provider when a key alias
// is configured.
func EndpointConfig(adapter *adaptermodel.Adapter,
	keys KeyProvider) (sftp.EndpointConfig, *serviceerror.ServiceError) {
	host, _ := adapter.ConfigString(constants.ConfigKeyHost)
	port, _ := adapter.ConfigInt(constants.ConfigKeyPort)
	username, _ := adapter.ConfigString(constants.ConfigKeyUsername)

	cfg := sftp.EndpointConfig{
		Host:     host,
		Port:     port,
		Username: username,
	}

	if password, ok := adapter.ConfigString(constants.ConfigKeyPassword); ok {
		cfg.Password = password
	}
	if alias, ok := adapter.ConfigString(constants.ConfigKeyPrivateKeyAlias); ok {
		if keys == nil {
			return sftp.EndpointConfig{}, constants.ErrorInvalidAdapterConfiguration.WithDescription(
				"no key provider configured for key alias " + alias)
		}
		keyBytes, err := keys.PrivateKey(alias)
		if err != nil {
			return sftp.EndpointConfig{}, constants.ErrorInvalidAdapterConfiguration.WithDescription(
				"failed to resolve private key for alias " + alias + ": " + err.Error())
		}
		cfg.PrivateKey = keyBytes
	}

	if timeoutMs, ok := adapter.ConfigInt(constants.ConfigKeySessionTimeoutMs); ok {
		cfg.SessionTimeout = time.Duration(timeoutMs) * time.Millisecond
	}
	return cfg, nil
}
