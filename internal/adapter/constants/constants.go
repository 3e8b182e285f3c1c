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

// Package constants defines the constants used by the adapter executors.
package constants

// AdapterType defines the transport type of an adapter.
type AdapterType string

const (
	// AdapterTypeFile represents a local filesystem adapter.
	AdapterTypeFile AdapterType = "FILE"
	// AdapterTypeSftp represents an SFTP adapter.
	AdapterTypeSftp AdapterType = "SFTP"
	// AdapterTypeEmail represents an email adapter.
	AdapterTypeEmail AdapterType = "EMAIL"
)

// Direction defines the data flow direction of an adapter.
type Direction string

const (
	// DirectionSender represents an adapter that produces files into the execution context.
	DirectionSender Direction = "SENDER"
	// DirectionReceiver represents an adapter that consumes files from the execution context.
	DirectionReceiver Direction = "RECEIVER"
)

// Adapter configuration keys recognized by the executors.
const (
	// ConfigKeyHost is the remote host name or address.
	ConfigKeyHost = "host"
	// ConfigKeyPort is the remote port. The value must be numeric.
	ConfigKeyPort = "port"
	// ConfigKeyUsername is the remote login user.
	ConfigKeyUsername = "username"
	// ConfigKeyPassword is the remote login password reference.
	ConfigKeyPassword = "password"
	// ConfigKeyPrivateKeyAlias is the alias of the private key used for authentication.
	ConfigKeyPrivateKeyAlias = "pk_alias"
	// ConfigKeyRemoteDirectory is the directory on the remote endpoint.
	ConfigKeyRemoteDirectory = "remoteDirectory"
	// ConfigKeyLocalDirectory is the directory on the local filesystem.
	ConfigKeyLocalDirectory = "localDirectory"
	// ConfigKeyFilePattern is the glob pattern used to select files.
	ConfigKeyFilePattern = "filePattern"
	// ConfigKeySessionTimeoutMs is the SFTP session establishment timeout in milliseconds.
	ConfigKeySessionTimeoutMs = "sessionTimeoutMs"
	// ConfigKeyChannelTimeoutMs is the SFTP channel timeout in milliseconds.
	ConfigKeyChannelTimeoutMs = "channelTimeoutMs"
	// ConfigKeySMTPHost is the SMTP server host for email adapters.
	ConfigKeySMTPHost = "smtpHost"
	// ConfigKeySMTPPort is the SMTP server port for email adapters. The value must be numeric.
	ConfigKeySMTPPort = "smtpPort"
	// ConfigKeySMTPUsername is the SMTP login user for email adapters.
	ConfigKeySMTPUsername = "smtpUsername"
	// ConfigKeySMTPPassword is the SMTP login password for email adapters.
	ConfigKeySMTPPassword = "smtpPassword"
	// ConfigKeyFromAddress is the sender address for email adapters.
	ConfigKeyFromAddress = "fromAddress"
	// ConfigKeyToAddress is the recipient address for email adapters.
	ConfigKeyToAddress = "toAddress"
	// ConfigKeySubject is the mail subject for email adapters.
	ConfigKeySubject = "subject"
	// ConfigKeyAttachmentPrefix is the prefix applied to attachment names for email adapters.
	ConfigKeyAttachmentPrefix = "attachmentPrefix"
)
