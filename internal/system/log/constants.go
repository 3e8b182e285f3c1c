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

package log

const (
	// LogLevelEnvironmentVariable is the environment variable used to set the log level.
	LogLevelEnvironmentVariable = "H2H_LOG_LEVEL"
	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"
)

const (
	// LoggerKeyComponentName is the key used to identify the component name in the logger.
	LoggerKeyComponentName = "component"
	// LoggerKeyExecutorName is the key used to identify the executor name in the logger.
	LoggerKeyExecutorName = "executorName"
	// LoggerKeyFlowID is the key used to identify the flow ID in the logger.
	LoggerKeyFlowID = "flowId"
	// LoggerKeyRunID is the key used to identify the flow run ID in the logger.
	LoggerKeyRunID = "runId"
	// LoggerKeyNodeID is the key used to identify the node ID in the logger.
	LoggerKeyNodeID = "nodeId"
	// LoggerKeyAdapterID is the key used to identify the adapter ID in the logger.
	LoggerKeyAdapterID = "adapterId"
	// LoggerKeyEndpointKey is the key used to identify an SFTP endpoint in the logger.
	LoggerKeyEndpointKey = "endpointKey"
)
