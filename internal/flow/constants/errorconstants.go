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

package constants

import (
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// Client error structs

// ErrorUnsupportedConditionType is returned when a decision node carries an
// unknown condition type. This is an explicit contract, never a silent fallback.
var ErrorUnsupportedConditionType = serviceerror.ServiceError{
	Code:             "FEE-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unsupported condition type",
	ErrorDescription: "The decision node condition type is not supported",
}

// ErrorInvalidDecisionNode is returned when a decision node does not define
// exactly one yes edge and one no edge.
var ErrorInvalidDecisionNode = serviceerror.ServiceError{
	Code:             "FEE-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid decision node",
	ErrorDescription: "A decision node must have exactly one yes edge and one no edge",
}

// ErrorUnknownUtility is returned when a utility node names an unregistered utility.
var ErrorUnknownUtility = serviceerror.ServiceError{
	Code:             "FEE-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unknown utility",
	ErrorDescription: "No utility executor is registered for the requested name",
}

// ErrorAdapterNotConfigured is returned when an adapter node carries no adapter definition.
var ErrorAdapterNotConfigured = serviceerror.ServiceError{
	Code:             "FEE-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Adapter not configured",
	ErrorDescription: "The adapter node does not define an adapter",
}

// Server error structs

// ErrorFlowGraphNotInitialized is returned when the engine is executed without a graph.
var ErrorFlowGraphNotInitialized = serviceerror.ServiceError{
	Code:             "FEE-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Flow graph is not initialized or is nil",
}

// ErrorStartNodeNotFoundInGraph is returned when the graph has no start node.
var ErrorStartNodeNotFoundInGraph = serviceerror.ServiceError{
	Code:             "FEE-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Start node not found in the flow graph",
}

// ErrorNextNodeNotFoundInGraph is returned when an edge targets a node missing from the graph.
var ErrorNextNodeNotFoundInGraph = serviceerror.ServiceError{
	Code:             "FEE-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Next node not found in the flow graph",
}

// ErrorRunCancelled is returned when the caller aborts the run before it completes.
var ErrorRunCancelled = serviceerror.ServiceError{
	Code:             "FEE-65004",
	Type:             serviceerror.ServerErrorType,
	Error:            "Run cancelled",
	ErrorDescription: "The flow run was cancelled by the caller",
}

// ErrorPackageExportFailed is returned when the batch cannot be sealed into a package envelope.
var ErrorPackageExportFailed = serviceerror.ServiceError{
	Code:             "FEE-65005",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Failed to seal the file batch into a package export envelope",
}
