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

// ErrorUnsupportedAdapterCombination is returned when no executor exists for an
// adapter type and direction combination.
var ErrorUnsupportedAdapterCombination = serviceerror.ServiceError{
	Code:             "ADP-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unsupported adapter combination",
	ErrorDescription: "No executor is registered for the requested adapter type and direction",
}

// ErrorInvalidAdapterConfiguration is returned when a required configuration key is
// absent, empty, or malformed.
var ErrorInvalidAdapterConfiguration = serviceerror.ServiceError{
	Code:             "ADP-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid adapter configuration",
	ErrorDescription: "One or more required adapter configuration values are missing or malformed",
}

// ErrorAdapterTypeMismatch is returned when an adapter is executed by an executor
// of a different type or direction.
var ErrorAdapterTypeMismatch = serviceerror.ServiceError{
	Code:             "ADP-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Adapter type mismatch",
	ErrorDescription: "The adapter type or direction does not match the executor capabilities",
}

// Server error structs

// ErrorTransportFailure is returned when connection establishment or mid-transfer
// I/O fails at the connection level.
var ErrorTransportFailure = serviceerror.ServiceError{
	Code:             "ADP-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Transport failure",
	ErrorDescription: "Failed to establish or use the transport connection",
}

// ErrorLocalIOFailure is returned when the local filesystem cannot be read or written.
var ErrorLocalIOFailure = serviceerror.ServiceError{
	Code:             "ADP-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Local I/O failure",
	ErrorDescription: "Failed to access the configured local directory",
}

// ErrorMailDeliveryFailure is returned when the outbound mail submission fails.
var ErrorMailDeliveryFailure = serviceerror.ServiceError{
	Code:             "ADP-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Mail delivery failure",
	ErrorDescription: "Failed to submit the message to the SMTP server",
}
