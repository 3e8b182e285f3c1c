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

package model

import (
	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// DecisionCondition represents the condition configured on a decision node.
type DecisionCondition struct {
	Type      constants.ConditionType `json:"conditionType"`
	Key       string                  `json:"key,omitempty"`
	Value     string                  `json:"value,omitempty"`
	Threshold int                     `json:"threshold,omitempty"`
}

// Evaluate evaluates the condition against the current execution context.
// An unsupported condition type is a fatal configuration error. The engine
// never routes a decision node on a silent default.
func (c *DecisionCondition) Evaluate(execCtx *ExecutionContext) (bool, *serviceerror.ServiceError) {
	switch c.Type {
	case constants.ConditionAlwaysTrue:
		return true, nil
	case constants.ConditionAlwaysFalse:
		return false, nil
	case constants.ConditionContextContainsKey:
		return execCtx.ContainsValue(c.Key), nil
	case constants.ConditionContextValueEquals:
		return execCtx.Values[c.Key] == c.Value, nil
	case constants.ConditionFileCountGreaterThan:
		return len(execCtx.FilesToProcess) > c.Threshold, nil
	default:
		return false, constants.ErrorUnsupportedConditionType.WithDescription(
			"unsupported condition type: " + string(c.Type))
	}
}
