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
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fileforge/h2h/internal/flow/constants"
)

type DecisionConditionTestSuite struct {
	suite.Suite
	execCtx *ExecutionContext
}

func TestDecisionConditionTestSuite(t *testing.T) {
	suite.Run(t, new(DecisionConditionTestSuite))
}

func (suite *DecisionConditionTestSuite) SetupTest() {
	suite.execCtx = NewExecutionContext("run-1", "flow-1")
	suite.execCtx.Values["partner"] = "acme"
	suite.execCtx.SetFiles([]FileRecord{
		{FileName: "a.txt", FileContent: []byte("aaa")},
		{FileName: "b.txt", FileContent: []byte("bbb")},
	})
}

func (suite *DecisionConditionTestSuite) TestEvaluate() {
	cases := []struct {
		name      string
		condition DecisionCondition
		expected  bool
	}{
		{
			name:      "AlwaysTrue",
			condition: DecisionCondition{Type: constants.ConditionAlwaysTrue},
			expected:  true,
		},
		{
			name:      "AlwaysFalse",
			condition: DecisionCondition{Type: constants.ConditionAlwaysFalse},
			expected:  false,
		},
		{
			name:      "ContainsKeyPresent",
			condition: DecisionCondition{Type: constants.ConditionContextContainsKey, Key: "partner"},
			expected:  true,
		},
		{
			name:      "ContainsKeyAbsent",
			condition: DecisionCondition{Type: constants.ConditionContextContainsKey, Key: "missing"},
			expected:  false,
		},
		{
			name: "ValueEqualsMatch",
			condition: DecisionCondition{
				Type: constants.ConditionContextValueEquals, Key: "partner", Value: "acme",
			},
			expected: true,
		},
		{
			name: "ValueEqualsMismatch",
			condition: DecisionCondition{
				Type: constants.ConditionContextValueEquals, Key: "partner", Value: "other",
			},
			expected: false,
		},
		{
			name: "FileCountAboveThreshold",
			condition: DecisionCondition{
				Type: constants.ConditionFileCountGreaterThan, Threshold: 1,
			},
			expected: true,
		},
		{
			name: "FileCountAtThreshold",
			condition: DecisionCondition{
				Type: constants.ConditionFileCountGreaterThan, Threshold: 2,
			},
			expected: false,
		},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			matched, svcErr := tc.condition.Evaluate(suite.execCtx)
			suite.Nil(svcErr)
			suite.Equal(tc.expected, matched)
		})
	}
}

func (suite *DecisionConditionTestSuite) TestEvaluateUnknownConditionType() {
	condition := DecisionCondition{Type: "NOT_A_CONDITION"}
	matched, svcErr := condition.Evaluate(suite.execCtx)
	suite.False(matched)
	suite.NotNil(svcErr)
	suite.Equal(constants.ErrorUnsupportedConditionType.Code, svcErr.Code)
}

func (suite *DecisionConditionTestSuite) TestExecutionContextCloneIsolation() {
	clone := suite.execCtx.Clone()
	clone.Values["partner"] = "changed"
	clone.FilesToProcess[0].FileContent[0] = 'z'
	clone.AppendFiles(FileRecord{FileName: "c.txt"})

	suite.Equal("acme", suite.execCtx.Values["partner"])
	suite.Equal(byte('a'), suite.execCtx.FilesToProcess[0].FileContent[0])
	suite.Len(suite.execCtx.FilesToProcess, 2)
	suite.Equal(suite.execCtx.RunID, clone.RunID)
}
