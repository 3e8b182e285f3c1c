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
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	"github.com/fileforge/h2h/internal/flow/constants"
)

// Edge represents a directed edge between two flow nodes. The label is only
// meaningful for decision nodes (yes/no).
type Edge struct {
	ID           string `json:"id"`
	TargetNodeID string `json:"targetNodeId"`
	Label        string `json:"label,omitempty"`
}

// FlowNode represents a single node in a flow graph.
type FlowNode struct {
	ID            string                    `json:"id"`
	Kind          constants.NodeKind        `json:"kind"`
	Outgoing      []Edge                    `json:"outgoing,omitempty"`
	Adapter       *adaptermodel.Adapter     `json:"adapter,omitempty"`
	Condition     *DecisionCondition        `json:"condition,omitempty"`
	ParallelPaths int                       `json:"parallelPaths,omitempty"`
	UtilityName   string                    `json:"utilityName,omitempty"`
	Properties    map[string]string         `json:"properties,omitempty"`
}

// IsTerminal checks whether the node ends a flow branch.
func (n *FlowNode) IsTerminal() bool {
	return n.Kind == constants.NodeKindEnd || n.Kind == constants.NodeKindMessageEnd
}

// EdgeByLabel returns the outgoing edge carrying the given label.
func (n *FlowNode) EdgeByLabel(label string) (Edge, bool) {
	for _, edge := range n.Outgoing {
		if edge.Label == label {
			return edge, true
		}
	}
	return Edge{}, false
}
