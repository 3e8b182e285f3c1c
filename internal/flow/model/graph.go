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
	"errors"

	"github.com/fileforge/h2h/internal/flow/constants"
)

// Graph represents a validated flow graph.
type Graph struct {
	ID          string
	Nodes       map[string]*FlowNode
	StartNodeID string
}

// NewGraph creates an empty graph with the given ID.
func NewGraph(id string) *Graph {
	return &Graph{
		ID:    id,
		Nodes: make(map[string]*FlowNode),
	}
}

// AddNode adds a node to the graph.
func (g *Graph) AddNode(node *FlowNode) error {
	if node == nil || node.ID == "" {
		return errors.New("node is nil or has no ID")
	}
	if _, exists := g.Nodes[node.ID]; exists {
		return errors.New("duplicate node ID: " + node.ID)
	}
	g.Nodes[node.ID] = node
	if node.Kind == constants.NodeKindStart {
		if g.StartNodeID != "" {
			return errors.New("graph has more than one start node")
		}
		g.StartNodeID = node.ID
	}
	return nil
}

// GetNode returns the node with the given ID.
func (g *Graph) GetNode(id string) (*FlowNode, bool) {
	node, ok := g.Nodes[id]
	return node, ok
}

// GetStartNode returns the unique start node of the graph.
func (g *Graph) GetStartNode() (*FlowNode, error) {
	if g.StartNodeID == "" {
		return nil, errors.New("start node is not set in the graph")
	}
	node, ok := g.Nodes[g.StartNodeID]
	if !ok {
		return nil, errors.New("start node not found in the graph")
	}
	return node, nil
}
