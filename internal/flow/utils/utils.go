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

// Package utils provides utility functions for flow graph processing.
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	adapterconst "github.com/fileforge/h2h/internal/adapter/constants"
	adaptermodel "github.com/fileforge/h2h/internal/adapter/model"
	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/flow/jsonmodel"
	"github.com/fileforge/h2h/internal/flow/model"
	sysutils "github.com/fileforge/h2h/internal/system/utils"
)

// BuildGraphFromDefinition builds a validated graph from a flow definition json.
func BuildGraphFromDefinition(definition *jsonmodel.FlowDefinition) (*model.Graph, error) {
	if definition == nil || len(definition.Nodes) == 0 {
		return nil, fmt.Errorf("flow definition is nil or has no nodes")
	}
	if definition.ID == "" {
		return nil, fmt.Errorf("flow definition has no ID")
	}

	g := model.NewGraph(definition.ID)
	for _, nodeDef := range definition.Nodes {
		node, err := buildNode(nodeDef)
		if err != nil {
			return nil, fmt.Errorf("failed to build node %s: %w", nodeDef.ID, err)
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("failed to add node %s to the graph: %w", nodeDef.ID, err)
		}
	}

	if err := validateGraph(g); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGraphFromFile reads a single flow definition file and builds its graph.
func LoadGraphFromFile(path string) (*model.Graph, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured graph directory
	if err != nil {
		return nil, fmt.Errorf("failed to read flow definition %s: %w", path, err)
	}

	var definition jsonmodel.FlowDefinition
	if err := json.Unmarshal(content, &definition); err != nil {
		return nil, fmt.Errorf("failed to parse flow definition %s: %w", path, err)
	}
	return BuildGraphFromDefinition(&definition)
}

// LoadGraphDirectory builds the graphs for every json definition in the
// given directory, keyed by flow ID.
func LoadGraphDirectory(dir string) (map[string]*model.Graph, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph directory %s: %w", dir, err)
	}

	graphs := make(map[string]*model.Graph)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		graph, err := LoadGraphFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, exists := graphs[graph.ID]; exists {
			return nil, fmt.Errorf("duplicate flow ID %s in graph directory", graph.ID)
		}
		graphs[graph.ID] = graph
	}
	return graphs, nil
}

// buildNode converts a node definition into a flow node.
func buildNode(nodeDef jsonmodel.NodeDefinition) (*model.FlowNode, error) {
	if nodeDef.ID == "" {
		return nil, fmt.Errorf("node has no ID")
	}

	kind, err := getNodeKind(nodeDef.Type)
	if err != nil {
		return nil, err
	}

	node := &model.FlowNode{
		ID:         nodeDef.ID,
		Kind:       kind,
		Properties: sysutils.CloneStringMap(nodeDef.Properties),
	}
	for i, edgeDef := range nodeDef.Next {
		if edgeDef.Target == "" {
			return nil, fmt.Errorf("edge %d of node %s has no target", i, nodeDef.ID)
		}
		node.Outgoing = append(node.Outgoing, model.Edge{
			ID:           fmt.Sprintf("%s-%d", nodeDef.ID, i),
			TargetNodeID: edgeDef.Target,
			Label:        edgeDef.Label,
		})
	}

	switch kind {
	case constants.NodeKindAdapter:
		if nodeDef.Adapter == nil {
			return nil, fmt.Errorf("adapter node %s has no adapter definition", nodeDef.ID)
		}
		adapter, err := buildAdapter(nodeDef.Adapter)
		if err != nil {
			return nil, err
		}
		node.Adapter = adapter
	case constants.NodeKindDecision:
		if nodeDef.Condition == nil {
			return nil, fmt.Errorf("decision node %s has no condition", nodeDef.ID)
		}
		node.Condition = &model.DecisionCondition{
			Type:      constants.ConditionType(nodeDef.Condition.Type),
			Key:       nodeDef.Condition.Key,
			Value:     nodeDef.Condition.Value,
			Threshold: nodeDef.Condition.Threshold,
		}
	case constants.NodeKindParallelSplit:
		node.ParallelPaths = len(node.Outgoing)
	case constants.NodeKindUtility:
		if nodeDef.Utility == "" {
			return nil, fmt.Errorf("utility node %s has no utility name", nodeDef.ID)
		}
		node.UtilityName = nodeDef.Utility
	}

	return node, nil
}

// buildAdapter converts an adapter definition into the adapter entity.
func buildAdapter(def *jsonmodel.AdapterDefinition) (*adaptermodel.Adapter, error) {
	adapterType := adapterconst.AdapterType(def.Type)
	switch adapterType {
	case adapterconst.AdapterTypeFile, adapterconst.AdapterTypeSftp, adapterconst.AdapterTypeEmail:
	default:
		return nil, fmt.Errorf("unknown adapter type: %s", def.Type)
	}

	direction := adapterconst.Direction(def.Direction)
	switch direction {
	case adapterconst.DirectionSender, adapterconst.DirectionReceiver:
	default:
		return nil, fmt.Errorf("unknown adapter direction: %s", def.Direction)
	}

	return &adaptermodel.Adapter{
		ID:            def.ID,
		Type:          adapterType,
		Direction:     direction,
		Configuration: sysutils.CloneStringMap(def.Configuration),
	}, nil
}

// getNodeKind retrieves the node kind from its string representation.
func getNodeKind(nodeType string) (constants.NodeKind, error) {
	kind := constants.NodeKind(nodeType)
	switch kind {
	case constants.NodeKindStart, constants.NodeKindEnd, constants.NodeKindMessageEnd,
		constants.NodeKindDecision, constants.NodeKindParallelSplit,
		constants.NodeKindAdapter, constants.NodeKindUtility:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown node type: %s", nodeType)
	}
}

// validateGraph checks the structural invariants of a built graph.
func validateGraph(g *model.Graph) error {
	start, err := g.GetStartNode()
	if err != nil {
		return fmt.Errorf("flow %s has no start node", g.ID)
	}

	hasTerminal := false
	for _, node := range g.Nodes {
		if node.IsTerminal() {
			hasTerminal = true
			if len(node.Outgoing) != 0 {
				return fmt.Errorf("terminal node %s has outgoing edges", node.ID)
			}
			continue
		}
		if len(node.Outgoing) == 0 {
			return fmt.Errorf("non-terminal node %s has no outgoing edges", node.ID)
		}
		for _, edge := range node.Outgoing {
			if _, ok := g.GetNode(edge.TargetNodeID); !ok {
				return fmt.Errorf("node %s points at unknown node %s", node.ID, edge.TargetNodeID)
			}
		}

		switch node.Kind {
		case constants.NodeKindDecision:
			if err := validateDecisionEdges(node); err != nil {
				return err
			}
		case constants.NodeKindParallelSplit:
			if len(node.Outgoing) < 2 {
				return fmt.Errorf("parallel split node %s needs at least two outgoing edges", node.ID)
			}
		default:
			if len(node.Outgoing) != 1 {
				return fmt.Errorf("node %s must have exactly one outgoing edge", node.ID)
			}
		}
	}
	if !hasTerminal {
		return fmt.Errorf("flow %s has no terminal node", g.ID)
	}

	if err := checkReachability(g, start); err != nil {
		return err
	}
	return checkAcyclic(g, start)
}

// validateDecisionEdges requires exactly one yes edge and one no edge.
func validateDecisionEdges(node *model.FlowNode) error {
	if len(node.Outgoing) != 2 {
		return fmt.Errorf("decision node %s must have exactly two outgoing edges", node.ID)
	}
	if _, ok := node.EdgeByLabel(constants.EdgeLabelYes); !ok {
		return fmt.Errorf("decision node %s has no %q edge", node.ID, constants.EdgeLabelYes)
	}
	if _, ok := node.EdgeByLabel(constants.EdgeLabelNo); !ok {
		return fmt.Errorf("decision node %s has no %q edge", node.ID, constants.EdgeLabelNo)
	}
	return nil
}

// checkReachability verifies that every node can be reached from the start node.
func checkReachability(g *model.Graph, start *model.FlowNode) error {
	visited := make(map[string]bool, len(g.Nodes))
	queue := []*model.FlowNode{start}
	visited[start.ID] = true
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, edge := range node.Outgoing {
			if visited[edge.TargetNodeID] {
				continue
			}
			visited[edge.TargetNodeID] = true
			target, _ := g.GetNode(edge.TargetNodeID)
			queue = append(queue, target)
		}
	}

	for id := range g.Nodes {
		if !visited[id] {
			return fmt.Errorf("node %s is not reachable from the start node", id)
		}
	}
	return nil
}

// checkAcyclic verifies that the graph contains no directed cycle.
func checkAcyclic(g *model.Graph, start *model.FlowNode) error {
	const (
		inProgress = 1
		done       = 2
	)
	state := make(map[string]int, len(g.Nodes))

	var visit func(node *model.FlowNode) error
	visit = func(node *model.FlowNode) error {
		state[node.ID] = inProgress
		for _, edge := range node.Outgoing {
			target, _ := g.GetNode(edge.TargetNodeID)
			switch state[target.ID] {
			case inProgress:
				return fmt.Errorf("cycle detected at node %s", target.ID)
			case done:
				continue
			default:
				if err := visit(target); err != nil {
					return err
				}
			}
		}
		state[node.ID] = done
		return nil
	}
	return visit(start)
}
