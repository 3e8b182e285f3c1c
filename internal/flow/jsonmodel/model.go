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

// Package jsonmodel provides the structure for representing a flow definition in JSON format.
package jsonmodel

// FlowDefinition represents the direct flow graph structure from JSON.
type FlowDefinition struct {
	ID    string           `json:"id"`
	Nodes []NodeDefinition `json:"nodes"`
}

// NodeDefinition represents a node in the flow definition.
type NodeDefinition struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Adapter    *AdapterDefinition   `json:"adapter,omitempty"`
	Condition  *ConditionDefinition `json:"condition,omitempty"`
	Utility    string               `json:"utility,omitempty"`
	Properties map[string]string    `json:"properties,omitempty"`
	Next       []EdgeDefinition     `json:"next,omitempty"`
}

// EdgeDefinition represents an outgoing edge of a node. The label is only
// required on decision node edges.
type EdgeDefinition struct {
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// AdapterDefinition represents the adapter configuration for an adapter node.
type AdapterDefinition struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Direction     string            `json:"direction"`
	Configuration map[string]string `json:"configuration,omitempty"`
}

// ConditionDefinition represents the routing condition of a decision node.
type ConditionDefinition struct {
	Type      string `json:"type"`
	Key       string `json:"key,omitempty"`
	Value     string `json:"value,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}
