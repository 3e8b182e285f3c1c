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

// Package model defines the data structures and models used in the flow execution.
package model

import (
	"time"

	sysutils "github.com/fileforge/h2h/internal/system/utils"
)

// FileRecord represents a single file payload moving through a flow run.
type FileRecord struct {
	FileName    string            `json:"fileName"`
	FileContent []byte            `json:"fileContent"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the file record.
func (f FileRecord) Clone() FileRecord {
	content := make([]byte, len(f.FileContent))
	copy(content, f.FileContent)
	return FileRecord{
		FileName:    f.FileName,
		FileContent: content,
		Metadata:    sysutils.CloneStringMap(f.Metadata),
	}
}

// ExecutionContext is the mutable, run-scoped state shared by all steps in one
// flow run. Sender executors produce FilesToProcess; the next receiver executor
// consumes it. Values is an extension map for adapter-specific metadata.
// The context is owned exclusively by the flow execution engine and is never
// shared across concurrent runs.
type ExecutionContext struct {
	RunID          string
	FlowID         string
	StartedAt      time.Time
	FilesToProcess []FileRecord
	Values         map[string]string
}

// NewExecutionContext creates a new execution context for a flow run.
func NewExecutionContext(runID, flowID string) *ExecutionContext {
	return &ExecutionContext{
		RunID:          runID,
		FlowID:         flowID,
		StartedAt:      time.Now(),
		FilesToProcess: make([]FileRecord, 0),
		Values:         make(map[string]string),
	}
}

// Clone returns a deep copy of the execution context. Each parallel branch
// receives its own copy of the context at the fork point so that sibling
// branches never observe each other's writes.
func (c *ExecutionContext) Clone() *ExecutionContext {
	files := make([]FileRecord, len(c.FilesToProcess))
	for i, file := range c.FilesToProcess {
		files[i] = file.Clone()
	}
	return &ExecutionContext{
		RunID:          c.RunID,
		FlowID:         c.FlowID,
		StartedAt:      c.StartedAt,
		FilesToProcess: files,
		Values:         sysutils.CloneStringMap(c.Values),
	}
}

// SetFiles replaces the pending file batch.
func (c *ExecutionContext) SetFiles(files []FileRecord) {
	c.FilesToProcess = files
}

// AppendFiles appends files to the pending batch.
func (c *ExecutionContext) AppendFiles(files ...FileRecord) {
	c.FilesToProcess = append(c.FilesToProcess, files...)
}

// ContainsValue checks whether the extension map contains the given key.
func (c *ExecutionContext) ContainsValue(key string) bool {
	_, ok := c.Values[key]
	return ok
}
