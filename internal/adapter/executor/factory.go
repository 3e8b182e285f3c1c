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

// Package executor provides the factory resolving adapter executors by type
// and direction.
package executor

import (
	"fmt"
	"sort"

	"github.com/fileforge/h2h/internal/adapter/constants"
	"github.com/fileforge/h2h/internal/adapter/emailreceiver"
	"github.com/fileforge/h2h/internal/adapter/filereceiver"
	"github.com/fileforge/h2h/internal/adapter/filesender"
	"github.com/fileforge/h2h/internal/adapter/sftpbase"
	"github.com/fileforge/h2h/internal/adapter/sftpreceiver"
	"github.com/fileforge/h2h/internal/adapter/sftpsender"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/notification/mail"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
	"github.com/fileforge/h2h/internal/transport/sftp"
)

// FactoryInterface resolves adapter executors and answers capability queries.
type FactoryInterface interface {
	CreateExecutor(adapterType constants.AdapterType,
		direction constants.Direction) (flowmodel.AdapterExecutor, *serviceerror.ServiceError)
	IsSupported(adapterType constants.AdapterType, direction constants.Direction) bool
	SupportedTypes() []constants.AdapterType
	SupportedDirections(adapterType constants.AdapterType) []constants.Direction
}

// Dependencies carries the collaborators the executors are built with.
type Dependencies struct {
	Pool       *sftp.ConnectionPool
	Dialer     sftp.Dialer
	Keys       sftpbase.KeyProvider
	MailSender mail.Sender
}

// combination is the resolution table key.
type combination struct {
	adapterType constants.AdapterType
	direction   constants.Direction
}

// Factory is a pure mapping from (type, direction) to an executor. The table
// is built once at construction and never mutated; the factory is injected
// into the flow execution engine rather than resolved through global state.
type Factory struct {
	table map[combination]flowmodel.AdapterExecutor
}

var _ FactoryInterface = (*Factory)(nil)

// NewFactory creates a factory with all five executor variants wired. There is
// deliberately no EMAIL sender variant.
func NewFactory(deps Dependencies) *Factory {
	return &Factory{
		table: map[combination]flowmodel.AdapterExecutor{
			{constants.AdapterTypeFile, constants.DirectionSender}:   filesender.NewFileSenderExecutor(),
			{constants.AdapterTypeFile, constants.DirectionReceiver}: filereceiver.NewFileReceiverExecutor(),
			{constants.AdapterTypeSftp, constants.DirectionSender}: sftpsender.NewSftpSenderExecutor(
				deps.Pool, deps.Dialer, deps.Keys),
			{constants.AdapterTypeSftp, constants.DirectionReceiver}: sftpreceiver.NewSftpReceiverExecutor(
				deps.Pool, deps.Dialer, deps.Keys),
			{constants.AdapterTypeEmail, constants.DirectionReceiver}: emailreceiver.NewEmailReceiverExecutor(
				deps.MailSender),
		},
	}
}

// CreateExecutor resolves the executor for the adapter type and direction.
func (f *Factory) CreateExecutor(adapterType constants.AdapterType,
	direction constants.Direction) (flowmodel.AdapterExecutor, *serviceerror.ServiceError) {
	executor, ok := f.table[combination{adapterType, direction}]
	if !ok {
		return nil, constants.ErrorUnsupportedAdapterCombination.WithDescription(
			fmt.Sprintf("no executor for adapter type %s with direction %s",
				adapterType, direction))
	}
	return executor, nil
}

// IsSupported checks whether an executor exists for the combination.
func (f *Factory) IsSupported(adapterType constants.AdapterType,
	direction constants.Direction) bool {
	_, ok := f.table[combination{adapterType, direction}]
	return ok
}

// SupportedTypes returns the adapter types with at least one executor.
func (f *Factory) SupportedTypes() []constants.AdapterType {
	seen := make(map[constants.AdapterType]bool)
	types := make([]constants.AdapterType, 0)
	for key := range f.table {
		if !seen[key.adapterType] {
			seen[key.adapterType] = true
			types = append(types, key.adapterType)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// SupportedDirections returns the directions supported for the adapter type.
func (f *Factory) SupportedDirections(
	adapterType constants.AdapterType) []constants.Direction {
	directions := make([]constants.Direction, 0, 2)
	for key := range f.table {
		if key.adapterType == adapterType {
			directions = append(directions, key.direction)
		}
	}
	sort.Slice(directions, func(i, j int) bool { return directions[i] < directions[j] })
	return directions
}
