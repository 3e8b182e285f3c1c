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

package config

import "sync"

// H2HRuntime holds the runtime configuration for the H2H server.
type H2HRuntime struct {
	H2HHome string `yaml:"h2h_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *H2HRuntime
	once          sync.Once
)

// InitializeH2HRuntime initializes the H2HRuntime configuration.
func InitializeH2HRuntime(h2hHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &H2HRuntime{
			H2HHome: h2hHome,
			Config:  *config,
		}
	})

	return nil
}

// GetH2HRuntime returns the H2HRuntime configuration.
func GetH2HRuntime() *H2HRuntime {
	if runtimeConfig == nil {
		panic("H2HRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetH2HRuntime resets the H2HRuntime.
// This should only be used in tests to reset the singleton state.
func ResetH2HRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
