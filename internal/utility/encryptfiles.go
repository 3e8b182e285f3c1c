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

package utility

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	flowconst "github.com/fileforge/h2h/internal/flow/constants"
	flowmodel "github.com/fileforge/h2h/internal/flow/model"
	"github.com/fileforge/h2h/internal/system/error/serviceerror"
)

// EncryptFilesName is the utility name used by flow definitions.
const EncryptFilesName = "encrypt-files"

// EncryptFilesExecutor encrypts every pending file in place with AES-256-GCM.
// The nonce is prepended to the ciphertext and the file name gains an .enc
// suffix.
type EncryptFilesExecutor struct {
	aead cipher.AEAD
}

var _ flowmodel.UtilityExecutor = (*EncryptFilesExecutor)(nil)

// NewEncryptFilesExecutor creates the executor for the given 32-byte key.
func NewEncryptFilesExecutor(key []byte) (*EncryptFilesExecutor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &EncryptFilesExecutor{aead: aead}, nil
}

// Name returns the utility name.
func (e *EncryptFilesExecutor) Name() string {
	return EncryptFilesName
}

// Execute replaces every pending file with its encrypted form.
func (e *EncryptFilesExecutor) Execute(ctx context.Context, _ map[string]string,
	execCtx *flowmodel.ExecutionContext,
	step *flowmodel.FlowExecutionStep) (*flowmodel.ExecutionResult, *serviceerror.ServiceError) {
	result := &flowmodel.ExecutionResult{}
	encrypted := make([]flowmodel.FileRecord, 0, len(execCtx.FilesToProcess))

	for _, file := range execCtx.FilesToProcess {
		if ctx.Err() != nil {
			return nil, flowconst.ErrorRunCancelled.WithDescription(ctx.Err().Error())
		}

		nonce := make([]byte, e.aead.NonceSize())
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			outcome := flowmodel.FileOutcome{
				FileName: file.FileName,
				Outcome:  flowconst.FileOutcomeFailed,
				Detail:   "failed to generate nonce: " + err.Error(),
			}
			result.AddOutcome(outcome)
			step.AddFileOutcome(outcome)
			continue
		}

		sealed := e.aead.Seal(nonce, nonce, file.FileContent, nil)
		encrypted = append(encrypted, flowmodel.FileRecord{
			FileName:    file.FileName + ".enc",
			FileContent: sealed,
			Metadata:    file.Metadata,
		})

		outcome := flowmodel.FileOutcome{
			FileName: file.FileName,
			Outcome:  flowconst.FileOutcomeSuccess,
			Bytes:    int64(len(sealed)),
		}
		result.AddOutcome(outcome)
		step.AddFileOutcome(outcome)
	}

	execCtx.SetFiles(encrypted)
	return result, nil
}
