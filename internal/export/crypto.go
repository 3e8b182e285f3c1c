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

// Package export provides envelope encryption for exported flow and package
// bundles. The envelope is a self-describing, authenticated container that
// only this application can open.
package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"time"
)

const (
	// EnvelopeVersion identifies the envelope wire format.
	EnvelopeVersion = "H2H_ENCRYPTED_PKG_V1"
	// EnvelopeAlgorithm identifies the encryption algorithm.
	EnvelopeAlgorithm = "AES-256-GCM"
	// EnvelopeApplication identifies the producing application.
	EnvelopeApplication = "H2H-Platform"
	// EnvelopeType identifies the payload type.
	EnvelopeType = "PACKAGE_EXPORT"

	keySize = 32
	ivSize  = 12
)

// Envelope is the encrypted export container. The JSON field names are the
// wire contract between export and import and must not change.
type Envelope struct {
	Version         string `json:"version"`
	Algorithm       string `json:"algorithm"`
	IV              string `json:"iv"`
	Data            string `json:"data"`
	EncryptedAt     string `json:"encryptedAt"`
	Application     string `json:"application"`
	Type            string `json:"type"`
	PackageNameHash string `json:"packageNameHash,omitempty"`
}

// Service encrypts and decrypts package export bundles under an injected
// application master key.
type Service struct {
	key []byte
}

// NewService creates an export crypto service with the given 32-byte key.
func NewService(key []byte) (*Service, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("export crypto key must be %d bytes, got %d", keySize, len(key))
	}
	return &Service{key: key}, nil
}

// GenerateRandomKey generates a random 32-byte key suitable for AES-256.
func GenerateRandomKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt serializes the bundle, encrypts it with AES-256-GCM under a fresh
// random IV, and assembles the envelope. When the bundle carries a name, a
// non-cryptographic hash of it is included as a cheap corruption check.
func (s *Service) Encrypt(plain map[string]any) (*Envelope, error) {
	plaintext, err := json.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize package bundle: %w", err)
	}

	aead, err := s.newAEAD()
	if err != nil {
		return nil, err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext := aead.Seal(nil, iv, plaintext, nil)

	envelope := &Envelope{
		Version:     EnvelopeVersion,
		Algorithm:   EnvelopeAlgorithm,
		IV:          base64.StdEncoding.EncodeToString(iv),
		Data:        base64.StdEncoding.EncodeToString(ciphertext),
		EncryptedAt: time.Now().UTC().Format(time.RFC3339),
		Application: EnvelopeApplication,
		Type:        EnvelopeType,
	}
	if name, ok := plain["name"].(string); ok && name != "" {
		envelope.PackageNameHash = hashPackageName(name)
	}
	return envelope, nil
}

// Decrypt validates the envelope identity fields, opens the ciphertext, and
// deserializes the bundle. Any mismatch or authentication failure is fatal;
// partial output is never produced.
func (s *Service) Decrypt(envelope *Envelope) (map[string]any, error) {
	if envelope == nil {
		return nil, fmt.Errorf("envelope is nil")
	}
	if envelope.Version != EnvelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %q, expected %q",
			envelope.Version, EnvelopeVersion)
	}
	if envelope.Algorithm != EnvelopeAlgorithm {
		return nil, fmt.Errorf("unsupported envelope algorithm %q, expected %q",
			envelope.Algorithm, EnvelopeAlgorithm)
	}
	if envelope.Application != EnvelopeApplication {
		return nil, fmt.Errorf("envelope was not produced by this application: %q",
			envelope.Application)
	}

	iv, err := base64.StdEncoding.DecodeString(envelope.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode IV: %w", err)
	}
	if len(iv) != ivSize {
		return nil, fmt.Errorf("IV must be %d bytes, got %d", ivSize, len(iv))
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aead, err := s.newAEAD()
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt package bundle: %w", err)
	}

	var plain map[string]any
	if err := json.Unmarshal(plaintext, &plain); err != nil {
		return nil, fmt.Errorf("failed to deserialize package bundle: %w", err)
	}

	// GCM already authenticates the ciphertext; the name hash is an
	// additional application-level guard on the decrypted content.
	if envelope.PackageNameHash != "" {
		name, _ := plain["name"].(string)
		if hashPackageName(name) != envelope.PackageNameHash {
			return nil, fmt.Errorf("package name hash mismatch, bundle may be tampered")
		}
	}
	return plain, nil
}

// IsEncryptedPackageExport checks whether the map carries the four identifying
// fields of an encrypted package export. It is a pure predicate used to branch
// between plaintext and encrypted import paths.
func IsEncryptedPackageExport(m map[string]any) bool {
	if m == nil {
		return false
	}
	version, _ := m["version"].(string)
	algorithm, _ := m["algorithm"].(string)
	application, _ := m["application"].(string)
	exportType, _ := m["type"].(string)
	return version == EnvelopeVersion &&
		algorithm == EnvelopeAlgorithm &&
		application == EnvelopeApplication &&
		exportType == EnvelopeType
}

// newAEAD builds the AES-256-GCM primitive for the service key.
func (s *Service) newAEAD() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

// hashPackageName computes the non-cryptographic FNV-1a hash of the package name.
func hashPackageName(name string) string {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(name))
	return fmt.Sprintf("%08x", hasher.Sum32())
}
