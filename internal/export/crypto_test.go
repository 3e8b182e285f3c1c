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

package export

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ExportCryptoTestSuite struct {
	suite.Suite
	service *Service
	bundle  map[string]any
}

func TestExportCryptoTestSuite(t *testing.T) {
	suite.Run(t, new(ExportCryptoTestSuite))
}

func (suite *ExportCryptoTestSuite) SetupTest() {
	key, err := GenerateRandomKey()
	suite.Require().NoError(err)
	suite.service, err = NewService(key)
	suite.Require().NoError(err)

	suite.bundle = map[string]any{
		"name":  "partner-onboarding",
		"files": []any{"flow.json", "keys.pem"},
	}
}

func (suite *ExportCryptoTestSuite) TestNewServiceRejectsWrongKeySize() {
	for _, size := range []int{0, 16, 31, 33} {
		service, err := NewService(make([]byte, size))
		suite.Nil(service)
		suite.Error(err)
	}
}

func (suite *ExportCryptoTestSuite) TestEncryptDecryptRoundTrip() {
	envelope, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)

	suite.Equal(EnvelopeVersion, envelope.Version)
	suite.Equal(EnvelopeAlgorithm, envelope.Algorithm)
	suite.Equal(EnvelopeApplication, envelope.Application)
	suite.Equal(EnvelopeType, envelope.Type)
	suite.NotEmpty(envelope.EncryptedAt)
	suite.NotEmpty(envelope.PackageNameHash)

	iv, err := base64.StdEncoding.DecodeString(envelope.IV)
	suite.Require().NoError(err)
	suite.Len(iv, 12)

	plain, err := suite.service.Decrypt(envelope)
	suite.Require().NoError(err)
	suite.Equal("partner-onboarding", plain["name"])
	suite.Len(plain["files"], 2)
}

func (suite *ExportCryptoTestSuite) TestEncryptUsesFreshIV() {
	first, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)
	second, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)

	suite.NotEqual(first.IV, second.IV)
	suite.NotEqual(first.Data, second.Data)
}

func (suite *ExportCryptoTestSuite) TestDecryptRejectsTamperedCiphertext() {
	envelope, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Data)
	suite.Require().NoError(err)
	ciphertext[0] ^= 0x01
	envelope.Data = base64.StdEncoding.EncodeToString(ciphertext)

	plain, err := suite.service.Decrypt(envelope)
	suite.Nil(plain)
	suite.Error(err)
}

func (suite *ExportCryptoTestSuite) TestDecryptRejectsWrongKey() {
	envelope, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)

	otherKey, err := GenerateRandomKey()
	suite.Require().NoError(err)
	other, err := NewService(otherKey)
	suite.Require().NoError(err)

	plain, err := other.Decrypt(envelope)
	suite.Nil(plain)
	suite.Error(err)
}

func (suite *ExportCryptoTestSuite) TestDecryptValidatesIdentityFields() {
	cases := []struct {
		name   string
		mutate func(envelope *Envelope)
	}{
		{"WrongVersion", func(e *Envelope) { e.Version = "H2H_ENCRYPTED_PKG_V2" }},
		{"WrongAlgorithm", func(e *Envelope) { e.Algorithm = "AES-128-CBC" }},
		{"WrongApplication", func(e *Envelope) { e.Application = "Other-Platform" }},
		{"ShortIV", func(e *Envelope) { e.IV = base64.StdEncoding.EncodeToString(make([]byte, 8)) }},
		{"BadIVEncoding", func(e *Envelope) { e.IV = "not base64!" }},
		{"BadDataEncoding", func(e *Envelope) { e.Data = "not base64!" }},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			envelope, err := suite.service.Encrypt(suite.bundle)
			suite.Require().NoError(err)
			tc.mutate(envelope)

			plain, err := suite.service.Decrypt(envelope)
			suite.Nil(plain)
			suite.Error(err)
		})
	}
}

func (suite *ExportCryptoTestSuite) TestDecryptNilEnvelope() {
	plain, err := suite.service.Decrypt(nil)
	suite.Nil(plain)
	suite.Error(err)
}

func (suite *ExportCryptoTestSuite) TestDecryptRejectsNameHashMismatch() {
	envelope, err := suite.service.Encrypt(suite.bundle)
	suite.Require().NoError(err)
	envelope.PackageNameHash = "deadbeef"

	plain, err := suite.service.Decrypt(envelope)
	suite.Nil(plain)
	suite.Error(err)
}

func (suite *ExportCryptoTestSuite) TestIsEncryptedPackageExport() {
	suite.True(IsEncryptedPackageExport(map[string]any{
		"version":     EnvelopeVersion,
		"algorithm":   EnvelopeAlgorithm,
		"application": EnvelopeApplication,
		"type":        EnvelopeType,
	}))

	suite.False(IsEncryptedPackageExport(nil))
	suite.False(IsEncryptedPackageExport(map[string]any{}))
	suite.False(IsEncryptedPackageExport(map[string]any{
		"version":     EnvelopeVersion,
		"algorithm":   EnvelopeAlgorithm,
		"application": "Other-Platform",
		"type":        EnvelopeType,
	}))
	suite.False(IsEncryptedPackageExport(map[string]any{
		"version":     1,
		"algorithm":   EnvelopeAlgorithm,
		"application": EnvelopeApplication,
		"type":        EnvelopeType,
	}))
}
