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

// Package mail provides the outbound mail service used by the email adapter.
package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Attachment is a single file attached to an outbound message.
type Attachment struct {
	Name    string
	Content []byte
}

// Message is an outbound mail message.
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// ServerConfig holds the SMTP server connection details.
type ServerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Sender submits messages to an SMTP server.
type Sender interface {
	Send(ctx context.Context, server ServerConfig, msg Message) error
}

// SMTPSender is the production Sender submitting through SMTP.
type SMTPSender struct{}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender() *SMTPSender {
	return &SMTPSender{}
}

// Send builds and submits one message with all attachments.
func (s *SMTPSender) Send(ctx context.Context, server ServerConfig, msg Message) error {
	message := gomail.NewMsg()
	if err := message.From(msg.From); err != nil {
		return fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("invalid to address %q: %w", msg.To, err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.Body)
	for _, attachment := range msg.Attachments {
		if err := message.AttachReader(attachment.Name,
			bytes.NewReader(attachment.Content)); err != nil {
			return fmt.Errorf("failed to attach %q: %w", attachment.Name, err)
		}
	}

	options := []gomail.Option{
		gomail.WithPort(server.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if server.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(server.Username),
			gomail.WithPassword(server.Password))
	}

	client, err := gomail.NewClient(server.Host, options...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client for %s: %w", server.Host, err)
	}
	return client.DialAndSendWithContext(ctx, message)
}
