// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package message

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/osteele/liquid"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
)

func init() {
	viper.SetDefault("message.template", "template.html")
	viper.SetDefault("message.subject", "Automação de chats")
}

// ErrMissingTemplate is returned when no template file is configured.
var ErrMissingTemplate = errors.New("message: missing template")

type Options struct {
	Template string
	Subject  string
}

// OptionsFromViper reads the message options.
//
// `message.template` is the liquid template file of the html body.
// `message.subject` is the subject line of every message.
func OptionsFromViper() Options {
	return Options{
		Template: viper.GetString("message.template"),
		Subject:  viper.GetString("message.subject"),
	}
}

// Composer renders the message body and writes complete messages, ready to be signed.
type Composer struct {
	template *liquid.Template
	subject  string
	now      func() time.Time
}

// NewComposer reads and parses the body template.
func NewComposer(fs afero.Fs, opts Options) (*Composer, error) {
	if opts.Template == "" {
		return nil, ErrMissingTemplate
	}

	source, err := afero.ReadFile(fs, opts.Template)
	if err != nil {
		return nil, fmt.Errorf("message: read template: %w", err)
	}

	template, parseErr := liquid.NewEngine().ParseTemplate(source)
	if parseErr != nil {
		return nil, fmt.Errorf("message: parse template %s: %w", opts.Template, parseErr)
	}

	log.Info().
		Str("template", opts.Template).
		Str("subject", opts.Subject).
		Msg("loaded message template")

	return &Composer{
		template: template,
		subject:  opts.Subject,
		now:      time.Now,
	}, nil
}

// Compose writes the message from account to recipient in wire format.
func (c *Composer) Compose(account *accounts.Account, recipient models.Address) ([]byte, error) {
	body, renderErr := c.template.RenderString(liquid.Bindings{
		"recipient": recipient.String(),
		"account": map[string]interface{}{
			"address": account.Address.String(),
			"name":    account.Name,
		},
		"unsubscribe": account.Unsubscribe,
	})
	if renderErr != nil {
		return nil, fmt.Errorf("message: render: %w", renderErr)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", account.Address.String(), account.Name)
	m.SetHeader("To", recipient.String())
	m.SetHeader("Subject", c.subject)
	m.SetHeader("Reply-To", account.ReplyTo.String())
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New(), account.Address.Domain()))
	m.SetDateHeader("Date", c.now())

	if account.Unsubscribe != "" {
		m.SetHeader("List-Unsubscribe", fmt.Sprintf("<%s>", account.Unsubscribe))
		body += fmt.Sprintf("<br><br><a href='%s'>Cancel</a>", html.EscapeString(account.Unsubscribe))
	}

	m.SetBody("text/html", body)

	var buf bytes.Buffer

	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("message: write: %w", err)
	}

	return buf.Bytes(), nil
}
