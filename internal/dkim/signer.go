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

package dkim

import (
	"bytes"
	"context"
	"io"

	msgauth "github.com/emersion/go-msgauth/dkim"

	"github.com/lukasdietrich/mailpog/internal/log"
)

var signedHeaders = []string{
	"From",
	"To",
	"Subject",
	"Date",
	"Message-ID",
	"Reply-To",
	"MIME-Version",
	"Content-Type",
	"List-Unsubscribe",
}

// Signer adds DKIM signatures to outgoing messages.
type Signer struct {
	keys KeyResolver
}

func NewSigner(keys KeyResolver) *Signer {
	return &Signer{keys: keys}
}

// Sign computes the signature of message for selector and domain and returns the complete
// `DKIM-Signature` header field, including the trailing line break. Every failure is
// reported as a *SignError.
func (s *Signer) Sign(ctx context.Context, message []byte, selector, domain string) (string, error) {
	material, err := s.keys.Resolve(ctx, selector, domain)
	if err != nil {
		return "", newSignError(selector, domain, err)
	}

	key, err := parsePrivateKey(material)
	if err != nil {
		return "", newSignError(selector, domain, err)
	}

	signer, err := msgauth.NewSigner(&msgauth.SignOptions{
		Domain:                 domain,
		Selector:               selector,
		Signer:                 key,
		HeaderKeys:             signedHeaders,
		HeaderCanonicalization: msgauth.CanonicalizationRelaxed,
		BodyCanonicalization:   msgauth.CanonicalizationRelaxed,
	})
	if err != nil {
		return "", newSignError(selector, domain, err)
	}

	if _, err := io.Copy(signer, bytes.NewReader(message)); err != nil {
		signer.Close()
		return "", newSignError(selector, domain, err)
	}

	if err := signer.Close(); err != nil {
		return "", newSignError(selector, domain, err)
	}

	log.DebugContext(ctx).
		Str("selector", selector).
		Str("domain", domain).
		Msg("signed message")

	return signer.Signature(), nil
}

// SignMessage prepends the signature header to message.
func (s *Signer) SignMessage(ctx context.Context, message []byte, selector, domain string) ([]byte, error) {
	header, err := s.Sign(ctx, message, selector, domain)
	if err != nil {
		return nil, err
	}

	signed := make([]byte, 0, len(header)+len(message))
	signed = append(signed, header...)
	signed = append(signed, message...)

	return signed, nil
}
