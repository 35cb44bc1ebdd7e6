// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import "github.com/pion/gcmp/pkg/crypto/aead"

// Register installs the gcmp template in r so that names such as
// "gcmp(gcm(aes))" can be allocated. opts apply to every instance.
func Register(r *aead.Registry, opts ...Option) error {
	return r.RegisterTemplate(TemplateName, func(inner aead.Engine) (aead.Engine, error) {
		return NewSession(inner, opts...)
	})
}

// Unregister removes the gcmp template from r.
func Unregister(r *aead.Registry) {
	r.UnregisterTemplate(TemplateName)
}
