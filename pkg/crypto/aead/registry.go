// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pion/logging"
)

// MaxAlgNameLen bounds algorithm and driver names, including those built by
// templates.
const MaxAlgNameLen = 128

// Factory creates a fresh, unkeyed engine.
type Factory func() (Engine, error)

// Template wraps an inner engine. On success the returned engine owns inner;
// on error the caller closes inner.
type Template func(inner Engine) (Engine, error)

// Registry maps algorithm names to factories and template names to templates.
// A Registry is injected where needed; there is no process-wide instance.
type Registry struct {
	lock      sync.RWMutex
	factories map[string]Factory
	templates map[string]Template

	log logging.LeveledLogger
}

// NewRegistry creates a Registry holding the built-in engines and the cryptd
// template.
func NewRegistry(loggerFactory logging.LoggerFactory) *Registry {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	r := &Registry{
		factories: map[string]Factory{
			GCMAESName:           func() (Engine, error) { return NewGCMAES(), nil },
			ChaCha20Poly1305Name: func() (Engine, error) { return NewChaCha20Poly1305(), nil },
		},
		templates: map[string]Template{},
		log:       loggerFactory.NewLogger("aead"),
	}
	r.templates[AsyncTemplateName] = func(inner Engine) (Engine, error) {
		return NewAsync(inner, 0, loggerFactory), nil
	}

	return r
}

// Register adds an algorithm factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if err := checkName(name); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.factories[name] = f

	return nil
}

// RegisterTemplate adds a template under name. Instances are addressed as
// "name(inner)".
func (r *Registry) RegisterTemplate(name string, t Template) error {
	if err := checkName(name); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.templates[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.templates[name] = t
	r.log.Debugf("registered template %s", name)

	return nil
}

// Unregister removes an algorithm factory.
func (r *Registry) Unregister(name string) {
	r.lock.Lock()
	delete(r.factories, name)
	r.lock.Unlock()
}

// UnregisterTemplate removes a template.
func (r *Registry) UnregisterTemplate(name string) {
	r.lock.Lock()
	delete(r.templates, name)
	r.lock.Unlock()
}

// Alloc instantiates the named algorithm. Registered algorithm names are
// matched first; otherwise the name is parsed as "template(inner)" and
// resolved recursively.
func (r *Registry) Alloc(name string) (Engine, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	r.lock.RLock()
	factory, ok := r.factories[name]
	r.lock.RUnlock()
	if ok {
		return factory()
	}

	tmplName, innerName, ok := splitTemplate(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}

	r.lock.RLock()
	tmpl, ok := r.templates[tmplName]
	r.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}

	inner, err := r.Alloc(innerName)
	if err != nil {
		return nil, err
	}

	engine, err := tmpl(inner)
	if err != nil {
		_ = inner.Close()

		return nil, err
	}

	if len(engine.Name()) > MaxAlgNameLen || len(engine.DriverName()) > MaxAlgNameLen {
		_ = engine.Close()

		return nil, fmt.Errorf("%w: %s", ErrNameTooLong, name)
	}

	r.log.Debugf("allocated %s (%s)", engine.Name(), engine.DriverName())

	return engine, nil
}

func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrUnknownAlgorithm)
	case len(name) > MaxAlgNameLen:
		return ErrNameTooLong
	}

	return nil
}

// splitTemplate splits "tmpl(inner)" into its parts.
func splitTemplate(name string) (tmpl, inner string, ok bool) {
	i := strings.IndexByte(name, '(')
	if i <= 0 || !strings.HasSuffix(name, ")") {
		return "", "", false
	}

	inner = name[i+1 : len(name)-1]
	if inner == "" {
		return "", "", false
	}

	return name[:i], inner, true
}
