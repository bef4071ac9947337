// Package platform builds the identity platform environment and logs in through injected providers
package platform

import (
	"context"
)

// PropertySource is satisfied by *properties.Store
type PropertySource interface {
	Lookup(name string) (string, bool)
}

// Context is an opaque handle to an established platform context
type Context interface {
	Close() error
}

type ContextFactory interface {
	NewContext(env Environment) (Context, error)
}

// Subject is the authenticated identity returned by a login
type Subject interface {
	Principal() string
}

type Credentials struct {
	User     string
	Password string
}

type LoginProvider interface {
	Login(ctx context.Context, pc Context, creds Credentials) (Subject, error)
}

type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}
