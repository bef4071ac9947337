package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// DryRunFactory stands in for the vendor context factory and only records the environment
type DryRunFactory struct {
	Logger *log.Logger
}

type DryRunContext struct {
	Env    Environment
	closed bool
}

func (c *DryRunContext) Close() error {
	if c.closed {
		return errors.New("context already closed")
	}
	c.closed = true
	return nil
}

func (f DryRunFactory) NewContext(env Environment) (Context, error) {
	if env.URL == "" {
		return nil, errors.New("no application server url")
	}
	if f.Logger != nil {
		f.Logger.Printf("INFO: Dry run context for %s via %s", env.URL, env.ContextFactory)
	}
	return &DryRunContext{Env: env}, nil
}

type principal string

func (p principal) Principal() string {
	return string(p)
}

// DryRunLogin accepts any non-empty user and password
type DryRunLogin struct{}

func (DryRunLogin) Login(ctx context.Context, pc Context, creds Credentials) (Subject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, errors.New("no platform context")
	}
	if creds.User == "" || creds.Password == "" {
		return nil, fmt.Errorf("empty credentials for user %q", creds.User)
	}
	return principal(creds.User), nil
}

// PassthroughDecrypter returns the ciphertext unchanged
type PassthroughDecrypter struct{}

func (PassthroughDecrypter) Decrypt(ciphertext string) (string, error) {
	return ciphertext, nil
}
