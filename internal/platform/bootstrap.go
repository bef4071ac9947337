package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

var (
	ErrMissingProperty = errors.New("missing property")
	ErrDecrypt         = errors.New("failed to decrypt credentials")
	ErrLogin           = errors.New("login failed")
)

const defaultDecryptCacheSize = 16

// TrustStoreSettings are only populated when the application server password is encrypted
type TrustStoreSettings struct {
	Path      string
	Password  string
	Type      string
	ConfigURL string
}

// Environment is what the context factory needs to reach the application server
type Environment struct {
	ContextFactory string
	URL            string
	Principal      string
	Credentials    string
	TrustStore     *TrustStoreSettings
}

type Options struct {
	Properties PropertySource
	Factory    ContextFactory
	Login      LoginProvider
	Decrypter  Decrypter
	CacheSize  int
	Logger     *log.Logger
	Verbose    bool
}

type Bootstrapper struct {
	props     PropertySource
	factory   ContextFactory
	login     LoginProvider
	decrypter Decrypter
	decrypted *lru.Cache
	logger    *log.Logger
	verbose   bool
}

func NewBootstrapper(o Options) (*Bootstrapper, error) {
	if o.Properties == nil {
		return nil, errors.New("properties are required")
	}
	if o.Factory == nil || o.Login == nil {
		return nil, errors.New("context factory and login provider are required")
	}
	if o.Decrypter == nil {
		o.Decrypter = PassthroughDecrypter{}
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultDecryptCacheSize
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}

	cache, err := lru.New(o.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decrypt cache: %w", err)
	}

	return &Bootstrapper{
		props:     o.Properties,
		factory:   o.Factory,
		login:     o.Login,
		decrypter: o.Decrypter,
		decrypted: cache,
		logger:    o.Logger,
		verbose:   o.Verbose,
	}, nil
}

func (b *Bootstrapper) require(name string) (string, error) {
	v, ok := b.props.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingProperty, name)
	}
	return v, nil
}

func (b *Bootstrapper) decrypt(ciphertext string) (string, error) {
	if cached, found := b.decrypted.Get(ciphertext); found {
		return cached.(string), nil
	}
	plain, err := b.decrypter.Decrypt(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	b.decrypted.Add(ciphertext, plain)
	return plain, nil
}

// Environment resolves the application server connection settings, decrypting the
// password and filling trust store defaults when enrole.password.appServer.encrypted is true
func (b *Bootstrapper) Environment() (Environment, error) {
	var env Environment
	var err error

	if env.ContextFactory, err = b.require(propContextFactory); err != nil {
		return Environment{}, err
	}
	if env.URL, err = b.require(propServerURL); err != nil {
		return Environment{}, err
	}
	if env.Principal, err = b.require(propEJBUser); err != nil {
		return Environment{}, err
	}
	if env.Credentials, err = b.require(propEJBPassword); err != nil {
		return Environment{}, err
	}

	encrypted, _ := b.props.Lookup(propEncrypted)
	if !strings.EqualFold(encrypted, "true") {
		return env, nil
	}

	if env.Credentials, err = b.decrypt(env.Credentials); err != nil {
		return Environment{}, err
	}
	env.TrustStore = b.trustStore()
	return env, nil
}

func (b *Bootstrapper) trustStore() *TrustStoreSettings {
	home, _ := b.props.Lookup(ItimHome)
	keystore, _ := b.props.Lookup(propKeystore)
	keystorePass, _ := b.props.Lookup(propKeystorePass)

	return &TrustStoreSettings{
		Path:      b.orDefault(TrustStore, home+keystoreDir+keystore),
		Password:  b.orDefault(TrustStorePassword, keystorePass),
		Type:      b.orDefault(TrustStoreType, defaultTrustStoreType),
		ConfigURL: b.orDefault(SSLConfigURL, "file:"+home+sslClientProps),
	}
}

// orDefault keeps an explicitly configured value
func (b *Bootstrapper) orDefault(name string, fallback string) string {
	if v, ok := b.props.Lookup(name); ok {
		return v
	}
	return fallback
}

func (b *Bootstrapper) PlatformContext() (Context, error) {
	env, err := b.Environment()
	if err != nil {
		return nil, err
	}

	b.print("INFO: Creating new platform context for %s", env.URL)
	pc, err := b.factory.NewContext(env)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform context: %w", err)
	}
	return pc, nil
}

// Subject logs in as itim.user against the given platform context
func (b *Bootstrapper) Subject(ctx context.Context, pc Context) (Subject, error) {
	user, err := b.require(propItimUser)
	if err != nil {
		return nil, err
	}
	password, err := b.require(propItimPassword)
	if err != nil {
		return nil, err
	}

	b.print("INFO: Logging in as %s (%s)", user, LoginContextName)
	subject, err := b.login.Login(ctx, pc, Credentials{User: user, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	b.print("INFO: Getting subject")
	return subject, nil
}

func (b *Bootstrapper) print(format string, v ...any) {
	if b.verbose {
		b.logger.Printf(format, v...)
	}
}
