// Package azure provides the Azure Data Lake Storage Gen2 backend for
// lakegate. Clients authenticate with DefaultAzureCredential, so no static
// secret is ever configured.
package azure

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/service"
	"github.com/sagarc03/lakegate"
)

// DefaultEndpointSuffix is the public cloud Data Lake endpoint suffix.
const DefaultEndpointSuffix = "dfs.core.windows.net"

var accountPattern = regexp.MustCompile(`^[a-z0-9]{3,24}$`)

// Config configures the Azure factory.
type Config struct {
	// EndpointSuffix is appended to the account name to form the service host
	// (default: dfs.core.windows.net).
	EndpointSuffix string
	// Endpoint, when set, replaces the per-account host with a path-style base
	// URL such as an emulator's. The account name is appended as the first
	// path segment.
	Endpoint string
	// Credential overrides the ambient DefaultAzureCredential.
	Credential azcore.TokenCredential
	// ClientOptions are passed to every service client.
	ClientOptions *service.ClientOptions
}

// Factory builds Data Lake service clients. The credential is created once
// on first use and shared by every client.
type Factory struct {
	cfg Config

	credOnce sync.Once
	cred     azcore.TokenCredential
	credErr  error
}

var _ lakegate.StorageClientFactory = (*Factory)(nil)

func NewFactory(cfg Config) *Factory {
	if cfg.EndpointSuffix == "" {
		cfg.EndpointSuffix = DefaultEndpointSuffix
	}
	f := &Factory{cfg: cfg}
	if cfg.Credential != nil {
		f.credOnce.Do(func() { f.cred = cfg.Credential })
	}
	return f
}

// ServiceURL returns the service endpoint for account.
func (f *Factory) ServiceURL(account string) string {
	if f.cfg.Endpoint != "" {
		return strings.TrimRight(f.cfg.Endpoint, "/") + "/" + url.PathEscape(account)
	}
	return fmt.Sprintf("https://%s.%s", account, f.cfg.EndpointSuffix)
}

// NewClient returns a client bound to the account's service endpoint. Token
// acquisition happens lazily on the first storage call.
func (f *Factory) NewClient(_ context.Context, account string) (lakegate.StorageClient, error) {
	if !accountPattern.MatchString(account) {
		return nil, fmt.Errorf("invalid storage account name %q", account)
	}

	cred, err := f.credential()
	if err != nil {
		return nil, err
	}

	svc, err := service.NewClient(f.ServiceURL(account), cred, f.cfg.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("create data lake service client: %w", err)
	}

	return &Client{account: account, svc: svc}, nil
}

func (f *Factory) credential() (azcore.TokenCredential, error) {
	f.credOnce.Do(func() {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			f.credErr = fmt.Errorf("create default azure credential: %w", err)
			return
		}
		f.cred = cred
	})
	return f.cred, f.credErr
}
