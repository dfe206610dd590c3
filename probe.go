package lakegate

import (
	"context"
	"log/slog"
)

// ConnectivityProbe checks that the configured storage account is reachable
// with the ambient credential.
type ConnectivityProbe struct {
	factory StorageClientFactory
	account string
	logger  *slog.Logger
}

func NewConnectivityProbe(factory StorageClientFactory, account string, logger *slog.Logger) *ConnectivityProbe {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectivityProbe{
		factory: factory,
		account: account,
		logger:  logger,
	}
}

// Check builds a client and pings the account once. Failures are reported in
// the returned StorageHealth and never returned as errors. A missing account
// is a status, not a failure, and makes no storage calls.
func (p *ConnectivityProbe) Check(ctx context.Context) StorageHealth {
	if p.account == "" {
		return StorageHealth{
			Status:  StorageNotConfigured,
			Message: "Storage account name not found in configuration",
		}
	}

	client, err := p.factory.NewClient(ctx, p.account)
	if err != nil {
		p.logger.WarnContext(ctx, "data lake connectivity check failed", "account", p.account, "err", err)
		return StorageHealth{Status: StorageDisconnected, Error: err.Error()}
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			p.logger.WarnContext(ctx, "failed to close storage client", "account", p.account, "err", closeErr)
		}
	}()

	if err := client.Ping(ctx); err != nil {
		p.logger.WarnContext(ctx, "data lake connectivity check failed", "account", p.account, "err", err)
		return StorageHealth{Status: StorageDisconnected, Error: err.Error()}
	}

	p.logger.InfoContext(ctx, "data lake connectivity check successful", "account", p.account)
	return StorageHealth{Status: StorageConnected, StorageAccount: p.account}
}
