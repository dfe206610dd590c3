// Package lakegate provides a small gateway for file access to a tiered data
// lake (raw, processed and curated zones) without handing storage credentials
// to clients.
//
// Lakegate validates the requested container against a fixed allowlist,
// builds a storage client from ambient platform credentials, performs a single
// remote call and maps the outcome to a typed result or an *OpError.
//
// # Key Components
//
//   - Gateway: Upload, List and Download over a StorageClientFactory
//   - StorageClientFactory / StorageClient: capability interface over the
//     storage SDK (Azure Data Lake Gen2, Google Cloud Storage, local filesystem)
//   - ConnectivityProbe: cheap metadata round trip used by health checks
//   - HealthChecker: builds the health report served at /health
//
// # Error Kinds
//
// Every failed operation returns an *OpError whose Kind is one of
// ErrConfiguration, ErrInvalidContainer, ErrInvalidInput, ErrNotFound,
// ErrAuthentication or ErrBackend. Configuration and container checks run
// before any storage call.
//
// # Example Usage
//
//	factory := azure.NewFactory(azure.Config{})
//	gw := lakegate.NewGateway(factory, lakegate.GatewayConfig{Account: "mylake"})
//
//	receipt, err := gw.Upload(ctx, "raw", "incoming/report.csv", body)
//	listing, err := gw.List(ctx, "raw")
//	file, err := gw.Download(ctx, "raw", "incoming/report.csv")
//
// See the http package for the REST surface and the azure, gcs and filesystem
// packages for storage backends.
package lakegate
