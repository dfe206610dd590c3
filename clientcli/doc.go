// Package clientcli provides a client library for the lakegate HTTP API.
//
// It supports upload, list and download against the raw, processed and
// curated containers, plus the health and status endpoints. Requests carry a
// function key in the x-functions-key header when one is configured.
//
// # Basic Usage
//
//	client, err := clientcli.New(&clientcli.Config{
//		Endpoint:    "https://lake.example.com",
//		FunctionKey: "your-function-key",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := client.Upload(ctx, clientcli.UploadOptions{
//		Container:  "raw",
//		LocalPath:  "./report.csv",
//		RemotePath: "incoming/report.csv",
//	})
//
// # Profile Configuration
//
// Profiles in ~/.lakegate/config.yaml hold settings for several gateways:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	profile, err := configFile.GetProfile("production")
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// Server errors are returned as *APIError and match the ErrNotFound,
// ErrBadRequest, ErrUnauthorized and ErrTooLarge sentinels with errors.Is.
package clientcli
