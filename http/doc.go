// Package http provides the HTTP surface of the lakegate data lake gateway.
//
// # Routes
//
//	POST /datalake/upload/{container}/{fileName}    upload the request body as text
//	GET  /datalake/list/{container}                 list every path in the container
//	GET  /datalake/download/{container}/{fileName}  download a file as text
//	GET  /health                                    health report with storage status
//	GET  /status                                    service description
//	GET  /metrics                                   Prometheus metrics (optional)
//
// File names may contain slashes. Responses are JSON with PascalCase keys and
// every failure uses the envelope {"Error": "<message>"}.
//
// # Status Codes
//
// HandleError maps gateway error kinds to status codes: configuration,
// container and input errors are 400, a missing file is 404, an oversized
// upload is 413 and every storage failure is 500 with the backend message.
// A failed health check is 503.
//
// # Function Keys
//
// When a KeyStore with at least one key is configured, every route except the
// metrics endpoint requires a key in the x-functions-key header or the code
// query parameter:
//
//	store, _ := keybackend.NewKeyStore(cfg.Auth.Keys)
//	handler := http.NewHandler(&http.HandlerConfig{Keys: store}, gateway, health)
//	srv := &stdhttp.Server{Addr: ":8080", Handler: handler.Router()}
package http
