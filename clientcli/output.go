package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Formatter formats results for output.
type Formatter interface {
	FormatUpload(w io.Writer, results []UploadResult) error
	FormatDownload(w io.Writer, result *DownloadResult) error
	FormatList(w io.Writer, result *ListResult) error
	FormatHealth(w io.Writer, result *HealthResult) error
	FormatStatus(w io.Writer, result *StatusResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.LocalPath, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Uploaded: %s/%s (%s)\n", r.Container, r.RemotePath, formatSize(r.Size))
		}
	}
	return nil
}

func (f *HumanFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Downloaded: %s/%s -> %s (%s)\n", result.Container, result.RemotePath, result.LocalPath, formatSize(result.Size))
	return nil
}

func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	if len(result.Files) == 0 {
		_, _ = fmt.Fprintf(w, "No files found in %s\n", result.Container)
		return nil
	}

	maxNameLen := 4 // "NAME"
	for i := range result.Files {
		if n := len(result.Files[i].Name); n > maxNameLen {
			maxNameLen = n
		}
	}
	maxNameLen = min(maxNameLen, 60)

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %s\n", maxNameLen, "NAME", "SIZE", "MODIFIED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", 10), strings.Repeat("-", 19))

	for i := range result.Files {
		file := &result.Files[i]
		name := file.Name
		size := formatSize(file.ContentLength)
		if file.IsDirectory {
			name += "/"
			size = "-"
		}
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s  %10s  %s\n", maxNameLen, name, size, file.LastModified.Format(time.DateTime))
	}

	_, _ = fmt.Fprintf(w, "\n%d entries (%s total)\n", result.Count, formatSize(result.TotalSize()))
	return nil
}

func (f *HumanFormatter) FormatHealth(w io.Writer, result *HealthResult) error {
	_, _ = fmt.Fprintf(w, "Status:      %s\n", result.Status)
	if result.Error != "" {
		_, _ = fmt.Fprintf(w, "Error:       %s\n", result.Error)
		return nil
	}
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Version:     %s\n", result.Version)
	_, _ = fmt.Fprintf(w, "Environment: %s\n", result.Environment)
	if dl := result.DataLake; dl != nil {
		_, _ = fmt.Fprintf(w, "Data lake:   %s", dl.Status)
		switch {
		case dl.StorageAccount != "":
			_, _ = fmt.Fprintf(w, " (%s)", dl.StorageAccount)
		case dl.Error != "":
			_, _ = fmt.Fprintf(w, " - %s", dl.Error)
		case dl.Message != "":
			_, _ = fmt.Fprintf(w, " - %s", dl.Message)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func (f *HumanFormatter) FormatStatus(w io.Writer, result *StatusResult) error {
	_, _ = fmt.Fprintf(w, "%s %s (%s): %s\n", result.Service, result.Version, result.Environment, result.Status)
	if f.Quiet {
		return nil
	}
	for _, ep := range result.Endpoints {
		_, _ = fmt.Fprintf(w, "  %s\n", ep)
	}
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen, maxEndpointLen := 4, 8 // "NAME", "ENDPOINT"
	for i := range profiles {
		maxNameLen = max(maxNameLen, len(profiles[i].Name))
		maxEndpointLen = max(maxEndpointLen, len(profiles[i].Endpoint))
	}
	maxNameLen = min(maxNameLen, 20)
	maxEndpointLen = min(maxEndpointLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "FUNCTION KEY")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxEndpointLen, truncate(p.Endpoint, maxEndpointLen),
			maskSecret(p.FunctionKey, showSecrets),
		)
	}
	return nil
}

func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:         %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprint(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint:     %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Function Key: %s\n", maskSecret(profile.FunctionKey, showSecrets))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	type jsonResult struct {
		UploadResult
		Error string `json:"error,omitempty"`
	}

	output := make([]jsonResult, len(results))
	for i := range results {
		output[i] = jsonResult{UploadResult: results[i]}
		if results[i].Err != nil {
			output[i].Error = results[i].Err.Error()
		}
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatHealth(w io.Writer, result *HealthResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatStatus(w io.Writer, result *StatusResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return writeJSON(w, struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	type jsonProfile struct {
		Name        string `json:"name"`
		Endpoint    string `json:"endpoint"`
		FunctionKey string `json:"function_key"`
		Default     bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{Profiles: make([]jsonProfile, len(profiles))}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:        p.Name,
			Endpoint:    p.Endpoint,
			FunctionKey: maskSecret(p.FunctionKey, showSecrets),
			Default:     p.Name == defaultName,
		}
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	return writeJSON(w, struct {
		Name        string `json:"name"`
		Endpoint    string `json:"endpoint"`
		FunctionKey string `json:"function_key"`
		Default     bool   `json:"default"`
	}{
		Name:        profile.Name,
		Endpoint:    profile.Endpoint,
		FunctionKey: maskSecret(profile.FunctionKey, showSecrets),
		Default:     isDefault,
	})
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// maskSecret shows only the first and last 4 characters of a secret unless
// showSecrets is set. Short secrets are fully masked.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
