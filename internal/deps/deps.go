// Package deps reports the availability of the external tools clipshelf
// drives: the distribution packager and the Everything search tool.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"clipshelf/internal/config"
	"clipshelf/internal/everything"
	"clipshelf/internal/fileutil"
)

// Requirement defines an external dependency clipshelf relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirements for the given configuration. The
// packager is required for dist builds; Everything is optional because
// exports still produce an EFU file without it.
func Default(cfg *config.Config) []Requirement {
	everythingPath, found := everything.Locate(cfg)
	everythingDetail := everythingPath
	if !found {
		everythingDetail = ""
	}
	return []Requirement{
		{
			Name:        "Packager",
			Command:     cfg.Dist.Packager,
			Description: "builds the standalone distribution binary",
		},
		{
			Name:        "Everything",
			Command:     everythingDetail,
			Description: "opens exported EFU file lists",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports
// availability. Commands containing a path separator are checked on disk;
// bare names are resolved on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if strings.ContainsAny(cmd, `/\`) {
			if !fileutil.FileExists(cmd) {
				status.Detail = fmt.Sprintf("file %q not found", cmd)
				results = append(results, status)
				continue
			}
		} else if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are not
// available.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
