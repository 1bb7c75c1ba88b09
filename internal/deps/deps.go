package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"pwtune/internal/config"
)

// Requirement defines an external dependency pwtune relies on.
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
	// Resolved is the absolute location found for the dependency.
	Resolved string
	Detail   string
}

// Requirements lists the external tools the configuration depends on.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "pw-config",
			Command:     cfg.PWConfig.Binary,
			Description: "dumps live and packaged PipeWire configuration",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
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
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Resolved = resolved
		results = append(results, status)
	}
	return results
}

// CheckTemplates reports whether the packaged template for file exists under dir.
func CheckTemplates(dir, file string) Status {
	path := filepath.Join(dir, file)
	status := Status{
		Name:        "templates",
		Command:     path,
		Description: "packaged configuration template queried for defaults",
	}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		status.Detail = fmt.Sprintf("template %q not readable: %v", path, err)
	case info.IsDir():
		status.Detail = fmt.Sprintf("template %q is a directory", path)
	default:
		status.Available = true
		status.Resolved = path
	}
	return status
}
