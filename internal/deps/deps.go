package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Requirement defines an external binary watchtrack may call.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// TitleRequirements lists the binaries used to read the foreground window
// title on goos. A configured title command replaces the platform tools.
func TitleRequirements(goos string, titleCommand []string) []Requirement {
	if len(titleCommand) > 0 {
		return []Requirement{{
			Name:        "Title command",
			Command:     titleCommand[0],
			Description: "Configured foreground title command",
		}}
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Requirement{
			{Name: "xdotool", Command: "xdotool", Description: "Reads the active X11 window name", Optional: true},
			{Name: "xprop", Command: "xprop", Description: "Fallback active window lookup", Optional: true},
		}
	case "darwin":
		return []Requirement{
			{Name: "osascript", Command: "osascript", Description: "Queries the frontmost application"},
		}
	default:
		return nil
	}
}

// CurrentTitleRequirements is TitleRequirements for the running platform.
func CurrentTitleRequirements(titleCommand []string) []Requirement {
	return TitleRequirements(runtime.GOOS, titleCommand)
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
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
