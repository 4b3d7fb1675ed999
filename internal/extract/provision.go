package extract

import (
	"fmt"
	"os/exec"
)

// Provision verifies the yt-dlp binary is reachable before the backend is
// handed to the server, and returns the resolved path. Provisioning happens
// once at process start; a failure leaves the backend unready rather than
// aborting the process.
func Provision(path string) (string, error) {
	if path == "" {
		path = "yt-dlp"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("yt-dlp not found at %q: %w", path, err)
	}
	return resolved, nil
}
