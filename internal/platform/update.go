package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Update probe constants
const (
	PipCommand     = "pip"
	UpdatePackage  = "yt-dlp"
	UpgradeCommand = "pip install --upgrade yt-dlp"

	UpdateProbeTimeout = 30 * time.Second
)

// Markers in pip dry-run output that indicate a newer release exists.
var updateMarkers = []string{"Collecting yt-dlp", "Downloading"}

// CheckYTDLPUpdate runs pip in dry-run mode to see whether a newer yt-dlp
// release is available. It never installs anything; callers surface
// UpgradeCommand to the user when the probe reports true.
func CheckYTDLPUpdate(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, UpdateProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, PipCommand, "install", "--upgrade", UpdatePackage, "--dry-run")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return false, fmt.Errorf("update probe failed: %w", err)
	}

	return updateAvailable(string(output)), nil
}

// updateAvailable reports whether the dry-run output names a new release.
func updateAvailable(output string) bool {
	for _, marker := range updateMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
