package fetch

import (
	"os"
	"path/filepath"
)

// defaultOutputDir is used when no directory is configured and no Unity
// project surrounds the working directory.
const defaultOutputDir = "mixamo_downloads"

// DetectOutputDir picks the download directory for unconfigured runs: the
// Assets/Animations folder of the Unity project containing the working
// directory, or ./mixamo_downloads when there is none.
func DetectOutputDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return defaultOutputDir
	}
	return detectOutputDir(wd)
}

func detectOutputDir(wd string) string {
	for dir := wd; ; {
		if isUnityProject(dir) {
			return filepath.Join(dir, "Assets", "Animations")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return defaultOutputDir
		}
		dir = parent
	}
}

// isUnityProject reports whether dir looks like a Unity project root: the
// standard Assets and ProjectSettings directories side by side.
func isUnityProject(dir string) bool {
	for _, sub := range []string{"Assets", "ProjectSettings"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
