package terminal

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// packageDir is the Windows Terminal package folder under %LOCALAPPDATA%.
const packageDir = "Packages/Microsoft.WindowsTerminal_8wekyb3d8bbwe/LocalState"

// SettingsFileName is the Windows Terminal settings file.
const SettingsFileName = "settings.json"

// pathEnv abstracts the host environment for settings path resolution.
type pathEnv struct {
	goos   string
	getenv func(string) string
	home   string
	user   string
	exists func(string) bool
}

// DefaultSettingsPath returns the most likely Windows Terminal settings path
// for the current machine. On Windows it uses %LOCALAPPDATA%. Elsewhere (WSL)
// it probes the Windows user profile mounted under /mnt/c and the home
// directory, falling back to the /mnt/c candidate when neither exists.
func DefaultSettingsPath() string {
	home, _ := os.UserHomeDir()
	return resolveSettingsPath(pathEnv{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
		home:   home,
		user:   currentUser(),
		exists: fileExists,
	})
}

func resolveSettingsPath(env pathEnv) string {
	if env.goos == "windows" {
		if local := env.getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, filepath.FromSlash(packageDir), SettingsFileName)
		}
	}

	candidates := []string{
		filepath.Join("/mnt/c/Users", env.user, "AppData/Local", packageDir, SettingsFileName),
		filepath.Join(env.home, "AppData/Local", packageDir, SettingsFileName),
	}
	for _, c := range candidates {
		if env.exists(c) {
			return c
		}
	}
	return candidates[0]
}

func currentUser() string {
	for _, key := range []string{"USERNAME", "USER"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
