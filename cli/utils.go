package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// extractCLIFlags copies flags the user explicitly set into a map keyed by
// flag name. Untouched flags are skipped so they never shadow YAML or
// environment values.
func extractCLIFlags(fs *pflag.FlagSet, flags map[string]any) {
	addFlag := func(flagName string, getter func(string) (any, error)) {
		if fs.Changed(flagName) {
			if value, err := getter(flagName); err == nil {
				flags[flagName] = value
			}
		}
	}

	getString := func(name string) (any, error) { return fs.GetString(name) }
	getInt := func(name string) (any, error) { return fs.GetInt(name) }
	getBool := func(name string) (any, error) { return fs.GetBool(name) }
	getDuration := func(name string) (any, error) { return fs.GetDuration(name) }

	flagDefs := []struct {
		flagName string
		getter   func(string) (any, error)
	}{
		// Server flags
		{"host", getString},
		{"port", getInt},
		{"cors", getBool},
		{"timeout", getDuration},

		// Backend flags
		{"mongo-url", getString},
		{"mongo-db", getString},

		// Logging flags
		{"log-level", getString},
		{"log-json", getBool},
		{"log-source", getBool},
	}

	for _, def := range flagDefs {
		addFlag(def.flagName, def.getter)
	}
}

// loadEnvFile loads environment variables from the file named by the env-file
// flag. A missing file is tolerated; a path outside the working directory is
// rejected. The resolved path is returned for logging.
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return "", nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path %q is outside the working directory", envFile)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("env file path %q is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

// isPathWithinDirectory reports whether path sits inside dir after resolving
// both to absolute, cleaned forms.
func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if absPath == absDir {
		return true
	}
	return strings.HasPrefix(absPath, absDir+string(filepath.Separator))
}
