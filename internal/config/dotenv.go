package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tiptrip-go/pkg/logger"
)

const (
	dotenvFilename = ".env"
	dotenvPathEnv  = "DOTENV_PATH"
)

type dotenvStats struct {
	loaded  int
	skipped int
}

// loadDotEnv applies a .env file to the process environment. Variables that
// are already set are left untouched. DOTENV_PATH overrides the upward search.
func loadDotEnv(log logger.Logger) error {
	path := strings.TrimSpace(os.Getenv(dotenvPathEnv))
	if path == "" {
		found, err := findUpward(dotenvFilename)
		if err != nil {
			return err
		}
		path = found
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	stats, err := applyDotEnv(file)
	if err != nil {
		return err
	}

	log.Info("dotenv: loaded variables", "count", stats.loaded, "path", path)
	if stats.skipped > 0 {
		log.Info("dotenv: skipped variables already set in env", "count", stats.skipped)
	}
	return nil
}

func findUpward(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func applyDotEnv(r io.Reader) (dotenvStats, error) {
	var stats dotenvStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			stats.skipped++
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return stats, err
		}
		stats.loaded++
	}

	return stats, scanner.Err()
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1] {
		if value[0] == '"' {
			if unquoted, err := strconv.Unquote(value); err == nil {
				return key, unquoted, true
			}
		}
		return key, value[1 : len(value)-1], true
	}

	return key, stripInlineComment(value), true
}

func stripInlineComment(value string) string {
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			return strings.TrimSpace(value[:i-1])
		}
	}
	return value
}
