package config

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// EnvVar represents a single environment variable
type EnvVar struct {
	Key   string
	Value string
}

// LoadEnvFile reads environment variables from a KEY=VALUE file. Empty lines
// and #-comments are skipped; malformed lines are logged and skipped.
func LoadEnvFile(path string) ([]EnvVar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("[ENV] Warning: Failed to close file %s: %v", path, err)
		}
	}()

	var envVars []EnvVar
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			log.Printf("[ENV] Warning: Invalid format at line %d in %s: %s", lineNum, path, line)
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove surrounding quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if key == "" || strings.ContainsAny(key, " \t\n") {
			log.Printf("[ENV] Warning: Invalid key at line %d in %s: '%s'", lineNum, path, key)
			continue
		}

		envVars = append(envVars, EnvVar{
			Key:   key,
			Value: value,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return envVars, nil
}

// ApplyEnvVars sets environment variables in the current process
// Returns the list of variables that were set
func ApplyEnvVars(envVars []EnvVar) []string {
	var applied []string

	for _, env := range envVars {
		if err := os.Setenv(env.Key, env.Value); err != nil {
			log.Printf("[ENV] Error setting environment variable %s: %v", env.Key, err)
			continue
		}
		applied = append(applied, env.Key)
	}

	return applied
}
