package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "dashboard.preview_lines")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidSortModes returns the list of valid session sort modes
func ValidSortModes() []string {
	return []string{"activity", "name", "agents", "windows"}
}

// ValidColorModes returns the list of valid color settings
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

// ValidConflictActions returns the list of valid lock conflict actions
func ValidConflictActions() []string {
	return []string{"exit", "fail"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid dashboard themes
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateDashboard()...)
	errors = append(errors, c.validateTmux()...)
	errors = append(errors, c.validateLock()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateHeadless()...)

	return errors
}

// validateDashboard validates the DashboardConfig
func (c *Config) validateDashboard() []ValidationError {
	var errors []ValidationError

	const minPreviewLines = 1
	const maxPreviewLines = 500

	if c.Dashboard.PreviewLines < minPreviewLines {
		errors = append(errors, ValidationError{
			Field:   "dashboard.preview_lines",
			Value:   c.Dashboard.PreviewLines,
			Message: fmt.Sprintf("must be at least %d", minPreviewLines),
		})
	}
	if c.Dashboard.PreviewLines > maxPreviewLines {
		errors = append(errors, ValidationError{
			Field:   "dashboard.preview_lines",
			Value:   c.Dashboard.PreviewLines,
			Message: fmt.Sprintf("exceeds maximum of %d", maxPreviewLines),
		})
	}

	if c.Dashboard.SortMode != "" && !slices.Contains(ValidSortModes(), c.Dashboard.SortMode) {
		errors = append(errors, ValidationError{
			Field:   "dashboard.sort_mode",
			Value:   c.Dashboard.SortMode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidSortModes(), ", ")),
		})
	}

	if c.Dashboard.Color != "" && !slices.Contains(ValidColorModes(), c.Dashboard.Color) {
		errors = append(errors, ValidationError{
			Field:   "dashboard.color",
			Value:   c.Dashboard.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	// Refresh interval bounds (too fast hammers the tmux server)
	const minRefreshMs = 250
	const maxRefreshMs = 60000

	if c.Dashboard.RefreshIntervalMs < minRefreshMs {
		errors = append(errors, ValidationError{
			Field:   "dashboard.refresh_interval_ms",
			Value:   c.Dashboard.RefreshIntervalMs,
			Message: fmt.Sprintf("must be at least %dms", minRefreshMs),
		})
	}
	if c.Dashboard.RefreshIntervalMs > maxRefreshMs {
		errors = append(errors, ValidationError{
			Field:   "dashboard.refresh_interval_ms",
			Value:   c.Dashboard.RefreshIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxRefreshMs),
		})
	}

	if c.Dashboard.Theme != "" && !slices.Contains(ValidThemes(), c.Dashboard.Theme) {
		errors = append(errors, ValidationError{
			Field:   "dashboard.theme",
			Value:   c.Dashboard.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

// validateTmux validates the TmuxConfig
func (c *Config) validateTmux() []ValidationError {
	var errors []ValidationError

	const minCommandTimeoutMs = 100
	const maxCommandTimeoutMs = 60000

	if c.Tmux.CommandTimeoutMs < minCommandTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "tmux.command_timeout_ms",
			Value:   c.Tmux.CommandTimeoutMs,
			Message: fmt.Sprintf("must be at least %dms", minCommandTimeoutMs),
		})
	}
	if c.Tmux.CommandTimeoutMs > maxCommandTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "tmux.command_timeout_ms",
			Value:   c.Tmux.CommandTimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxCommandTimeoutMs),
		})
	}

	return errors
}

// validateLock validates the LockConfig
func (c *Config) validateLock() []ValidationError {
	var errors []ValidationError

	if c.Lock.TimeoutMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "lock.timeout_ms",
			Value:   c.Lock.TimeoutMs,
			Message: "must be non-negative (0 fails immediately on conflict)",
		})
	}

	// A dashboard that silently waits minutes for a lock looks hung
	const maxLockTimeoutMs = 300000
	if c.Lock.TimeoutMs > maxLockTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "lock.timeout_ms",
			Value:   c.Lock.TimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxLockTimeoutMs),
		})
	}

	if c.Lock.OnConflict != "" && !slices.Contains(ValidConflictActions(), c.Lock.OnConflict) {
		errors = append(errors, ValidationError{
			Field:   "lock.on_conflict",
			Value:   c.Lock.OnConflict,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidConflictActions(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateHeadless validates the HeadlessConfig
func (c *Config) validateHeadless() []ValidationError {
	var errors []ValidationError

	for agent, template := range c.Headless.Agents {
		if strings.TrimSpace(template) == "" {
			errors = append(errors, ValidationError{
				Field:   "headless.agents." + agent,
				Value:   template,
				Message: "command template must not be empty",
			})
		}
	}

	if c.Headless.DefaultAgent != "" {
		if _, ok := c.Headless.Agents[c.Headless.DefaultAgent]; !ok {
			errors = append(errors, ValidationError{
				Field:   "headless.default_agent",
				Value:   c.Headless.DefaultAgent,
				Message: "must name a configured agent under headless.agents",
			})
		}
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if c.Paths.StateDir != "" {
		path := c.Paths.StateDir

		if strings.ContainsRune(path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   "paths.state_dir",
				Value:   path,
				Message: "path contains invalid null character",
			})
		}

		// Reasonable path length limit (most filesystems have limits around 4096)
		const maxPathLength = 4096
		if len(path) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   "paths.state_dir",
				Value:   path,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}
