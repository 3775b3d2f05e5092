package bump

import "strings"

const (
	defaultVersionPatternConstant  = `__version__\s*=\s*["'](\d+\.\d+\.\d+)["']`
	defaultMessageTemplateConstant = "chore: bump version to {version}"
	defaultSegmentNameConstant     = "patch"

	configurationProjectKeyConstant   = "project"
	configurationTypeKeyConstant      = "type"
	configurationPatternKeyConstant   = "pattern"
	configurationCommitKeyConstant    = "commit"
	configurationGitTagKeyConstant    = "git_tag"
	configurationMessageKeyConstant   = "message"
	configurationExcludeKeyConstant   = "exclude"
	configurationDryRunKeyConstant    = "dry_run"
	configurationKeySeparatorConstant = "."
)

func defaultExcludedDirectories() []string {
	return []string{".git", "env", "venv", ".venv", ".env", ".idea", ".vscode"}
}

// CommandConfiguration captures configuration values for the version bump command.
type CommandConfiguration struct {
	ProjectPath         string   `mapstructure:"project"`
	Segment             string   `mapstructure:"type"`
	Pattern             string   `mapstructure:"pattern"`
	Commit              bool     `mapstructure:"commit"`
	CreateTag           bool     `mapstructure:"git_tag"`
	MessageTemplate     string   `mapstructure:"message"`
	ExcludedDirectories []string `mapstructure:"exclude"`
	DryRun              bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for version bumping.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProjectPath:         "",
		Segment:             defaultSegmentNameConstant,
		Pattern:             defaultVersionPatternConstant,
		Commit:              false,
		CreateTag:           false,
		MessageTemplate:     defaultMessageTemplateConstant,
		ExcludedDirectories: defaultExcludedDirectories(),
		DryRun:              false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the bump command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationProjectKeyConstant: defaults.ProjectPath,
		rootKey + configurationKeySeparatorConstant + configurationTypeKeyConstant:    defaults.Segment,
		rootKey + configurationKeySeparatorConstant + configurationPatternKeyConstant: defaults.Pattern,
		rootKey + configurationKeySeparatorConstant + configurationCommitKeyConstant:  defaults.Commit,
		rootKey + configurationKeySeparatorConstant + configurationGitTagKeyConstant:  defaults.CreateTag,
		rootKey + configurationKeySeparatorConstant + configurationMessageKeyConstant: defaults.MessageTemplate,
		rootKey + configurationKeySeparatorConstant + configurationExcludeKeyConstant: defaults.ExcludedDirectories,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:  defaults.DryRun,
	}
}

// sanitize trims configuration values and restores required defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.ProjectPath = strings.TrimSpace(configuration.ProjectPath)
	sanitized.Segment = strings.TrimSpace(configuration.Segment)
	sanitized.Pattern = strings.TrimSpace(configuration.Pattern)
	sanitized.MessageTemplate = strings.TrimSpace(configuration.MessageTemplate)
	sanitized.ExcludedDirectories = sanitizeExcludedDirectories(configuration.ExcludedDirectories)

	if len(sanitized.Segment) == 0 {
		sanitized.Segment = defaultSegmentNameConstant
	}
	if len(sanitized.Pattern) == 0 {
		sanitized.Pattern = defaultVersionPatternConstant
	}
	if len(sanitized.MessageTemplate) == 0 {
		sanitized.MessageTemplate = defaultMessageTemplateConstant
	}
	if len(sanitized.ExcludedDirectories) == 0 {
		sanitized.ExcludedDirectories = defaultExcludedDirectories()
	}

	return sanitized
}

func sanitizeExcludedDirectories(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
