package scaffold

import "strings"

const (
	defaultProjectNameConstant   = "Project Title"
	defaultAuthorNameConstant    = "Your Name"
	defaultCommitMessageConstant = "Initial project setup"

	configurationDirectoryKeyConstant     = "dir"
	configurationRemoteKeyConstant        = "remote"
	configurationGitHubRepoKeyConstant    = "github_repo"
	configurationProjectNameKeyConstant   = "project_name"
	configurationAuthorKeyConstant        = "author"
	configurationCommitMessageKeyConstant = "commit_message"
	configurationIncludeBumpKeyConstant   = "include_bump"
	configurationDryRunKeyConstant        = "dry_run"
	configurationKeySeparatorConstant     = "."
)

// CommandConfiguration captures configuration values for the repository setup command.
type CommandConfiguration struct {
	Directory         string `mapstructure:"dir"`
	RemoteURL         string `mapstructure:"remote"`
	GitHubRepository  string `mapstructure:"github_repo"`
	ProjectName       string `mapstructure:"project_name"`
	Author            string `mapstructure:"author"`
	CommitMessage     string `mapstructure:"commit_message"`
	IncludeBumpScript bool   `mapstructure:"include_bump"`
	DryRun            bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for setup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Directory:         "",
		RemoteURL:         "",
		GitHubRepository:  "",
		ProjectName:       defaultProjectNameConstant,
		Author:            defaultAuthorNameConstant,
		CommitMessage:     defaultCommitMessageConstant,
		IncludeBumpScript: false,
		DryRun:            false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the setup command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationDirectoryKeyConstant:     defaults.Directory,
		rootKey + configurationKeySeparatorConstant + configurationRemoteKeyConstant:        defaults.RemoteURL,
		rootKey + configurationKeySeparatorConstant + configurationGitHubRepoKeyConstant:    defaults.GitHubRepository,
		rootKey + configurationKeySeparatorConstant + configurationProjectNameKeyConstant:   defaults.ProjectName,
		rootKey + configurationKeySeparatorConstant + configurationAuthorKeyConstant:        defaults.Author,
		rootKey + configurationKeySeparatorConstant + configurationCommitMessageKeyConstant: defaults.CommitMessage,
		rootKey + configurationKeySeparatorConstant + configurationIncludeBumpKeyConstant:   defaults.IncludeBumpScript,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:        defaults.DryRun,
	}
}

// sanitize trims configuration values and restores required defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	sanitized.GitHubRepository = strings.TrimSpace(configuration.GitHubRepository)
	sanitized.ProjectName = strings.TrimSpace(configuration.ProjectName)
	sanitized.Author = strings.TrimSpace(configuration.Author)
	sanitized.CommitMessage = strings.TrimSpace(configuration.CommitMessage)

	if len(sanitized.ProjectName) == 0 {
		sanitized.ProjectName = defaultProjectNameConstant
	}
	if len(sanitized.Author) == 0 {
		sanitized.Author = defaultAuthorNameConstant
	}
	if len(sanitized.CommitMessage) == 0 {
		sanitized.CommitMessage = defaultCommitMessageConstant
	}

	return sanitized
}
