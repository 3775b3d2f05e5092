package scaffold

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/execshell"
	"github.com/karmstrong/repokit/internal/gitrepo"
	"github.com/karmstrong/repokit/internal/ui"
	"github.com/karmstrong/repokit/internal/utils"
)

const (
	commandUseConstant                    = "setup"
	commandShortDescriptionConstant       = "Initialize a Git repository with standard project files"
	commandLongDescriptionConstant        = "setup initializes a Git repository, creates standard project boilerplate, optionally configures a GitHub remote, and records an initial tagged commit."
	commandExecutionErrorTemplateConstant = "repository setup failed: %w"
	flagDirectoryNameConstant             = "dir"
	flagDirectoryShorthandConstant        = "d"
	flagDirectoryDescriptionConstant      = "Directory to initialize"
	flagRemoteNameConstant                = "remote"
	flagRemoteShorthandConstant           = "r"
	flagRemoteDescriptionConstant         = "Remote repository URL added as origin"
	flagGitHubRepoNameConstant            = "github-repo"
	flagGitHubRepoDescriptionConstant     = "GitHub repository slug (e.g. user/repo) to verify or create"
	flagGitHubTokenNameConstant           = "github-token"
	flagGitHubTokenDescriptionConstant    = "GitHub personal access token (falls back to GH_TOKEN, GITHUB_TOKEN, or GITHUB_API_TOKEN)"
	flagProjectNameConstant               = "project-name"
	flagProjectNameDescriptionConstant    = "Name of the project used in generated files"
	flagAuthorNameConstant                = "author"
	flagAuthorDescriptionConstant         = "Author name used in generated files"
	flagCommitMessageNameConstant         = "commit-message"
	flagCommitMessageDescriptionConstant  = "Initial commit message"
	flagIncludeBumpNameConstant           = "include-bump"
	flagIncludeBumpDescriptionConstant    = "Include the version bumper helper script in the project root"
	flagManifestNameConstant              = "manifest"
	flagManifestDescriptionConstant       = "YAML manifest describing a custom file set to scaffold"
	flagSkipCommitNameConstant            = "skip-commit"
	flagSkipCommitDescriptionConstant     = "Create files without staging, committing, or tagging"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview the scaffold plan without making changes"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted setup configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-formatted logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the setup cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryEnsurerFactory     RepositoryEnsurerFactory
}

// Build constructs the setup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().StringP(flagDirectoryNameConstant, flagDirectoryShorthandConstant, "", flagDirectoryDescriptionConstant)
	command.Flags().StringP(flagRemoteNameConstant, flagRemoteShorthandConstant, "", flagRemoteDescriptionConstant)
	command.Flags().String(flagGitHubRepoNameConstant, "", flagGitHubRepoDescriptionConstant)
	command.Flags().String(flagGitHubTokenNameConstant, "", flagGitHubTokenDescriptionConstant)
	command.Flags().String(flagProjectNameConstant, "", flagProjectNameDescriptionConstant)
	command.Flags().String(flagAuthorNameConstant, "", flagAuthorDescriptionConstant)
	command.Flags().String(flagCommitMessageNameConstant, "", flagCommitMessageDescriptionConstant)
	command.Flags().Bool(flagIncludeBumpNameConstant, false, flagIncludeBumpDescriptionConstant)
	command.Flags().String(flagManifestNameConstant, "", flagManifestDescriptionConstant)
	command.Flags().Bool(flagSkipCommitNameConstant, false, flagSkipCommitDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	service, serviceError := NewServiceWithEnsurerFactory(logger, repositoryManager, outputWriter, builder.RepositoryEnsurerFactory)
	if serviceError != nil {
		return serviceError
	}

	if runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) Options {
	configuration := builder.resolveConfiguration()

	options := Options{
		Directory:         configuration.Directory,
		RemoteURL:         configuration.RemoteURL,
		GitHubRepository:  configuration.GitHubRepository,
		ProjectName:       configuration.ProjectName,
		Author:            configuration.Author,
		CommitMessage:     configuration.CommitMessage,
		IncludeBumpScript: configuration.IncludeBumpScript,
		DryRun:            configuration.DryRun,
	}

	if flagValue, changed := stringFlagValue(command, flagDirectoryNameConstant); changed {
		options.Directory = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagRemoteNameConstant); changed {
		options.RemoteURL = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagGitHubRepoNameConstant); changed {
		options.GitHubRepository = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagGitHubTokenNameConstant); changed {
		options.GitHubToken = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagProjectNameConstant); changed {
		options.ProjectName = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagAuthorNameConstant); changed {
		options.Author = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagCommitMessageNameConstant); changed {
		options.CommitMessage = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagManifestNameConstant); changed {
		options.ManifestPath = flagValue
	}
	if boolValue, changed := boolFlagValue(command, flagIncludeBumpNameConstant); changed {
		options.IncludeBumpScript = boolValue
	}
	if boolValue, changed := boolFlagValue(command, flagSkipCommitNameConstant); changed {
		options.SkipCommit = boolValue
	}
	if boolValue, changed := boolFlagValue(command, flagDryRunNameConstant); changed {
		options.DryRun = boolValue
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if builder.humanReadableLogging() {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func (builder *CommandBuilder) humanReadableLogging() bool {
	return builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
}

func stringFlagValue(command *cobra.Command, flagName string) (string, bool) {
	if !command.Flags().Changed(flagName) {
		return "", false
	}
	flagValue, _ := command.Flags().GetString(flagName)
	return strings.TrimSpace(flagValue), true
}

func boolFlagValue(command *cobra.Command, flagName string) (bool, bool) {
	if !command.Flags().Changed(flagName) {
		return false, false
	}
	flagValue, _ := command.Flags().GetBool(flagName)
	return flagValue, true
}
