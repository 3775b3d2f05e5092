package bump

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/execshell"
	"github.com/karmstrong/repokit/internal/gitrepo"
	"github.com/karmstrong/repokit/internal/semver"
	"github.com/karmstrong/repokit/internal/ui"
	"github.com/karmstrong/repokit/internal/utils"
)

const (
	commandUseConstant                    = "bump"
	commandShortDescriptionConstant       = "Bump semantic version strings in project files"
	commandLongDescriptionConstant        = "bump scans project files for semantic version strings, advances the requested segment, and optionally commits and tags the change."
	commandExecutionErrorTemplateConstant = "version bump failed: %w"
	flagProjectNameConstant               = "project"
	flagProjectShorthandConstant          = "p"
	flagProjectDescriptionConstant        = "Path to the project root"
	flagTypeNameConstant                  = "type"
	flagTypeShorthandConstant             = "t"
	flagTypeDescriptionConstant           = "Version segment to bump (major, minor, or patch)"
	flagPatternNameConstant               = "pattern"
	flagPatternShorthandConstant          = "f"
	flagPatternDescriptionConstant        = "Regex locating the version string; the first capture group is rewritten"
	flagCommitNameConstant                = "commit"
	flagCommitShorthandConstant           = "c"
	flagCommitDescriptionConstant         = "Commit the bump to Git"
	flagGitTagNameConstant                = "git-tag"
	flagGitTagShorthandConstant           = "g"
	flagGitTagDescriptionConstant         = "Create an annotated Git tag for the new version"
	flagMessageNameConstant               = "message"
	flagMessageShorthandConstant          = "m"
	flagMessageDescriptionConstant        = "Commit and tag message format; {version} expands to the new version"
	flagExcludeNameConstant               = "exclude"
	flagExcludeDescriptionConstant        = "Directories to skip while scanning"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Show changes without writing files or running Git"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted bump configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-formatted logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the bump cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitExecutor                  gitrepo.GitExecutor
}

// Build constructs the bump command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().StringP(flagProjectNameConstant, flagProjectShorthandConstant, "", flagProjectDescriptionConstant)
	command.Flags().StringP(flagTypeNameConstant, flagTypeShorthandConstant, "", flagTypeDescriptionConstant)
	command.Flags().StringP(flagPatternNameConstant, flagPatternShorthandConstant, "", flagPatternDescriptionConstant)
	command.Flags().BoolP(flagCommitNameConstant, flagCommitShorthandConstant, false, flagCommitDescriptionConstant)
	command.Flags().BoolP(flagGitTagNameConstant, flagGitTagShorthandConstant, false, flagGitTagDescriptionConstant)
	command.Flags().StringP(flagMessageNameConstant, flagMessageShorthandConstant, "", flagMessageDescriptionConstant)
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

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
	service, serviceError := NewService(logger, repositoryManager, outputWriter)
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (Options, error) {
	configuration := builder.resolveConfiguration()

	options := Options{
		ProjectPath:         configuration.ProjectPath,
		Pattern:             configuration.Pattern,
		Commit:              configuration.Commit,
		CreateTag:           configuration.CreateTag,
		MessageTemplate:     configuration.MessageTemplate,
		ExcludedDirectories: configuration.ExcludedDirectories,
		DryRun:              configuration.DryRun,
	}

	segmentName := configuration.Segment
	if flagValue, changed := stringFlagValue(command, flagTypeNameConstant); changed {
		segmentName = flagValue
	}
	segment, segmentError := semver.ParseSegment(segmentName)
	if segmentError != nil {
		return Options{}, segmentError
	}
	options.Segment = segment

	if flagValue, changed := stringFlagValue(command, flagProjectNameConstant); changed {
		options.ProjectPath = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagPatternNameConstant); changed {
		options.Pattern = flagValue
	}
	if flagValue, changed := stringFlagValue(command, flagMessageNameConstant); changed {
		options.MessageTemplate = flagValue
	}
	if command.Flags().Changed(flagExcludeNameConstant) {
		excludeValues, _ := command.Flags().GetStringSlice(flagExcludeNameConstant)
		options.ExcludedDirectories = sanitizeExcludedDirectories(excludeValues)
	}
	if boolValue, changed := boolFlagValue(command, flagCommitNameConstant); changed {
		options.Commit = boolValue
	}
	if boolValue, changed := boolFlagValue(command, flagGitTagNameConstant); changed {
		options.CreateTag = boolValue
	}
	if boolValue, changed := boolFlagValue(command, flagDryRunNameConstant); changed {
		options.DryRun = boolValue
	}

	return options, nil
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
