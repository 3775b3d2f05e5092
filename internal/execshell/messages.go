package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitInitSubcommandNameConstant      = "init"
	gitRemoteSubcommandNameConstant    = "remote"
	gitRemoteAddSubcommandNameConstant = "add"
	gitAddSubcommandNameConstant       = "add"
	gitCommitSubcommandNameConstant    = "commit"
	gitTagSubcommandNameConstant       = "tag"
	gitMessageFlagConstant             = "-m"
	gitAnnotateFlagConstant            = "-a"
)

const (
	gitInitStartTemplateConstant                 = "Initializing Git repository in %s"
	gitInitSuccessTemplateConstant               = "Initialized Git repository in %s"
	gitInitFailureTemplateConstant               = "Failed to initialize Git repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant      = "Unable to initialize Git repository in %s: %s"
	gitRemoteAddStartTemplateConstant            = "Adding remote %s pointing to %s in %s"
	gitRemoteAddSuccessTemplateConstant          = "Remote %s now points to %s in %s"
	gitRemoteAddFailureTemplateConstant          = "Failed to add remote %s pointing to %s in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant = "Unable to add remote %s pointing to %s in %s: %s"
	gitAddStartTemplateConstant                  = "Staging %s in %s"
	gitAddSuccessTemplateConstant                = "Staged %s in %s"
	gitAddFailureTemplateConstant                = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant       = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant               = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant             = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant             = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant    = "Unable to create commit in %s with message %q: %s"
	gitTagStartTemplateConstant                  = "Creating tag %s in %s"
	gitTagSuccessTemplateConstant                = "Created tag %s in %s"
	gitTagFailureTemplateConstant                = "Failed to create tag %s in %s (exit code %d%s)"
	gitTagExecutionFailureTemplateConstant       = "Unable to create tag %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		if gitMessage, recognized := formatter.buildGitMessage(command, result, failure, stage); recognized {
			return gitMessage
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) (string, bool) {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return emptyStringConstant, false
	}

	workingDirectoryLabel := formatter.workingDirectoryLabel(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	failureMessage := formatter.failureLabel(failure)

	switch arguments[0] {
	case gitInitSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitInitStartTemplateConstant, workingDirectoryLabel), true
		case messageStageSuccess:
			return fmt.Sprintf(gitInitSuccessTemplateConstant, workingDirectoryLabel), true
		case messageStageFailure:
			return fmt.Sprintf(gitInitFailureTemplateConstant, workingDirectoryLabel, result.ExitCode, standardErrorSuffix), true
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, workingDirectoryLabel, failureMessage), true
		}
	case gitRemoteSubcommandNameConstant:
		if len(arguments) < 4 || arguments[1] != gitRemoteAddSubcommandNameConstant {
			return emptyStringConstant, false
		}
		remoteName := arguments[2]
		remoteURL := arguments[3]
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, remoteURL, workingDirectoryLabel), true
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, remoteURL, workingDirectoryLabel), true
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, remoteURL, workingDirectoryLabel, result.ExitCode, standardErrorSuffix), true
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, remoteURL, workingDirectoryLabel, failureMessage), true
		}
	case gitAddSubcommandNameConstant:
		stagedTarget := fallbackUnknownValueLabelConstant
		if len(arguments) > 1 {
			stagedTarget = strings.Join(arguments[1:], commandArgumentsJoinSeparatorConstant)
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitAddStartTemplateConstant, stagedTarget, workingDirectoryLabel), true
		case messageStageSuccess:
			return fmt.Sprintf(gitAddSuccessTemplateConstant, stagedTarget, workingDirectoryLabel), true
		case messageStageFailure:
			return fmt.Sprintf(gitAddFailureTemplateConstant, stagedTarget, workingDirectoryLabel, result.ExitCode, standardErrorSuffix), true
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, stagedTarget, workingDirectoryLabel, failureMessage), true
		}
	case gitCommitSubcommandNameConstant:
		commitMessage := formatter.flagValue(arguments, gitMessageFlagConstant)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectoryLabel, commitMessage), true
		case messageStageSuccess:
			return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectoryLabel, commitMessage), true
		case messageStageFailure:
			return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectoryLabel, commitMessage, result.ExitCode, standardErrorSuffix), true
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectoryLabel, commitMessage, failureMessage), true
		}
	case gitTagSubcommandNameConstant:
		tagName := formatter.tagName(arguments)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitTagStartTemplateConstant, tagName, workingDirectoryLabel), true
		case messageStageSuccess:
			return fmt.Sprintf(gitTagSuccessTemplateConstant, tagName, workingDirectoryLabel), true
		case messageStageFailure:
			return fmt.Sprintf(gitTagFailureTemplateConstant, tagName, workingDirectoryLabel, result.ExitCode, standardErrorSuffix), true
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitTagExecutionFailureTemplateConstant, tagName, workingDirectoryLabel, failureMessage), true
		}
	}

	return emptyStringConstant, false
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.failureLabel(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) workingDirectoryLabel(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) failureLabel(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) flagValue(arguments []string, flagName string) string {
	for argumentIndex, argument := range arguments {
		if argument == flagName && argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) tagName(arguments []string) string {
	for argumentIndex := 1; argumentIndex < len(arguments); argumentIndex++ {
		argument := arguments[argumentIndex]
		if argument == gitAnnotateFlagConstant {
			continue
		}
		if argument == gitMessageFlagConstant {
			argumentIndex++
			continue
		}
		return argument
	}
	return fallbackUnknownValueLabelConstant
}
