package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForInitNamesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"init"},
			WorkingDirectory: "/workspace/project",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Initializing Git repository in /workspace/project", message)
}

func TestBuildStartedMessageForRemoteAddIncludesRemoteAndURL(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "add", "origin", "https://github.com/acme/widget.git"},
			WorkingDirectory: "/workspace/project",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Adding remote origin pointing to https://github.com/acme/widget.git in /workspace/project", message)
}

func TestBuildSuccessMessageForCommitIncludesMessage(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"commit", "-m", "Initial project setup"},
			WorkingDirectory: "/workspace/project",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, `Created commit in /workspace/project with message "Initial project setup"`, message)
}

func TestBuildFailureMessageForTagIncludesExitCodeAndStderr(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"tag", "-a", "v0.1.0", "-m", "Initial project setup"},
			WorkingDirectory: "/workspace/project",
		},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "fatal: tag 'v0.1.0' already exists"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to create tag v0.1.0 in /workspace/project (exit code 128: fatal: tag 'v0.1.0' already exists)", message)
}

func TestBuildMessagesFallBackToGenericTemplates(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"status", "--porcelain"}},
	}

	require.Equal(t, "Running git status --porcelain", formatter.BuildStartedMessage(command))
	require.Equal(t, "Completed git status --porcelain", formatter.BuildSuccessMessage(command))
}
