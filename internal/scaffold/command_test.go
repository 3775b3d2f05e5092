package scaffold_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/execshell"
	"github.com/karmstrong/repokit/internal/scaffold"
)

type recordingCommandExecutor struct {
	executedCommands []execshell.CommandDetails
}

func (executor *recordingCommandExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, details)
	return execshell.ExecutionResult{}, nil
}

func TestCommandDryRunProducesPlanWithoutGitCommands(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	executor := &recordingCommandExecutor{}

	builder := scaffold.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetContext(context.Background())
	command.SetArgs([]string{"--dir", temporaryDirectory, "--dry-run"})

	require.NoError(testInstance, command.Execute())
	require.Empty(testInstance, executor.executedCommands)
	require.Contains(testInstance, output.String(), "dry-run: would initialize Git repository in "+temporaryDirectory)
	require.Contains(testInstance, output.String(), "dry-run: would create "+filepath.Join(temporaryDirectory, "CHANGELOG.md"))
}

func TestCommandRunsFullScaffold(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	executor := &recordingCommandExecutor{}

	builder := scaffold.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetContext(context.Background())
	command.SetArgs([]string{
		"--dir", temporaryDirectory,
		"--project-name", "Flag Project",
		"--author", "Flag Author",
	})

	require.NoError(testInstance, command.Execute())

	expectedArguments := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", "Initial project setup"},
		{"tag", "-a", "v0.1.0", "-m", "Initial project setup"},
	}
	require.Len(testInstance, executor.executedCommands, len(expectedArguments))
	for commandIndex, expected := range expectedArguments {
		require.Equal(testInstance, expected, executor.executedCommands[commandIndex].Arguments)
		require.Equal(testInstance, temporaryDirectory, executor.executedCommands[commandIndex].WorkingDirectory)
	}

	require.Contains(testInstance, output.String(), "Created "+filepath.Join(temporaryDirectory, "README.md"))
}

func TestCommandRejectsPositionalArguments(testInstance *testing.T) {
	builder := scaffold.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    &recordingCommandExecutor{},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())
	command.SetArgs([]string{"unexpected"})

	require.Error(testInstance, command.Execute())
}
