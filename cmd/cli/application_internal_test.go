package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	overrideConfigurationContentConstant = `common:
  log_level: debug
  log_format: structured
tools:
  setup:
    author: Config Author
  bump:
    type: minor
`
)

func writeConfigurationFile(testInstance *testing.T, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o644))
	return configurationPath
}

func executeRootCommand(testInstance *testing.T, application *Application, arguments []string) error {
	testInstance.Helper()
	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)
	application.rootCommand.SetArgs(arguments)
	return application.rootCommand.Execute()
}

func TestInitializeConfigurationAppliesConfigurationFile(testInstance *testing.T) {
	application := NewApplication()
	configurationPath := writeConfigurationFile(testInstance, overrideConfigurationContentConstant)

	require.NoError(testInstance, executeRootCommand(testInstance, application, []string{"--config", configurationPath}))

	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "Config Author", application.configuration.Tools.Setup.Author)
	require.Equal(testInstance, "minor", application.configuration.Tools.Bump.Segment)
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)

	// Values absent from the file keep their embedded defaults.
	require.Equal(testInstance, "Project Title", application.configuration.Tools.Setup.ProjectName)
}

func TestInitializeConfigurationFlagOverridesFile(testInstance *testing.T) {
	application := NewApplication()
	configurationPath := writeConfigurationFile(testInstance, overrideConfigurationContentConstant)

	require.NoError(testInstance, executeRootCommand(testInstance, application, []string{
		"--config", configurationPath,
		"--log-level", "warn",
		"--log-format", "console",
	}))

	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationDefaultsWithoutFile(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, executeRootCommand(testInstance, application, nil))

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.NotNil(testInstance, application.logger)
}

func TestInitializeConfigurationRejectsUnknownLogLevel(testInstance *testing.T) {
	application := NewApplication()

	executionError := executeRootCommand(testInstance, application, []string{"--log-level", "verbose"})
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}
