package utils_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karmstrong/repokit/internal/utils"
)

const (
	testLogMessageConstant    = "logger_factory_test_message"
	testLogFileNameConstant   = "repokit.log"
	testInvalidLogLevelValue  = "verbose"
	testInvalidLogFormatValue = "pretty"
	logEntryMessageFieldName  = "msg"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		expectError        bool
	}{
		{
			name:               "debug_structured",
			requestedLogLevel:  utils.LogLevelDebug,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "info_console",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "warn_structured",
			requestedLogLevel:  utils.LogLevelWarn,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "error_console",
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "unsupported_level",
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelValue),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               "unsupported_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatValue),
			expectError:        true,
		},
	}

	factory := utils.NewLoggerFactory()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			logger, creationError := factory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat, utils.LoggerOptions{})
			if testCase.expectError {
				require.Error(subtestInstance, creationError)
				require.Nil(subtestInstance, logger)
				return
			}
			require.NoError(subtestInstance, creationError)
			require.NotNil(subtestInstance, logger)
		})
	}
}

func TestLoggerFactoryWritesRotatingLogFile(testInstance *testing.T) {
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)

	factory := utils.NewLoggerFactory()
	logger, creationError := factory.CreateLogger(utils.LogLevelInfo, utils.LogFormatConsole, utils.LoggerOptions{LogFilePath: logFilePath})
	require.NoError(testInstance, creationError)

	logger.Info(testLogMessageConstant)
	_ = logger.Sync()

	logFileContent, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)

	var logEntry map[string]any
	require.NoError(testInstance, json.Unmarshal(logFileContent, &logEntry))
	require.Equal(testInstance, testLogMessageConstant, logEntry[logEntryMessageFieldName])
}
