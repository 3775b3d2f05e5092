package bump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigurationValuesUsesRootKey(testInstance *testing.T) {
	values := DefaultConfigurationValues("tools.bump")

	require.Equal(testInstance, "patch", values["tools.bump.type"])
	require.Equal(testInstance, defaultVersionPatternConstant, values["tools.bump.pattern"])
	require.Equal(testInstance, "chore: bump version to {version}", values["tools.bump.message"])
	require.Equal(testInstance, defaultExcludedDirectories(), values["tools.bump.exclude"])
	require.Equal(testInstance, false, values["tools.bump.dry_run"])
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		configuration         CommandConfiguration
		expectedConfiguration CommandConfiguration
	}{
		{
			name: "trims_values_and_drops_blank_excludes",
			configuration: CommandConfiguration{
				ProjectPath:         " /tmp/project ",
				Segment:             " minor ",
				Pattern:             ` VERSION = '(\d+\.\d+\.\d+)' `,
				MessageTemplate:     " release {version} ",
				ExcludedDirectories: []string{" .git ", "", "venv"},
			},
			expectedConfiguration: CommandConfiguration{
				ProjectPath:         "/tmp/project",
				Segment:             "minor",
				Pattern:             `VERSION = '(\d+\.\d+\.\d+)'`,
				MessageTemplate:     "release {version}",
				ExcludedDirectories: []string{".git", "venv"},
			},
		},
		{
			name:          "restores_required_defaults",
			configuration: CommandConfiguration{},
			expectedConfiguration: CommandConfiguration{
				Segment:             "patch",
				Pattern:             defaultVersionPatternConstant,
				MessageTemplate:     "chore: bump version to {version}",
				ExcludedDirectories: defaultExcludedDirectories(),
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedConfiguration, testCase.configuration.sanitize())
		})
	}
}
