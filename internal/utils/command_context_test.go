package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karmstrong/repokit/internal/utils"
)

const testConfigurationFilePathConstant = "/tmp/repokit/config.yaml"

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), testConfigurationFilePathConstant)
	configurationFilePath, available := accessor.ConfigurationFilePath(updatedContext)

	require.True(testInstance, available)
	require.Equal(testInstance, testConfigurationFilePathConstant, configurationFilePath)
}

func TestCommandContextAccessorMissingValue(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	configurationFilePath, available := accessor.ConfigurationFilePath(context.Background())

	require.False(testInstance, available)
	require.Empty(testInstance, configurationFilePath)
}

func TestCommandContextAccessorNilContext(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.ConfigurationFilePath(nil)
	require.False(testInstance, available)

	updatedContext := accessor.WithConfigurationFilePath(nil, testConfigurationFilePathConstant)
	configurationFilePath, availableAfterWrite := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, availableAfterWrite)
	require.Equal(testInstance, testConfigurationFilePathConstant, configurationFilePath)
}
