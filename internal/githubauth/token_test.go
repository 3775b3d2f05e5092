package githubauth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTokenPrefersProvidedEnvironment(t *testing.T) {
	token, resolved := ResolveToken(map[string]string{
		EnvGitHubToken:    "from-map",
		EnvGitHubAPIToken: "ignored",
	})

	require.True(t, resolved)
	require.Equal(t, "from-map", token)
}

func TestResolveTokenHonorsPreferenceOrder(t *testing.T) {
	token, resolved := ResolveToken(map[string]string{
		EnvGitHubAPIToken: "api-token",
		EnvGitHubCLIToken: "cli-token",
	})

	require.True(t, resolved)
	require.Equal(t, "cli-token", token)
}

func TestResolveTokenIgnoresBlankValues(t *testing.T) {
	t.Setenv(EnvGitHubCLIToken, "")
	t.Setenv(EnvGitHubToken, "")
	t.Setenv(EnvGitHubAPIToken, "")

	token, resolved := ResolveToken(map[string]string{EnvGitHubToken: "   "})

	require.False(t, resolved)
	require.Empty(t, token)
}

func TestResolveTokenFallsBackToProcessEnvironment(t *testing.T) {
	t.Setenv(EnvGitHubCLIToken, "")
	t.Setenv(EnvGitHubToken, " process-token ")
	t.Setenv(EnvGitHubAPIToken, "")

	token, resolved := ResolveToken(nil)

	require.True(t, resolved)
	require.Equal(t, "process-token", token)
}
