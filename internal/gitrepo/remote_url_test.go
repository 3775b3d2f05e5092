package gitrepo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemoteURLVariants(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    RemoteURL
		expectError bool
	}{
		{
			name:     "https_with_git_suffix",
			input:    "https://github.com/acme/widget.git",
			expected: RemoteURL{Protocol: RemoteProtocolHTTPS, Host: "github.com", Owner: "acme", Repository: "widget"},
		},
		{
			name:     "scp_style_ssh",
			input:    "git@github.com:acme/widget.git",
			expected: RemoteURL{Protocol: RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widget"},
		},
		{
			name:     "ssh_protocol_prefix",
			input:    "ssh://git@github.com/acme/widget.git",
			expected: RemoteURL{Protocol: RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widget"},
		},
		{
			name:        "empty_input",
			input:       "   ",
			expectError: true,
		},
		{
			name:        "unsupported_protocol",
			input:       "ftp://github.com/acme/widget.git",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed, parseError := ParseRemoteURL(testCase.input)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, parsed)
		})
	}
}

func TestFormatRemoteURLRoundTrips(t *testing.T) {
	formatted, formatError := FormatRemoteURL(RemoteURL{Protocol: RemoteProtocolHTTPS, Host: "github.com", Owner: "acme", Repository: "widget"})
	require.NoError(t, formatError)
	require.Equal(t, "https://github.com/acme/widget.git", formatted)

	formatted, formatError = FormatRemoteURL(RemoteURL{Protocol: RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widget"})
	require.NoError(t, formatError)
	require.Equal(t, "git@github.com:acme/widget.git", formatted)
}

func TestBuildGitHubRemoteURL(t *testing.T) {
	remoteURL, buildError := BuildGitHubRemoteURL("acme", "widget")
	require.NoError(t, buildError)
	require.Equal(t, "https://github.com/acme/widget.git", remoteURL)

	_, buildError = BuildGitHubRemoteURL("", "widget")
	require.Error(t, buildError)
}
