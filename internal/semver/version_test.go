package semver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karmstrong/repokit/internal/semver"
)

const (
	parseCaseNameConstant           = "parses_plain_version"
	parseWhitespaceCaseNameConstant = "parses_surrounding_whitespace"
	parseShortCaseNameConstant      = "rejects_two_components"
	parseLongCaseNameConstant       = "rejects_four_components"
	parseAlphaCaseNameConstant      = "rejects_non_numeric_component"
	parseNegativeCaseNameConstant   = "rejects_negative_component"
	parseEmptyCaseNameConstant      = "rejects_empty_string"
)

func TestParse(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedVersion semver.Version
		expectError     bool
	}{
		{
			name:            parseCaseNameConstant,
			input:           "1.2.3",
			expectedVersion: semver.Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:            parseWhitespaceCaseNameConstant,
			input:           "  10.0.42\n",
			expectedVersion: semver.Version{Major: 10, Minor: 0, Patch: 42},
		},
		{
			name:        parseShortCaseNameConstant,
			input:       "1.2",
			expectError: true,
		},
		{
			name:        parseLongCaseNameConstant,
			input:       "1.2.3.4",
			expectError: true,
		},
		{
			name:        parseAlphaCaseNameConstant,
			input:       "1.two.3",
			expectError: true,
		},
		{
			name:        parseNegativeCaseNameConstant,
			input:       "1.-2.3",
			expectError: true,
		},
		{
			name:        parseEmptyCaseNameConstant,
			input:       "",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedVersion, parseError := semver.Parse(testCase.input)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				var typedError semver.ParseError
				require.ErrorAs(subtestInstance, parseError, &typedError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedVersion, parsedVersion)
		})
	}
}

func TestBump(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		segment         semver.Segment
		expectedVersion string
	}{
		{
			name:            "minor_bump_resets_patch",
			input:           "1.2.3",
			segment:         semver.SegmentMinor,
			expectedVersion: "1.3.0",
		},
		{
			name:            "patch_bump_increments_patch",
			input:           "1.2.3",
			segment:         semver.SegmentPatch,
			expectedVersion: "1.2.4",
		},
		{
			name:            "major_bump_resets_minor_and_patch",
			input:           "1.2.3",
			segment:         semver.SegmentMajor,
			expectedVersion: "2.0.0",
		},
		{
			name:            "patch_bump_from_zero",
			input:           "0.0.0",
			segment:         semver.SegmentPatch,
			expectedVersion: "0.0.1",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedVersion, parseError := semver.Parse(testCase.input)
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedVersion, parsedVersion.Bump(testCase.segment).String())
		})
	}
}

func TestParseSegment(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedSegment semver.Segment
		expectError     bool
	}{
		{
			name:            "accepts_patch",
			input:           "patch",
			expectedSegment: semver.SegmentPatch,
		},
		{
			name:            "normalizes_case_and_whitespace",
			input:           " Major ",
			expectedSegment: semver.SegmentMajor,
		},
		{
			name:        "rejects_unknown_segment",
			input:       "hotfix",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedSegment, parseError := semver.ParseSegment(testCase.input)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedSegment, parsedSegment)
		})
	}
}
