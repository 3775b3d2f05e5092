// Package semver parses and increments three-component semantic versions.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	versionComponentSeparatorConstant = "."
	expectedComponentCountConstant    = 3
	versionTemplateConstant           = "%d.%d.%d"
	parseErrorTemplateConstant        = "invalid semantic version %q: %s"
	malformedVersionMessageConstant   = "expected major.minor.patch"
	negativeComponentMessageConstant  = "components must be non-negative integers"
	unknownSegmentTemplateConstant    = "unknown version segment %q"
)

// Segment identifies which version component a bump targets.
type Segment string

// Supported segments.
const (
	SegmentMajor Segment = Segment("major")
	SegmentMinor Segment = Segment("minor")
	SegmentPatch Segment = Segment("patch")
)

// Version represents a major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseError reports an unparseable version string.
type ParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnknownSegmentError reports an unsupported bump segment name.
type UnknownSegmentError struct {
	Input string
}

// Error describes the unsupported segment.
func (segmentError UnknownSegmentError) Error() string {
	return fmt.Sprintf(unknownSegmentTemplateConstant, segmentError.Input)
}

// ParseSegment validates a textual segment name.
func ParseSegment(raw string) (Segment, error) {
	normalized := Segment(strings.ToLower(strings.TrimSpace(raw)))
	switch normalized {
	case SegmentMajor, SegmentMinor, SegmentPatch:
		return normalized, nil
	default:
		return "", UnknownSegmentError{Input: raw}
	}
}

// Parse converts a major.minor.patch string into a Version.
func Parse(raw string) (Version, error) {
	components := strings.Split(strings.TrimSpace(raw), versionComponentSeparatorConstant)
	if len(components) != expectedComponentCountConstant {
		return Version{}, ParseError{Input: raw, Message: malformedVersionMessageConstant}
	}

	parsedComponents := make([]int, 0, expectedComponentCountConstant)
	for _, component := range components {
		parsedComponent, conversionError := strconv.Atoi(component)
		if conversionError != nil {
			return Version{}, ParseError{Input: raw, Message: malformedVersionMessageConstant}
		}
		if parsedComponent < 0 {
			return Version{}, ParseError{Input: raw, Message: negativeComponentMessageConstant}
		}
		parsedComponents = append(parsedComponents, parsedComponent)
	}

	return Version{Major: parsedComponents[0], Minor: parsedComponents[1], Patch: parsedComponents[2]}, nil
}

// Bump returns the version advanced in the requested segment, resetting lower segments.
func (version Version) Bump(segment Segment) Version {
	switch segment {
	case SegmentMajor:
		return Version{Major: version.Major + 1}
	case SegmentMinor:
		return Version{Major: version.Major, Minor: version.Minor + 1}
	default:
		return Version{Major: version.Major, Minor: version.Minor, Patch: version.Patch + 1}
	}
}

// String renders the version in major.minor.patch form.
func (version Version) String() string {
	return fmt.Sprintf(versionTemplateConstant, version.Major, version.Minor, version.Patch)
}
