package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	pythonFileSuffixConstant             = ".py"
	gitMetadataDirectoryConstant         = ".git"
	scannerWalkErrorTemplateConstant     = "unable to scan %s: %w"
	sensitiveDataMessageTemplateConstant = "potential sensitive data found in %d file(s): %s"
	findingSeparatorConstant             = ", "
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`api_key\s*=\s*["'].+["']`),
	regexp.MustCompile(`password\s*=\s*["'].+["']`),
}

// Finding records a sensitive value match inside a scanned file.
type Finding struct {
	FilePath string
	Pattern  string
}

// SensitiveDataError aborts commits when scanned files contain credential-like values.
type SensitiveDataError struct {
	Findings []Finding
}

// Error lists the offending files.
func (sensitiveError SensitiveDataError) Error() string {
	filePaths := make([]string, 0, len(sensitiveError.Findings))
	for _, finding := range sensitiveError.Findings {
		filePaths = append(filePaths, finding.FilePath)
	}
	return fmt.Sprintf(sensitiveDataMessageTemplateConstant, len(filePaths), strings.Join(filePaths, findingSeparatorConstant))
}

// SensitiveDataScanner inspects Python sources for credential-like assignments.
type SensitiveDataScanner struct{}

// NewSensitiveDataScanner constructs a scanner with the built-in pattern set.
func NewSensitiveDataScanner() *SensitiveDataScanner {
	return &SensitiveDataScanner{}
}

// Scan walks the repository and reports every Python file matching a sensitive pattern.
func (scanner *SensitiveDataScanner) Scan(repositoryPath string) ([]Finding, error) {
	var findings []Finding

	walkError := filepath.WalkDir(repositoryPath, func(candidatePath string, entry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return visitError
		}
		if entry.IsDir() {
			if entry.Name() == gitMetadataDirectoryConstant {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), pythonFileSuffixConstant) {
			return nil
		}

		fileContent, readError := os.ReadFile(candidatePath)
		if readError != nil {
			return readError
		}

		for _, pattern := range sensitivePatterns {
			if pattern.Match(fileContent) {
				findings = append(findings, Finding{FilePath: candidatePath, Pattern: pattern.String()})
				break
			}
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(scannerWalkErrorTemplateConstant, repositoryPath, walkError)
	}

	return findings, nil
}
