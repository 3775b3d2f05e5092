package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestReadErrorTemplateConstant    = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant   = "unable to parse manifest %s: %w"
	manifestEmptyMessageTemplateConstant = "manifest %s declares no files"
	manifestEntryPathMissingConstant     = "manifest entry %d: path required"
	manifestEntryPathNotLocalConstant    = "manifest entry %s: path must stay inside the project directory"
	manifestEntrySourceMissingConstant   = "manifest entry %s: template or content required"
	manifestEntrySourceConflictConstant  = "manifest entry %s: template and content are mutually exclusive"
)

// Manifest describes a custom set of files to scaffold in place of the built-in plan.
type Manifest struct {
	Files []ManifestFile `yaml:"files"`
}

// ManifestFile declares a single scaffolded file sourced from a bundled template or inline content.
type ManifestFile struct {
	Path     string `yaml:"path"`
	Template string `yaml:"template"`
	Content  string `yaml:"content"`
}

// LoadManifest reads and validates a YAML scaffold manifest.
func LoadManifest(manifestPath string) (Manifest, error) {
	manifestData, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	var manifest Manifest
	if unmarshalError := yaml.Unmarshal(manifestData, &manifest); unmarshalError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, unmarshalError)
	}

	if len(manifest.Files) == 0 {
		return Manifest{}, fmt.Errorf(manifestEmptyMessageTemplateConstant, manifestPath)
	}

	for entryIndex, manifestFile := range manifest.Files {
		trimmedPath := strings.TrimSpace(manifestFile.Path)
		if len(trimmedPath) == 0 {
			return Manifest{}, fmt.Errorf(manifestEntryPathMissingConstant, entryIndex)
		}
		if !filepath.IsLocal(trimmedPath) {
			return Manifest{}, fmt.Errorf(manifestEntryPathNotLocalConstant, trimmedPath)
		}

		hasTemplate := len(strings.TrimSpace(manifestFile.Template)) > 0
		hasContent := len(manifestFile.Content) > 0
		switch {
		case hasTemplate && hasContent:
			return Manifest{}, fmt.Errorf(manifestEntrySourceConflictConstant, trimmedPath)
		case !hasTemplate && !hasContent:
			return Manifest{}, fmt.Errorf(manifestEntrySourceMissingConstant, trimmedPath)
		}
	}

	return manifest, nil
}

// filePlans converts manifest entries into scaffold file plans.
func (manifest Manifest) filePlans() []FilePlan {
	plans := make([]FilePlan, 0, len(manifest.Files))
	for _, manifestFile := range manifest.Files {
		plans = append(plans, FilePlan{
			RelativePath:  strings.TrimSpace(manifestFile.Path),
			TemplateName:  strings.TrimSpace(manifestFile.Template),
			InlineContent: manifestFile.Content,
		})
	}
	return plans
}
