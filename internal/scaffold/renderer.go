package scaffold

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateAssets embed.FS

const (
	templateDirectoryConstant           = "templates"
	templatePatternConstant             = "templates/*.tmpl"
	missingKeyOptionConstant            = "missingkey=error"
	templateParseErrorTemplateConstant  = "unable to parse project templates: %w"
	templateRenderErrorTemplateConstant = "unable to render template %s: %w"
	unknownTemplateTemplateConstant     = "unknown template %q"
)

// Template names bundled with the renderer.
const (
	TemplateGitignore       = "gitignore.tmpl"
	TemplateReadme          = "readme.md.tmpl"
	TemplateChangelog       = "changelog.md.tmpl"
	TemplateRequirements    = "requirements.txt.tmpl"
	TemplateLicense         = "license.tmpl"
	TemplateContributing    = "contributing.md.tmpl"
	TemplateCodeOfConduct   = "code_of_conduct.md.tmpl"
	TemplateTestPlaceholder = "test_placeholder.py.tmpl"
	TemplateVersionBumper   = "version_bumper.py.tmpl"
)

// TemplateData carries the values substituted into project templates.
type TemplateData struct {
	ProjectName  string
	Author       string
	Year         int
	ContactEmail string
}

// Renderer renders embedded project file templates with strict key checking.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	parsedTemplates, parseError := template.New(templateDirectoryConstant).
		Option(missingKeyOptionConstant).
		ParseFS(templateAssets, templatePatternConstant)
	if parseError != nil {
		return nil, fmt.Errorf(templateParseErrorTemplateConstant, parseError)
	}
	return &Renderer{templates: parsedTemplates}, nil
}

// Render executes the named template against the provided data.
func (renderer *Renderer) Render(templateName string, data TemplateData) (string, error) {
	targetTemplate := renderer.templates.Lookup(templateName)
	if targetTemplate == nil {
		return "", fmt.Errorf(unknownTemplateTemplateConstant, templateName)
	}

	var renderedContent strings.Builder
	if renderError := targetTemplate.Execute(&renderedContent, data); renderError != nil {
		return "", fmt.Errorf(templateRenderErrorTemplateConstant, templateName, renderError)
	}
	return renderedContent.String(), nil
}
