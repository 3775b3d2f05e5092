package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/githubapi"
	"github.com/karmstrong/repokit/internal/githubauth"
	"github.com/karmstrong/repokit/internal/gitrepo"
	pathutils "github.com/karmstrong/repokit/internal/utils/path"
)

const (
	originRemoteNameConstant         = "origin"
	initialTagNameConstant           = "v0.1.0"
	conductContactEmailConstant      = "maintainers@example.com"
	directoryPermissionsConstant     = 0o755
	filePermissionsConstant          = 0o644
	serviceLoggerRequiredMessage     = "scaffold service requires a logger"
	serviceManagerRequiredMessage    = "scaffold service requires a repository manager"
	serviceOutputRequiredMessage     = "scaffold service requires an output writer"
	directoryResolveErrorTemplate    = "unable to resolve project directory: %w"
	directoryErrorTemplateConstant   = "%s: %s"
	directoryMissingMessageConstant  = "directory does not exist"
	notADirectoryMessageConstant     = "not a directory"
	fileWriteErrorTemplate           = "unable to create %s: %w"
	remoteURLInvalidErrorTemplate    = "invalid remote origin url: %w"
	repositoryEnsureErrorTemplate    = "github repository setup failed: %w"
	fileCreatedMessageTemplate       = "Created %s\n"
	fileSkippedMessageTemplate       = "%s exists, skipping\n"
	repositoryInitializedMessage     = "Initialized empty Git repository\n"
	repositoryAlreadyPresentMessage  = "Git repository already initialized\n"
	remoteAddedMessageTemplate       = "Added remote origin %s\n"
	remoteSkippedMessage             = "Remote origin already set or failed to add\n"
	initialCommitCreatedMessage      = "Created initial commit\n"
	initialTagCreatedMessageTemplate = "Tagged %s\n"
	dryRunFileMessageTemplate        = "dry-run: would create %s\n"
	dryRunInitMessageTemplate        = "dry-run: would initialize Git repository in %s\n"
	dryRunRemoteMessageTemplate      = "dry-run: would add remote origin %s\n"
	dryRunCommitMessageTemplate      = "dry-run: would create initial commit and tag %s\n"
	repositoryEnsuredLogMessage      = "github repository ensured"
	sensitiveDataDetectedLogMessage  = "sensitive data detected before commit"
	logFieldRepositoryConstant       = "repository"
	logFieldOutcomeConstant          = "outcome"
	logFieldDirectoryConstant        = "directory"
	logFieldFindingCountConstant     = "finding_count"
)

// Sentinel errors surfaced by the scaffold service.
var (
	ErrLoggerRequired            = errors.New(serviceLoggerRequiredMessage)
	ErrRepositoryManagerRequired = errors.New(serviceManagerRequiredMessage)
	ErrOutputWriterRequired      = errors.New(serviceOutputRequiredMessage)
)

// TargetDirectoryError indicates the scaffold target cannot be used as a project root.
type TargetDirectoryError struct {
	Path    string
	Message string
}

// Error describes why the target directory was rejected.
func (directoryError TargetDirectoryError) Error() string {
	return fmt.Sprintf(directoryErrorTemplateConstant, directoryError.Path, directoryError.Message)
}

// FilePlan names one file the scaffold run will produce.
type FilePlan struct {
	RelativePath  string
	TemplateName  string
	InlineContent string
}

// GitRepositoryManager performs the git operations required by scaffolding.
type GitRepositoryManager interface {
	InitializeRepository(executionContext context.Context, repositoryPath string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	StageAll(executionContext context.Context, repositoryPath string) error
	CreateCommit(executionContext context.Context, repositoryPath string, message string) error
	CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, message string) error
}

// RepositoryEnsurer guarantees a GitHub repository exists before a remote is added.
type RepositoryEnsurer interface {
	EnsureRepository(executionContext context.Context, slug githubapi.RepositorySlug) (githubapi.EnsureOutcome, error)
}

// RepositoryEnsurerFactory builds a RepositoryEnsurer for an optional access token.
type RepositoryEnsurerFactory func(executionContext context.Context, token string) RepositoryEnsurer

// Options captures a single scaffold invocation.
type Options struct {
	Directory         string
	RemoteURL         string
	GitHubRepository  string
	GitHubToken       string
	ProjectName       string
	Author            string
	CommitMessage     string
	IncludeBumpScript bool
	ManifestPath      string
	SkipCommit        bool
	DryRun            bool
}

// Service orchestrates repository initialization, file creation, and the initial commit.
type Service struct {
	logger         *zap.Logger
	manager        GitRepositoryManager
	ensurerFactory RepositoryEnsurerFactory
	renderer       *Renderer
	scanner        *SensitiveDataScanner
	homeExpander   *pathutils.HomeExpander
	output         io.Writer
	currentTime    func() time.Time
}

// NewService constructs a scaffold service with default collaborators.
func NewService(logger *zap.Logger, manager GitRepositoryManager, output io.Writer) (*Service, error) {
	return NewServiceWithEnsurerFactory(logger, manager, output, defaultRepositoryEnsurerFactory)
}

// NewServiceWithEnsurerFactory constructs a scaffold service with an injectable GitHub client factory.
func NewServiceWithEnsurerFactory(logger *zap.Logger, manager GitRepositoryManager, output io.Writer, ensurerFactory RepositoryEnsurerFactory) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerRequired
	}
	if manager == nil {
		return nil, ErrRepositoryManagerRequired
	}
	if output == nil {
		return nil, ErrOutputWriterRequired
	}
	if ensurerFactory == nil {
		ensurerFactory = defaultRepositoryEnsurerFactory
	}

	renderer, rendererError := NewRenderer()
	if rendererError != nil {
		return nil, rendererError
	}

	return &Service{
		logger:         logger,
		manager:        manager,
		ensurerFactory: ensurerFactory,
		renderer:       renderer,
		scanner:        NewSensitiveDataScanner(),
		homeExpander:   pathutils.NewHomeExpander(),
		output:         output,
		currentTime:    time.Now,
	}, nil
}

func defaultRepositoryEnsurerFactory(executionContext context.Context, token string) RepositoryEnsurer {
	return githubapi.NewClient(executionContext, token)
}

// Run scaffolds the project described by the provided options.
func (service *Service) Run(executionContext context.Context, options Options) error {
	repositoryPath, pathError := service.resolveDirectory(options.Directory)
	if pathError != nil {
		return pathError
	}

	filePlans, planError := service.buildFilePlans(options)
	if planError != nil {
		return planError
	}

	templateData := TemplateData{
		ProjectName:  options.ProjectName,
		Author:       options.Author,
		Year:         service.currentTime().Year(),
		ContactEmail: conductContactEmailConstant,
	}

	renderedFiles, renderError := service.renderFilePlans(filePlans, templateData)
	if renderError != nil {
		return renderError
	}

	remoteURL, userRemoteError := normalizeUserRemoteURL(options)
	if userRemoteError != nil {
		return userRemoteError
	}

	if options.DryRun {
		service.reportPlan(repositoryPath, options, remoteURL, filePlans)
		return nil
	}

	if len(options.GitHubRepository) > 0 {
		githubRemoteURL, remoteError := service.resolveGitHubRemoteURL(executionContext, options)
		if remoteError != nil {
			return remoteError
		}
		remoteURL = githubRemoteURL
	}

	if initError := service.initializeRepository(executionContext, repositoryPath); initError != nil {
		return initError
	}

	if len(remoteURL) > 0 {
		service.addOriginRemote(executionContext, repositoryPath, remoteURL)
	}

	if writeError := service.writeFiles(repositoryPath, filePlans, renderedFiles); writeError != nil {
		return writeError
	}

	if options.SkipCommit {
		return nil
	}

	return service.commitAndTag(executionContext, repositoryPath, options.CommitMessage)
}

func (service *Service) resolveDirectory(candidate string) (string, error) {
	resolved := service.homeExpander.Expand(candidate)
	if len(resolved) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(directoryResolveErrorTemplate, workingDirectoryError)
		}
		resolved = workingDirectory
	}

	absolutePath, absoluteError := filepath.Abs(resolved)
	if absoluteError != nil {
		return "", fmt.Errorf(directoryResolveErrorTemplate, absoluteError)
	}

	pathInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return "", TargetDirectoryError{Path: absolutePath, Message: directoryMissingMessageConstant}
		}
		return "", fmt.Errorf(directoryResolveErrorTemplate, statError)
	}
	if !pathInfo.IsDir() {
		return "", TargetDirectoryError{Path: absolutePath, Message: notADirectoryMessageConstant}
	}

	return absolutePath, nil
}

func (service *Service) buildFilePlans(options Options) ([]FilePlan, error) {
	if len(options.ManifestPath) > 0 {
		manifest, manifestError := LoadManifest(options.ManifestPath)
		if manifestError != nil {
			return nil, manifestError
		}
		return manifest.filePlans(), nil
	}

	filePlans := []FilePlan{
		{RelativePath: ".gitignore", TemplateName: TemplateGitignore},
		{RelativePath: "README.md", TemplateName: TemplateReadme},
		{RelativePath: "CHANGELOG.md", TemplateName: TemplateChangelog},
		{RelativePath: "requirements.txt", TemplateName: TemplateRequirements},
		{RelativePath: "LICENSE", TemplateName: TemplateLicense},
		{RelativePath: "CONTRIBUTING.md", TemplateName: TemplateContributing},
		{RelativePath: "CODE_OF_CONDUCT.md", TemplateName: TemplateCodeOfConduct},
		{RelativePath: filepath.Join("tests", "test_placeholder.py"), TemplateName: TemplateTestPlaceholder},
	}

	if options.IncludeBumpScript {
		filePlans = append(filePlans, FilePlan{RelativePath: "version_bumper.py", TemplateName: TemplateVersionBumper})
	}

	return filePlans, nil
}

func (service *Service) renderFilePlans(filePlans []FilePlan, templateData TemplateData) (map[string]string, error) {
	renderedFiles := make(map[string]string, len(filePlans))
	for _, filePlan := range filePlans {
		if len(filePlan.TemplateName) == 0 {
			renderedFiles[filePlan.RelativePath] = filePlan.InlineContent
			continue
		}

		renderedContent, renderError := service.renderer.Render(filePlan.TemplateName, templateData)
		if renderError != nil {
			return nil, renderError
		}
		renderedFiles[filePlan.RelativePath] = renderedContent
	}
	return renderedFiles, nil
}

// normalizeUserRemoteURL validates a user-supplied origin remote and renders it in canonical form.
func normalizeUserRemoteURL(options Options) (string, error) {
	if len(options.GitHubRepository) > 0 || len(options.RemoteURL) == 0 {
		return "", nil
	}

	parsedRemote, parseError := gitrepo.ParseRemoteURL(options.RemoteURL)
	if parseError != nil {
		return "", fmt.Errorf(remoteURLInvalidErrorTemplate, parseError)
	}
	return gitrepo.FormatRemoteURL(parsedRemote)
}

// resolveGitHubRemoteURL ensures the requested GitHub repository exists and
// returns the origin URL to configure.
func (service *Service) resolveGitHubRemoteURL(executionContext context.Context, options Options) (string, error) {
	slug, slugError := githubapi.ParseRepositorySlug(options.GitHubRepository)
	if slugError != nil {
		return "", slugError
	}

	token := options.GitHubToken
	if len(token) == 0 {
		token, _ = githubauth.ResolveToken(nil)
	}

	ensurer := service.ensurerFactory(executionContext, token)
	outcome, ensureError := ensurer.EnsureRepository(executionContext, slug)
	if ensureError != nil {
		return "", fmt.Errorf(repositoryEnsureErrorTemplate, ensureError)
	}

	service.logger.Info(
		repositoryEnsuredLogMessage,
		zap.String(logFieldRepositoryConstant, slug.String()),
		zap.String(logFieldOutcomeConstant, string(outcome)),
	)

	return gitrepo.BuildGitHubRemoteURL(slug.Owner, slug.Name)
}

func (service *Service) initializeRepository(executionContext context.Context, repositoryPath string) error {
	metadataPath := filepath.Join(repositoryPath, gitMetadataDirectoryConstant)
	if metadataInfo, statError := os.Stat(metadataPath); statError == nil && metadataInfo.IsDir() {
		fmt.Fprint(service.output, repositoryAlreadyPresentMessage)
		return nil
	}

	if initError := service.manager.InitializeRepository(executionContext, repositoryPath); initError != nil {
		return initError
	}

	fmt.Fprint(service.output, repositoryInitializedMessage)
	return nil
}

// addOriginRemote tolerates failures so reruns against configured repositories succeed.
func (service *Service) addOriginRemote(executionContext context.Context, repositoryPath string, remoteURL string) {
	if remoteError := service.manager.AddRemote(executionContext, repositoryPath, originRemoteNameConstant, remoteURL); remoteError != nil {
		fmt.Fprint(service.output, remoteSkippedMessage)
		return
	}
	fmt.Fprintf(service.output, remoteAddedMessageTemplate, remoteURL)
}

func (service *Service) writeFiles(repositoryPath string, filePlans []FilePlan, renderedFiles map[string]string) error {
	for _, filePlan := range filePlans {
		targetPath := filepath.Join(repositoryPath, filePlan.RelativePath)

		if _, statError := os.Stat(targetPath); statError == nil {
			fmt.Fprintf(service.output, fileSkippedMessageTemplate, targetPath)
			continue
		}

		if directoryError := os.MkdirAll(filepath.Dir(targetPath), directoryPermissionsConstant); directoryError != nil {
			return fmt.Errorf(fileWriteErrorTemplate, targetPath, directoryError)
		}

		if writeError := os.WriteFile(targetPath, []byte(renderedFiles[filePlan.RelativePath]), filePermissionsConstant); writeError != nil {
			return fmt.Errorf(fileWriteErrorTemplate, targetPath, writeError)
		}

		fmt.Fprintf(service.output, fileCreatedMessageTemplate, targetPath)
	}
	return nil
}

func (service *Service) commitAndTag(executionContext context.Context, repositoryPath string, commitMessage string) error {
	findings, scanError := service.scanner.Scan(repositoryPath)
	if scanError != nil {
		return scanError
	}
	if len(findings) > 0 {
		service.logger.Warn(
			sensitiveDataDetectedLogMessage,
			zap.String(logFieldDirectoryConstant, repositoryPath),
			zap.Int(logFieldFindingCountConstant, len(findings)),
		)
		return SensitiveDataError{Findings: findings}
	}

	if stageError := service.manager.StageAll(executionContext, repositoryPath); stageError != nil {
		return stageError
	}
	if commitError := service.manager.CreateCommit(executionContext, repositoryPath, commitMessage); commitError != nil {
		return commitError
	}
	fmt.Fprint(service.output, initialCommitCreatedMessage)

	if tagError := service.manager.CreateAnnotatedTag(executionContext, repositoryPath, initialTagNameConstant, commitMessage); tagError != nil {
		return tagError
	}
	fmt.Fprintf(service.output, initialTagCreatedMessageTemplate, initialTagNameConstant)

	return nil
}

// reportPlan previews the scaffold run without touching the filesystem, Git, or GitHub.
func (service *Service) reportPlan(repositoryPath string, options Options, userRemoteURL string, filePlans []FilePlan) {
	fmt.Fprintf(service.output, dryRunInitMessageTemplate, repositoryPath)

	switch {
	case len(options.GitHubRepository) > 0:
		if slug, slugError := githubapi.ParseRepositorySlug(options.GitHubRepository); slugError == nil {
			if remoteURL, urlError := gitrepo.BuildGitHubRemoteURL(slug.Owner, slug.Name); urlError == nil {
				fmt.Fprintf(service.output, dryRunRemoteMessageTemplate, remoteURL)
			}
		}
	case len(userRemoteURL) > 0:
		fmt.Fprintf(service.output, dryRunRemoteMessageTemplate, userRemoteURL)
	}

	for _, filePlan := range filePlans {
		fmt.Fprintf(service.output, dryRunFileMessageTemplate, filepath.Join(repositoryPath, filePlan.RelativePath))
	}

	if !options.SkipCommit {
		fmt.Fprintf(service.output, dryRunCommitMessageTemplate, initialTagNameConstant)
	}
}
