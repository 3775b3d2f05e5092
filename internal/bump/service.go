package bump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/semver"
	pathutils "github.com/karmstrong/repokit/internal/utils/path"
)

const (
	pythonFileSuffixConstant      = ".py"
	versionPlaceholderConstant    = "{version}"
	tagNamePrefixConstant         = "v"
	serviceLoggerRequiredMessage  = "bump service requires a logger"
	serviceManagerRequiredMessage = "bump service requires a repository manager"
	serviceOutputRequiredMessage  = "bump service requires an output writer"
	patternCompileMessageConstant = "pattern does not compile"
	patternGroupMessageConstant   = "pattern requires a capture group for the version"
	patternErrorTemplateConstant  = "invalid version pattern %q: %s"
	projectResolveErrorTemplate   = "unable to resolve project root: %w"
	projectWalkErrorTemplate      = "unable to walk project %s: %w"
	fileRewriteErrorTemplate      = "unable to rewrite %s: %w"
	bumpedFileMessageTemplate     = "Bumping %s: %s -> %s\n"
	newVersionMessageTemplate     = "New version: %s\n"
	noChangeMessage               = "No version string found or no change needed.\n"
	dryRunCommitMessageTemplate   = "dry-run: would commit with message %q\n"
	dryRunTagMessageTemplate      = "dry-run: would create tag %s\n"
	commitCreatedMessageTemplate  = "Committed %q\n"
	tagCreatedMessageTemplate     = "Tagged %s\n"
	fileBumpedLogMessage          = "version bumped"
	logFieldFilePathConstant      = "file_path"
	logFieldOldVersionConstant    = "old_version"
	logFieldNewVersionConstant    = "new_version"
)

// Sentinel errors surfaced by the bump service.
var (
	ErrLoggerRequired            = errors.New(serviceLoggerRequiredMessage)
	ErrRepositoryManagerRequired = errors.New(serviceManagerRequiredMessage)
	ErrOutputWriterRequired      = errors.New(serviceOutputRequiredMessage)
)

// PatternError reports an unusable version search pattern.
type PatternError struct {
	Pattern string
	Message string
}

// Error describes the pattern failure.
func (patternError PatternError) Error() string {
	return fmt.Sprintf(patternErrorTemplateConstant, patternError.Pattern, patternError.Message)
}

// GitHistoryManager performs the git operations required after a version bump.
type GitHistoryManager interface {
	StageAll(executionContext context.Context, repositoryPath string) error
	CreateCommit(executionContext context.Context, repositoryPath string, message string) error
	CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, message string) error
}

// Options captures a single bump invocation.
type Options struct {
	ProjectPath         string
	Segment             semver.Segment
	Pattern             string
	Commit              bool
	CreateTag           bool
	MessageTemplate     string
	ExcludedDirectories []string
	DryRun              bool
}

// FileChange records one rewritten version occurrence.
type FileChange struct {
	FilePath   string
	OldVersion semver.Version
	NewVersion semver.Version
}

// Result summarizes a bump run.
type Result struct {
	Changes    []FileChange
	NewVersion semver.Version
	Changed    bool
}

// Service scans project files for version strings and advances them.
type Service struct {
	logger       *zap.Logger
	manager      GitHistoryManager
	homeExpander *pathutils.HomeExpander
	output       io.Writer
}

// NewService constructs a bump service.
func NewService(logger *zap.Logger, manager GitHistoryManager, output io.Writer) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerRequired
	}
	if manager == nil {
		return nil, ErrRepositoryManagerRequired
	}
	if output == nil {
		return nil, ErrOutputWriterRequired
	}

	return &Service{
		logger:       logger,
		manager:      manager,
		homeExpander: pathutils.NewHomeExpander(),
		output:       output,
	}, nil
}

// Run bumps versions across the project and optionally records the change in Git.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	projectPath, pathError := service.resolveProjectPath(options.ProjectPath)
	if pathError != nil {
		return Result{}, pathError
	}

	versionPattern, patternError := compileVersionPattern(options.Pattern)
	if patternError != nil {
		return Result{}, patternError
	}

	candidateFiles, walkError := service.collectFiles(projectPath, options.ExcludedDirectories)
	if walkError != nil {
		return Result{}, walkError
	}

	result := Result{}
	for _, candidateFile := range candidateFiles {
		change, changed, bumpError := service.bumpFile(candidateFile, versionPattern, options.Segment, options.DryRun)
		if bumpError != nil {
			return Result{}, bumpError
		}
		if !changed {
			continue
		}

		result.Changes = append(result.Changes, change)
		result.NewVersion = change.NewVersion
		result.Changed = true

		fmt.Fprintf(service.output, bumpedFileMessageTemplate, change.FilePath, change.OldVersion, change.NewVersion)
		service.logger.Info(
			fileBumpedLogMessage,
			zap.String(logFieldFilePathConstant, change.FilePath),
			zap.String(logFieldOldVersionConstant, change.OldVersion.String()),
			zap.String(logFieldNewVersionConstant, change.NewVersion.String()),
		)
	}

	if !result.Changed {
		fmt.Fprint(service.output, noChangeMessage)
		return result, nil
	}

	fmt.Fprintf(service.output, newVersionMessageTemplate, result.NewVersion)

	if options.Commit || options.CreateTag {
		if historyError := service.recordHistory(executionContext, projectPath, result.NewVersion, options); historyError != nil {
			return Result{}, historyError
		}
	}

	return result, nil
}

func (service *Service) resolveProjectPath(candidate string) (string, error) {
	resolved := service.homeExpander.Expand(candidate)
	if len(resolved) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(projectResolveErrorTemplate, workingDirectoryError)
		}
		resolved = workingDirectory
	}

	absolutePath, absoluteError := filepath.Abs(resolved)
	if absoluteError != nil {
		return "", fmt.Errorf(projectResolveErrorTemplate, absoluteError)
	}
	return absolutePath, nil
}

func compileVersionPattern(rawPattern string) (*regexp.Regexp, error) {
	compiledPattern, compileError := regexp.Compile(rawPattern)
	if compileError != nil {
		return nil, PatternError{Pattern: rawPattern, Message: patternCompileMessageConstant}
	}
	if compiledPattern.NumSubexp() < 1 {
		return nil, PatternError{Pattern: rawPattern, Message: patternGroupMessageConstant}
	}
	return compiledPattern, nil
}

func (service *Service) collectFiles(projectPath string, excludedDirectories []string) ([]string, error) {
	excluded := make(map[string]struct{}, len(excludedDirectories))
	for _, excludedDirectory := range excludedDirectories {
		excluded[excludedDirectory] = struct{}{}
	}

	var candidateFiles []string
	walkError := filepath.WalkDir(projectPath, func(candidatePath string, entry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return visitError
		}
		if entry.IsDir() {
			if _, isExcluded := excluded[entry.Name()]; isExcluded && candidatePath != projectPath {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(entry.Name(), pythonFileSuffixConstant) {
			candidateFiles = append(candidateFiles, candidatePath)
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(projectWalkErrorTemplate, projectPath, walkError)
	}

	return candidateFiles, nil
}

// bumpFile rewrites every pattern match in the file, replacing only the
// captured version text so custom patterns keep their surrounding context.
func (service *Service) bumpFile(filePath string, versionPattern *regexp.Regexp, segment semver.Segment, dryRun bool) (FileChange, bool, error) {
	fileContent, readError := os.ReadFile(filePath)
	if readError != nil {
		return FileChange{}, false, fmt.Errorf(fileRewriteErrorTemplate, filePath, readError)
	}

	originalText := string(fileContent)
	submatches := versionPattern.FindStringSubmatch(originalText)
	if submatches == nil {
		return FileChange{}, false, nil
	}

	oldVersion, versionError := semver.Parse(submatches[1])
	if versionError != nil {
		return FileChange{}, false, nil
	}
	newVersion := oldVersion.Bump(segment)

	rewrittenText := versionPattern.ReplaceAllStringFunc(originalText, func(match string) string {
		matchIndices := versionPattern.FindStringSubmatchIndex(match)
		if matchIndices == nil || len(matchIndices) < 4 || matchIndices[2] < 0 {
			return match
		}
		return match[:matchIndices[2]] + newVersion.String() + match[matchIndices[3]:]
	})
	if rewrittenText == originalText {
		return FileChange{}, false, nil
	}

	if !dryRun {
		fileInfo, statError := os.Stat(filePath)
		if statError != nil {
			return FileChange{}, false, fmt.Errorf(fileRewriteErrorTemplate, filePath, statError)
		}
		if writeError := os.WriteFile(filePath, []byte(rewrittenText), fileInfo.Mode().Perm()); writeError != nil {
			return FileChange{}, false, fmt.Errorf(fileRewriteErrorTemplate, filePath, writeError)
		}
	}

	return FileChange{FilePath: filePath, OldVersion: oldVersion, NewVersion: newVersion}, true, nil
}

func (service *Service) recordHistory(executionContext context.Context, projectPath string, newVersion semver.Version, options Options) error {
	message := strings.ReplaceAll(options.MessageTemplate, versionPlaceholderConstant, newVersion.String())
	tagName := tagNamePrefixConstant + newVersion.String()

	if options.DryRun {
		fmt.Fprintf(service.output, dryRunCommitMessageTemplate, message)
		if options.CreateTag {
			fmt.Fprintf(service.output, dryRunTagMessageTemplate, tagName)
		}
		return nil
	}

	if stageError := service.manager.StageAll(executionContext, projectPath); stageError != nil {
		return stageError
	}
	if commitError := service.manager.CreateCommit(executionContext, projectPath, message); commitError != nil {
		return commitError
	}
	fmt.Fprintf(service.output, commitCreatedMessageTemplate, message)

	if options.CreateTag {
		if tagError := service.manager.CreateAnnotatedTag(executionContext, projectPath, tagName, message); tagError != nil {
			return tagError
		}
		fmt.Fprintf(service.output, tagCreatedMessageTemplate, tagName)
	}

	return nil
}
