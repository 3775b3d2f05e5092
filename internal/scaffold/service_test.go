package scaffold_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/karmstrong/repokit/internal/githubapi"
	"github.com/karmstrong/repokit/internal/scaffold"
)

const (
	serviceProjectNameConstant    = "Sample Project"
	serviceAuthorNameConstant     = "Jordan Smith"
	serviceCommitMessageConstant  = "Initial project setup"
	serviceRepositorySlugConstant = "jordansmith/sample-project"
	serviceExpectedRemoteConstant = "https://github.com/jordansmith/sample-project.git"
)

var standardScaffoldFiles = []string{
	".gitignore",
	"README.md",
	"CHANGELOG.md",
	"requirements.txt",
	"LICENSE",
	"CONTRIBUTING.md",
	"CODE_OF_CONDUCT.md",
	filepath.Join("tests", "test_placeholder.py"),
}

type recordedGitCall struct {
	operation string
	arguments []string
}

type recordingGitManager struct {
	calls          []recordedGitCall
	addRemoteError error
}

func (manager *recordingGitManager) InitializeRepository(_ context.Context, repositoryPath string) error {
	manager.calls = append(manager.calls, recordedGitCall{operation: "init", arguments: []string{repositoryPath}})
	return nil
}

func (manager *recordingGitManager) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.calls = append(manager.calls, recordedGitCall{operation: "remote-add", arguments: []string{repositoryPath, remoteName, remoteURL}})
	return manager.addRemoteError
}

func (manager *recordingGitManager) StageAll(_ context.Context, repositoryPath string) error {
	manager.calls = append(manager.calls, recordedGitCall{operation: "stage", arguments: []string{repositoryPath}})
	return nil
}

func (manager *recordingGitManager) CreateCommit(_ context.Context, repositoryPath string, message string) error {
	manager.calls = append(manager.calls, recordedGitCall{operation: "commit", arguments: []string{repositoryPath, message}})
	return nil
}

func (manager *recordingGitManager) CreateAnnotatedTag(_ context.Context, repositoryPath string, tagName string, message string) error {
	manager.calls = append(manager.calls, recordedGitCall{operation: "tag", arguments: []string{repositoryPath, tagName, message}})
	return nil
}

func (manager *recordingGitManager) operations() []string {
	operations := make([]string, 0, len(manager.calls))
	for _, call := range manager.calls {
		operations = append(operations, call.operation)
	}
	return operations
}

type stubRepositoryEnsurer struct {
	outcome      githubapi.EnsureOutcome
	ensureError  error
	receivedSlug githubapi.RepositorySlug
}

func (ensurer *stubRepositoryEnsurer) EnsureRepository(_ context.Context, slug githubapi.RepositorySlug) (githubapi.EnsureOutcome, error) {
	ensurer.receivedSlug = slug
	return ensurer.outcome, ensurer.ensureError
}

func newScaffoldService(testInstance *testing.T, manager scaffold.GitRepositoryManager, ensurer scaffold.RepositoryEnsurer, output *bytes.Buffer) *scaffold.Service {
	testInstance.Helper()
	ensurerFactory := func(context.Context, string) scaffold.RepositoryEnsurer {
		return ensurer
	}
	service, serviceError := scaffold.NewServiceWithEnsurerFactory(zap.NewNop(), manager, output, ensurerFactory)
	require.NoError(testInstance, serviceError)
	return service
}

func baseScaffoldOptions(directory string) scaffold.Options {
	return scaffold.Options{
		Directory:     directory,
		ProjectName:   serviceProjectNameConstant,
		Author:        serviceAuthorNameConstant,
		CommitMessage: serviceCommitMessageConstant,
	}
}

func TestServiceRunFailsWhenDirectoryMissing(testInstance *testing.T) {
	missingDirectory := filepath.Join(testInstance.TempDir(), "does-not-exist")
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	runError := service.Run(context.Background(), baseScaffoldOptions(missingDirectory))
	require.Error(testInstance, runError)

	var directoryError scaffold.TargetDirectoryError
	require.ErrorAs(testInstance, runError, &directoryError)
	require.Equal(testInstance, missingDirectory, directoryError.Path)

	require.NoDirExists(testInstance, missingDirectory)
	require.Empty(testInstance, manager.calls)
}

func TestServiceRunDryRunFailsWhenDirectoryMissing(testInstance *testing.T) {
	missingDirectory := filepath.Join(testInstance.TempDir(), "does-not-exist")
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(missingDirectory)
	options.DryRun = true

	runError := service.Run(context.Background(), options)

	var directoryError scaffold.TargetDirectoryError
	require.ErrorAs(testInstance, runError, &directoryError)
	require.NoDirExists(testInstance, missingDirectory)
	require.Empty(testInstance, output.String())
}

func TestServiceRunRejectsFileAsTargetDirectory(testInstance *testing.T) {
	filePath := filepath.Join(testInstance.TempDir(), "occupied")
	require.NoError(testInstance, os.WriteFile(filePath, []byte("not a directory\n"), 0o644))

	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	runError := service.Run(context.Background(), baseScaffoldOptions(filePath))

	var directoryError scaffold.TargetDirectoryError
	require.ErrorAs(testInstance, runError, &directoryError)
	require.Contains(testInstance, runError.Error(), "not a directory")
	require.Empty(testInstance, manager.calls)
}

func TestServiceRunCreatesStandardFiles(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	runError := service.Run(context.Background(), baseScaffoldOptions(temporaryDirectory))
	require.NoError(testInstance, runError)

	for _, relativePath := range standardScaffoldFiles {
		require.FileExists(testInstance, filepath.Join(temporaryDirectory, relativePath))
	}
	require.NoFileExists(testInstance, filepath.Join(temporaryDirectory, "version_bumper.py"))

	readmeContent, readError := os.ReadFile(filepath.Join(temporaryDirectory, "README.md"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(readmeContent), "# "+serviceProjectNameConstant)

	require.Equal(testInstance, []string{"init", "stage", "commit", "tag"}, manager.operations())
	tagCall := manager.calls[len(manager.calls)-1]
	require.Equal(testInstance, "v0.1.0", tagCall.arguments[1])
	require.Equal(testInstance, serviceCommitMessageConstant, tagCall.arguments[2])

	require.Contains(testInstance, output.String(), "Initialized empty Git repository")
	require.Contains(testInstance, output.String(), "Created initial commit")
	require.Contains(testInstance, output.String(), "Tagged v0.1.0")
}

func TestServiceRunIncludesBumpScriptWhenRequested(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.IncludeBumpScript = true

	require.NoError(testInstance, service.Run(context.Background(), options))

	bumpScriptContent, readError := os.ReadFile(filepath.Join(temporaryDirectory, "version_bumper.py"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(bumpScriptContent), "def bump_version_in_file")
	require.Contains(testInstance, string(bumpScriptContent), serviceAuthorNameConstant)
}

func TestServiceRunSkipsExistingFiles(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	existingReadmePath := filepath.Join(temporaryDirectory, "README.md")
	existingContent := "# Handwritten readme\n"
	require.NoError(testInstance, os.WriteFile(existingReadmePath, []byte(existingContent), 0o644))

	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	require.NoError(testInstance, service.Run(context.Background(), baseScaffoldOptions(temporaryDirectory)))

	preservedContent, readError := os.ReadFile(existingReadmePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, existingContent, string(preservedContent))
	require.Contains(testInstance, output.String(), fmt.Sprintf("%s exists, skipping", existingReadmePath))
}

func TestServiceRunSkipsInitWhenRepositoryExists(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(temporaryDirectory, ".git"), 0o755))

	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	require.NoError(testInstance, service.Run(context.Background(), baseScaffoldOptions(temporaryDirectory)))

	require.NotContains(testInstance, manager.operations(), "init")
	require.Contains(testInstance, output.String(), "Git repository already initialized")
}

func TestServiceRunDryRunLeavesFilesystemUntouched(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.DryRun = true

	require.NoError(testInstance, service.Run(context.Background(), options))

	directoryEntries, readError := os.ReadDir(temporaryDirectory)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, directoryEntries)
	require.Empty(testInstance, manager.calls)

	require.Contains(testInstance, output.String(), "dry-run: would initialize Git repository in "+temporaryDirectory)
	require.Contains(testInstance, output.String(), "dry-run: would create "+filepath.Join(temporaryDirectory, "README.md"))
	require.Contains(testInstance, output.String(), "dry-run: would create initial commit and tag v0.1.0")
}

func TestServiceRunSkipCommitOmitsGitHistory(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.SkipCommit = true

	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Equal(testInstance, []string{"init"}, manager.operations())
	require.FileExists(testInstance, filepath.Join(temporaryDirectory, "README.md"))
}

func TestServiceRunAbortsCommitOnSensitiveData(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(temporaryDirectory, "settings.py"), []byte(sensitivePythonSourceConstant), 0o644))

	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	runError := service.Run(context.Background(), baseScaffoldOptions(temporaryDirectory))
	require.Error(testInstance, runError)

	var sensitiveError scaffold.SensitiveDataError
	require.ErrorAs(testInstance, runError, &sensitiveError)
	require.Len(testInstance, sensitiveError.Findings, 1)

	require.NotContains(testInstance, manager.operations(), "commit")
	require.NotContains(testInstance, manager.operations(), "tag")
}

func TestServiceRunConfiguresGitHubRemote(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	ensurer := &stubRepositoryEnsurer{outcome: githubapi.EnsureOutcomeCreated}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, ensurer, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.GitHubRepository = serviceRepositorySlugConstant
	options.GitHubToken = "test-token"

	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Equal(testInstance, serviceRepositorySlugConstant, ensurer.receivedSlug.String())
	require.Contains(testInstance, manager.operations(), "remote-add")
	for _, call := range manager.calls {
		if call.operation == "remote-add" {
			require.Equal(testInstance, "origin", call.arguments[1])
			require.Equal(testInstance, serviceExpectedRemoteConstant, call.arguments[2])
		}
	}
	require.Contains(testInstance, output.String(), "Added remote origin "+serviceExpectedRemoteConstant)
}

func TestServiceRunNormalizesUserRemote(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.RemoteURL = "https://github.com/jordansmith/sample-project"

	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Contains(testInstance, manager.operations(), "remote-add")
	for _, call := range manager.calls {
		if call.operation == "remote-add" {
			require.Equal(testInstance, "origin", call.arguments[1])
			require.Equal(testInstance, serviceExpectedRemoteConstant, call.arguments[2])
		}
	}
}

func TestServiceRunRejectsMalformedUserRemote(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.RemoteURL = "not-a-remote"

	runError := service.Run(context.Background(), options)
	require.Error(testInstance, runError)
	require.Contains(testInstance, runError.Error(), "invalid remote origin url")
	require.Empty(testInstance, manager.calls)

	directoryEntries, readError := os.ReadDir(temporaryDirectory)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, directoryEntries)
}

func TestServiceRunToleratesRemoteAddFailure(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{addRemoteError: errors.New("remote origin already exists")}
	ensurer := &stubRepositoryEnsurer{outcome: githubapi.EnsureOutcomeExisting}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, ensurer, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.GitHubRepository = serviceRepositorySlugConstant
	options.GitHubToken = "test-token"

	require.NoError(testInstance, service.Run(context.Background(), options))
	require.Contains(testInstance, output.String(), "Remote origin already set or failed to add")
}

func TestServiceRunFailsWhenRepositoryEnsureFails(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manager := &recordingGitManager{}
	ensurer := &stubRepositoryEnsurer{ensureError: errors.New("boom")}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, ensurer, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.GitHubRepository = serviceRepositorySlugConstant
	options.GitHubToken = "test-token"

	runError := service.Run(context.Background(), options)
	require.Error(testInstance, runError)
	require.Contains(testInstance, runError.Error(), "github repository setup failed")
	require.Empty(testInstance, manager.calls)
}

func TestServiceRunUsesManifestFilePlan(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manifestPath := writeManifestFile(testInstance, validManifestContentConstant)

	manager := &recordingGitManager{}
	output := &bytes.Buffer{}
	service := newScaffoldService(testInstance, manager, nil, output)

	options := baseScaffoldOptions(temporaryDirectory)
	options.ManifestPath = manifestPath

	require.NoError(testInstance, service.Run(context.Background(), options))

	require.FileExists(testInstance, filepath.Join(temporaryDirectory, ".gitignore"))
	require.FileExists(testInstance, filepath.Join(temporaryDirectory, "docs", "NOTES.md"))
	require.NoFileExists(testInstance, filepath.Join(temporaryDirectory, "README.md"))

	notesContent, readError := os.ReadFile(filepath.Join(temporaryDirectory, "docs", "NOTES.md"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(notesContent), "Internal notes.")
}
