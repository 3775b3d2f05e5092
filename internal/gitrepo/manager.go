package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/karmstrong/repokit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git repository manager requires an executor"
	repositoryPathRequiredMessage        = "repository path required"
	remoteNameRequiredMessage            = "remote name required"
	remoteURLRequiredMessage             = "remote url required"
	commitMessageRequiredMessage         = "commit message required"
	tagNameRequiredMessage               = "tag name required"
	gitInitSubcommandConstant            = "init"
	gitRemoteSubcommandConstant          = "remote"
	gitRemoteAddSubcommandConstant       = "add"
	gitAddSubcommandConstant             = "add"
	gitAddAllPathSpecConstant            = "."
	gitCommitSubcommandConstant          = "commit"
	gitTagSubcommandConstant             = "tag"
	gitAnnotateFlagConstant              = "-a"
	gitMessageFlagConstant               = "-m"
)

// Sentinel errors surfaced by RepositoryManager.
var (
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// GitExecutor exposes the subset of shell execution required by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository-level git operations through a GitExecutor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager bound to the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository runs git init inside the provided directory.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	trimmedPath, pathError := requireValue(repositoryPath, repositoryPathRequiredMessage)
	if pathError != nil {
		return pathError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitInitSubcommandConstant},
		WorkingDirectory: trimmedPath,
	})
	return executionError
}

// AddRemote registers a named remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	trimmedPath, pathError := requireValue(repositoryPath, repositoryPathRequiredMessage)
	if pathError != nil {
		return pathError
	}
	trimmedRemoteName, remoteNameError := requireValue(remoteName, remoteNameRequiredMessage)
	if remoteNameError != nil {
		return remoteNameError
	}
	trimmedRemoteURL, remoteURLError := requireValue(remoteURL, remoteURLRequiredMessage)
	if remoteURLError != nil {
		return remoteURLError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, trimmedRemoteName, trimmedRemoteURL},
		WorkingDirectory: trimmedPath,
	})
	return executionError
}

// StageAll stages every pending change in the repository.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	trimmedPath, pathError := requireValue(repositoryPath, repositoryPathRequiredMessage)
	if pathError != nil {
		return pathError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAddAllPathSpecConstant},
		WorkingDirectory: trimmedPath,
	})
	return executionError
}

// CreateCommit records a commit with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, message string) error {
	trimmedPath, pathError := requireValue(repositoryPath, repositoryPathRequiredMessage)
	if pathError != nil {
		return pathError
	}
	trimmedMessage, messageError := requireValue(message, commitMessageRequiredMessage)
	if messageError != nil {
		return messageError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitMessageFlagConstant, trimmedMessage},
		WorkingDirectory: trimmedPath,
	})
	return executionError
}

// CreateAnnotatedTag creates an annotated tag carrying the provided message.
func (manager *RepositoryManager) CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, message string) error {
	trimmedPath, pathError := requireValue(repositoryPath, repositoryPathRequiredMessage)
	if pathError != nil {
		return pathError
	}
	trimmedTagName, tagNameError := requireValue(tagName, tagNameRequiredMessage)
	if tagNameError != nil {
		return tagNameError
	}
	trimmedMessage, messageError := requireValue(message, commitMessageRequiredMessage)
	if messageError != nil {
		return messageError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitTagSubcommandConstant, gitAnnotateFlagConstant, trimmedTagName, gitMessageFlagConstant, trimmedMessage},
		WorkingDirectory: trimmedPath,
	})
	return executionError
}

func requireValue(candidate string, message string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return "", errors.New(message)
	}
	return trimmedCandidate, nil
}
