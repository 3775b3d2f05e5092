// Package githubapi ensures remote GitHub repositories exist before scaffolding wires them up.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const (
	slugSeparatorConstant                   = "/"
	invalidSlugTemplateConstant             = "invalid repository reference %q: expected owner/name"
	repositoryAccessErrorTemplateConstant   = "unable to check repository %s: %v"
	repositoryCreationErrorTemplateConstant = "unable to create repository %s: %v"
	tokenRequiredMessageConstant            = "creating a repository requires an authentication token"
)

// RepositorySlug identifies a GitHub repository by owner and name.
type RepositorySlug struct {
	Owner string
	Name  string
}

// String renders the slug in owner/name form.
func (slug RepositorySlug) String() string {
	return slug.Owner + slugSeparatorConstant + slug.Name
}

// EnsureOutcome reports how EnsureRepository satisfied the request.
type EnsureOutcome string

// Ensure outcomes.
const (
	EnsureOutcomeExisting EnsureOutcome = EnsureOutcome("existing")
	EnsureOutcomeCreated  EnsureOutcome = EnsureOutcome("created")
)

// ErrTokenRequired indicates repository creation was requested without credentials.
var ErrTokenRequired = errors.New(tokenRequiredMessageConstant)

// InvalidSlugError reports a repository reference that is not owner/name shaped.
type InvalidSlugError struct {
	Input string
}

// Error describes the malformed reference.
func (slugError InvalidSlugError) Error() string {
	return fmt.Sprintf(invalidSlugTemplateConstant, slugError.Input)
}

// RepositoryAccessError wraps failures while checking repository existence.
type RepositoryAccessError struct {
	Slug  RepositorySlug
	Cause error
}

// Error describes the access failure.
func (accessError RepositoryAccessError) Error() string {
	return fmt.Sprintf(repositoryAccessErrorTemplateConstant, accessError.Slug, accessError.Cause)
}

// Unwrap exposes the underlying cause.
func (accessError RepositoryAccessError) Unwrap() error {
	return accessError.Cause
}

// RepositoryCreationError wraps failures while creating a repository.
type RepositoryCreationError struct {
	Slug  RepositorySlug
	Cause error
}

// Error describes the creation failure.
func (creationError RepositoryCreationError) Error() string {
	return fmt.Sprintf(repositoryCreationErrorTemplateConstant, creationError.Slug, creationError.Cause)
}

// Unwrap exposes the underlying cause.
func (creationError RepositoryCreationError) Unwrap() error {
	return creationError.Cause
}

// ParseRepositorySlug validates an owner/name repository reference.
func ParseRepositorySlug(raw string) (RepositorySlug, error) {
	trimmedRaw := strings.TrimSpace(raw)
	segments := strings.Split(trimmedRaw, slugSeparatorConstant)
	if len(segments) != 2 {
		return RepositorySlug{}, InvalidSlugError{Input: raw}
	}

	owner := strings.TrimSpace(segments[0])
	name := strings.TrimSpace(strings.TrimSuffix(segments[1], ".git"))
	if len(owner) == 0 || len(name) == 0 {
		return RepositorySlug{}, InvalidSlugError{Input: raw}
	}

	return RepositorySlug{Owner: owner, Name: name}, nil
}

// Client talks to the GitHub REST API for repository provisioning.
type Client struct {
	githubClient  *github.Client
	authenticated bool
}

// NewClient constructs a Client, authenticating with the provided token when present.
func NewClient(executionContext context.Context, token string) *Client {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return &Client{githubClient: github.NewClient(nil)}
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken})
	authenticatedHTTPClient := oauth2.NewClient(executionContext, tokenSource)
	return &Client{githubClient: github.NewClient(authenticatedHTTPClient), authenticated: true}
}

// NewClientFromGitHub wraps an existing go-github client, typically for tests.
func NewClientFromGitHub(githubClient *github.Client, authenticated bool) *Client {
	return &Client{githubClient: githubClient, authenticated: authenticated}
}

// RepositoryExists reports whether the referenced repository is reachable.
func (client *Client) RepositoryExists(executionContext context.Context, slug RepositorySlug) (bool, error) {
	_, response, lookupError := client.githubClient.Repositories.Get(executionContext, slug.Owner, slug.Name)
	if lookupError == nil {
		return true, nil
	}
	if response != nil && response.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, RepositoryAccessError{Slug: slug, Cause: lookupError}
}

// CreateRepository creates a public repository under the authenticated user.
func (client *Client) CreateRepository(executionContext context.Context, slug RepositorySlug) error {
	if !client.authenticated {
		return ErrTokenRequired
	}

	repositoryPayload := &github.Repository{
		Name:    github.String(slug.Name),
		Private: github.Bool(false),
	}
	_, _, creationError := client.githubClient.Repositories.Create(executionContext, "", repositoryPayload)
	if creationError != nil {
		return RepositoryCreationError{Slug: slug, Cause: creationError}
	}
	return nil
}

// EnsureRepository verifies the repository exists, creating it when missing and credentials allow.
func (client *Client) EnsureRepository(executionContext context.Context, slug RepositorySlug) (EnsureOutcome, error) {
	exists, existsError := client.RepositoryExists(executionContext, slug)
	if existsError != nil {
		return "", existsError
	}
	if exists {
		return EnsureOutcomeExisting, nil
	}

	if creationError := client.CreateRepository(executionContext, slug); creationError != nil {
		return "", creationError
	}
	return EnsureOutcomeCreated, nil
}
