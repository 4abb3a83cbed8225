package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public GitLab instance.
const DefaultBaseURL = "https://gitlab.com"

// DefaultPerPage is the commit diff page size.
const DefaultPerPage = 20

// maxErrorBody bounds the response body kept in a StatusError.
const maxErrorBody = 500

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Project    string // numeric id or "group/project" path
	Delay      time.Duration
	PerPage    int
	HTTPClient *http.Client
}

// Client talks to the GitLab REST v4 API for one project.
type Client struct {
	api     *gitlab.Client
	project string
	delay   time.Duration
	perPage int
	sleep   func(context.Context, time.Duration) error
}

// NewClient creates a GitLab client. Failed requests are not retried and the
// courtesy delay is the only throttle.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}

	api, err := gitlab.NewClient(opts.Token,
		gitlab.WithBaseURL(baseURL),
		gitlab.WithHTTPClient(httpClient),
		gitlab.WithoutRetries(),
		gitlab.WithCustomLimiter(rate.NewLimiter(rate.Inf, 0)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client for %s: %w", baseURL, err)
	}

	return &Client{
		api:     api,
		project: opts.Project,
		delay:   opts.Delay,
		perPage: perPage,
		sleep:   sleepContext,
	}, nil
}

// StatusError is a non-2xx GitLab response.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// SearchIssues searches issue titles of the project in any state.
func (c *Client) SearchIssues(ctx context.Context, query string) ([]Issue, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	found, _, err := c.api.Issues.ListProjectIssues(c.project, &gitlab.ListProjectIssuesOptions{
		Search: gitlab.Ptr(query),
		In:     gitlab.Ptr("title"),
		Scope:  gitlab.Ptr("all"),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError("searching issues", err)
	}

	issues := make([]Issue, 0, len(found))
	for _, issue := range found {
		issues = append(issues, fromAPIIssue(issue))
	}
	return issues, nil
}

// CreateIssue opens a new issue.
func (c *Client) CreateIssue(ctx context.Context, opts CreateIssueOptions) (*Issue, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	created, _, err := c.api.Issues.CreateIssue(c.project, &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(opts.Title),
		Description: gitlab.Ptr(opts.Description),
		Labels:      labelOptions(opts.Labels),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError("creating issue", err)
	}
	issue := fromAPIIssue(created)
	return &issue, nil
}

// AddNote comments on the issue with the given project-scoped iid.
func (c *Client) AddNote(ctx context.Context, iid int, body string) (*Note, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	note, _, err := c.api.Notes.CreateIssueNote(c.project, iid, &gitlab.CreateIssueNoteOptions{
		Body: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(fmt.Sprintf("commenting on issue %d", iid), err)
	}
	return &Note{ID: note.ID, Body: note.Body}, nil
}

// UpdateIssue changes the state and labels of an issue in one call.
func (c *Client) UpdateIssue(ctx context.Context, iid int, opts UpdateIssueOptions) (*Issue, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	update := &gitlab.UpdateIssueOptions{
		AddLabels:    labelOptions(opts.AddLabels),
		RemoveLabels: labelOptions(opts.RemoveLabels),
	}
	if opts.StateEvent != "" {
		update.StateEvent = gitlab.Ptr(opts.StateEvent)
	}

	updated, _, err := c.api.Issues.UpdateIssue(c.project, iid, update, gitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(fmt.Sprintf("updating issue %d", iid), err)
	}
	issue := fromAPIIssue(updated)
	return &issue, nil
}

// CommitDiff returns one page (1-based) of the diff of commit sha. An empty
// slice means the page is past the end.
func (c *Client) CommitDiff(ctx context.Context, sha string, page int) ([]DiffEntry, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	diffs, _, err := c.api.Commits.GetCommitDiff(c.project, sha, &gitlab.GetCommitDiffOptions{
		ListOptions: gitlab.ListOptions{Page: page, PerPage: c.perPage},
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(fmt.Sprintf("reading diff page %d of %s", page, sha), err)
	}

	entries := make([]DiffEntry, 0, len(diffs))
	for _, diff := range diffs {
		entries = append(entries, DiffEntry{
			OldPath:     diff.OldPath,
			NewPath:     diff.NewPath,
			Diff:        diff.Diff,
			NewFile:     diff.NewFile,
			RenamedFile: diff.RenamedFile,
			DeletedFile: diff.DeletedFile,
		})
	}
	return entries, nil
}

// wait sleeps the courtesy delay before a call.
func (c *Client) wait(ctx context.Context) error {
	return c.sleep(ctx, c.delay)
}

func fromAPIIssue(issue *gitlab.Issue) Issue {
	if issue == nil {
		return Issue{}
	}
	return Issue{
		ID:       issue.ID,
		IID:      issue.IID,
		Title:    issue.Title,
		State:    issue.State,
		ClosedAt: issue.ClosedAt,
		Labels:   []string(issue.Labels),
		WebURL:   issue.WebURL,
	}
}

func labelOptions(labels []string) *gitlab.LabelOptions {
	if len(labels) == 0 {
		return nil
	}
	opts := gitlab.LabelOptions(labels)
	return &opts
}

// apiError turns an error response into a StatusError and prefixes
// transport failures with the operation.
func apiError(op string, err error) error {
	var resp *gitlab.ErrorResponse
	if !errors.As(err, &resp) || resp.Response == nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body := string(resp.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	statusErr := &StatusError{Status: resp.Response.StatusCode, Body: body}
	if req := resp.Response.Request; req != nil {
		statusErr.Method = req.Method
		statusErr.Path = req.URL.EscapedPath()
	}
	return statusErr
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
