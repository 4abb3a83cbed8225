// Package tracker adapts the GitLab API client to the calls the reconciler
// needs: issue search, create, note and update, plus paged commit diffs.
//
// Every call first sleeps a fixed courtesy delay so runs stay well under the
// GitLab rate limits. The delay honours context cancellation. Failed calls
// are never retried.
package tracker
