// Package reconcile keeps one tracker issue per exported document in step
// with the git history of the output tree.
//
// For each file of a commit diff, Classify decides whether the document was
// added, deleted, renamed or modified. The Reconciler looks up the issue
// whose title is the document path and applies one transition:
//
//	added/modified, no issue     create, labels create + collection:<top dir>
//	added/modified, issue        comment with the diff, then reopen and drop
//	                             the delete label if either applies
//	deleted, no issue            nothing
//	deleted, issue, no label     label delete (and reopen when closed)
//	deleted, issue, labeled      comment only
//	renamed                      warning, no tracker call
//
// Run drives the Reconciler over every page of a commit diff, one entry at a
// time.
package reconcile
