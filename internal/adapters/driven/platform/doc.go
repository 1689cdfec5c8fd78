// Package platform is the REST client for the scanning platform's API.
// It implements the target/project listing, project update and feature
// flag ports. The client carries the shared auth token and proactive
// rate limiting for all concurrent sync tasks; retry and backoff policy
// is deliberately not implemented here.
package platform
