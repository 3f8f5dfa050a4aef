// Package httputil provides HTTP helpers shared by the upload client.
//
// The core primitive is [Retry], which retries transient failures with
// exponential backoff. Only errors wrapped in [RetryableError] trigger a
// retry; everything else fails fast. [RetryableStatus] classifies HTTP
// response codes so callers can decide which failures to wrap.
package httputil
