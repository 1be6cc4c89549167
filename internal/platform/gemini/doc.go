// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a generation.Prompt
// into a genai GenerateContent request and the response back into plain text,
// without exposing the details of the external service to the documenter.
//
// Key behaviour:
//
//  1. Requests are throttled by a token bucket sized from requests_per_minute.
//  2. Transient failures (network errors, 408, 429 and 5xx responses) are
//     retried with exponential backoff and jitter, up to max_retries times.
//  3. Safety blocks and empty responses are permanent and returned at once.
//  4. Every error wraps one of the errors declared in package generation.
package gemini
