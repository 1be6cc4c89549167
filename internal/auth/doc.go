// Package auth issues and validates the HMAC-signed JWTs that guard the
// /api routes.
package auth
