package middleware

import "errors"

var errNoVerifier = errors.New("no token verifier configured")
