package replication

import "github.com/go-playground/validator/v10"

// validate is a package-level singleton per go-playground/validator's own
// recommendation: a *Validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

// validateRequest rejects structurally malformed inbound requests (bad Op,
// missing RequestID) before they reach an Applier. This is a distinct layer
// from the HTTP front-end's hand-written field checks (pkg/api): those
// preserve specific legacy error strings for the external JSON API, while
// this layer guards the internal wire protocol.
func validateRequest(req Request) error {
	return validate.Struct(req)
}
