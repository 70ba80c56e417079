package types

import "strings"

// Ref identifies a model, optionally pinned to a version, in the
// "owner/name" or "owner/name:versionid" form.
type Ref struct {
	Owner   string
	Name    string
	Version string
}

// ParseRef parses a model reference string. Malformed references fail fast
// with a *RefError before any network call is made.
func ParseRef(ref string) (Ref, error) {
	name, version, _ := strings.Cut(ref, ":")

	owner, model, found := strings.Cut(name, "/")
	if !found {
		return Ref{}, &RefError{Ref: ref, Reason: "expected owner/name or owner/name:version"}
	}
	if owner == "" || model == "" {
		return Ref{}, &RefError{Ref: ref, Reason: "owner and name must be non-empty"}
	}
	if strings.Contains(model, "/") {
		return Ref{}, &RefError{Ref: ref, Reason: "name must not contain '/'"}
	}
	if strings.Contains(version, ":") {
		return Ref{}, &RefError{Ref: ref, Reason: "version must not contain ':'"}
	}
	if strings.Contains(ref, ":") && version == "" {
		return Ref{}, &RefError{Ref: ref, Reason: "version must be non-empty when ':' is present"}
	}

	return Ref{Owner: owner, Name: model, Version: version}, nil
}

// String returns the canonical reference string.
func (r Ref) String() string {
	s := r.Owner + "/" + r.Name
	if r.Version != "" {
		s += ":" + r.Version
	}
	return s
}
