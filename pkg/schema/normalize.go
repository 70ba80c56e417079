package schema

import "github.com/Masterminds/semver"

// iteratorMarkerThreshold is the build version that introduced the
// x-cog-array-type marker. Schemas produced by older builds omit the marker
// on iterator outputs but mean the same thing.
const iteratorMarkerThreshold = "0.3.8"

// Normalize applies backwards-compatibility fixups to an Output schema in
// place: for builds below the marker threshold, a top-level array output
// with no explicit array-type marker is an iterator. Unparseable build
// versions are treated as at/above the threshold and left untouched.
// Normalize is idempotent.
func Normalize(out *Output, cogVersion string) {
	if out == nil || cogVersion == "" {
		return
	}

	v, err := semver.NewVersion(cogVersion)
	if err != nil {
		return
	}
	threshold := semver.MustParse(iteratorMarkerThreshold)
	if !v.LessThan(threshold) {
		return
	}

	if out.Type == "array" && out.ArrayType == "" {
		out.ArrayType = arrayTypeIterator
	}
}
