package translate

import "github.com/gobwas/glob"

// matchesAnyWildcard reports whether name matches at least one of the given
// glob patterns (project-away/project-keep/project-reorder wildcards).
// A pattern equal to name matches without compiling a glob; every other
// pattern is compiled and matched against name.
func matchesAnyWildcard(name string, patterns []string) (bool, error) {
	for _, p := range patterns {
		if p == name {
			return true, nil
		}
		g, err := glob.Compile(p)
		if err != nil {
			return false, TranslateError{Kind: "SchemaError", Message: "invalid wildcard pattern: " + p}
		}
		if g.Match(name) {
			return true, nil
		}
	}
	return false, nil
}
