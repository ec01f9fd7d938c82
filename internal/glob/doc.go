// Package glob compiles the small wildcard vocabulary used for local-file
// patterns into path predicates.
//
// Only two wildcards exist: '*' matches any run of characters (including
// the empty run and the path separator) and '?' matches exactly one
// character. Every other character is literal, so ".env*" matches ".env"
// and ".env.local" but never "xenv". Matching is against the whole relative
// path as a flat string; there is no "**", no character classes and no
// brace expansion.
//
// Compilation is delegated to github.com/gobwas/glob with every literal run
// escaped, which keeps the vocabulary fixed even though the underlying
// engine understands more.
package glob
