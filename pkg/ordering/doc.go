// Package ordering manages collections of records that carry an explicit
// integer sort key scoped to a collection, or to a parent record within a
// collection.
//
// A Manager appends new records at the end of their scope, rewrites the whole
// order of a scope from a caller-supplied permutation in one atomic store call,
// and projects active records for public consumption. Admin operations take an
// explicit auth.Context and are rejected before any store access when it is not
// authenticated. Writes to the same scope are serialized in-process.
package ordering
