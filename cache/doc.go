// Package cache implements a JIT compilation cache: at most one
// compiler invocation per distinct call signature, with results and
// failures retained for the cache's whole lifetime.
//
// Lookups for never-seen signatures insert an empty entry under a
// brief global lock; the (possibly long) compilation itself runs under
// that entry's own lock, so unrelated signatures compile fully in
// parallel while concurrent callers of one signature serialize and
// share a single outcome. There is no eviction and no retry: a failed
// compilation is as permanent as a successful one.
package cache
