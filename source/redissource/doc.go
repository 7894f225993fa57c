// Package redissource provides a data source that reads values stored in Redis.
//
// The cache in front of it keeps every loaded value in memory, so Redis is read at most once
// per key for the lifetime of the cache, no matter how many callers ask for it.
package redissource
