// Package memstore provides an in-memory implementation of the store.Store interface.
//
// The store can be distributed across multiple buckets, each guarded by its own
// read/write mutex, so that writers of unrelated keys rarely contend. Keys are spread over
// the buckets by a hash function, which can be replaced with WithKeyHash.
//
// Values are write-once and live for the lifetime of the store: there is no eviction.
package memstore
