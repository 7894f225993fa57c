// Package source provides DataSource adapters for the readthrough-cache library.
//
// MapSource serves a fixed set of values, DelayedSource slows another source down and
// CountingSource counts the lookups made on another source. Data sources backed by
// a database or Redis live in the sqlsource and redissource subpackages.
package source
