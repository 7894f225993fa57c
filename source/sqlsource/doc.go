// Package sqlsource provides a data source that looks values up with a SQL query.
package sqlsource
