package database

import "github.com/gocql/gocql"

// Sessioner is the slice of a gocql session the repositories use. Keeping it
// narrow lets tests substitute an in-memory session.
type Sessioner interface {
	Query(string, ...interface{}) *gocql.Query
	ExecuteBatch(*gocql.Batch) error
	Close()
}
