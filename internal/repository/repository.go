// Package repository persists users and repositories and answers the
// reporting queries over them. RepoMongo and UserMongo run against MongoDB;
// MemoryStore evaluates the same reports in process.
package repository

import (
	"errors"
	"time"
)

// Collection names shared by the Mongo repositories and the pipelines.
const (
	UsersCollection        = "users"
	RepositoriesCollection = "repositories"
)

// ErrDuplicateID mirrors the duplicate-key failure MongoDB raises when two
// seeded documents share an _id.
var ErrDuplicateID = errors.New("duplicate _id")

// millis rounds t down to the millisecond precision BSON dates carry.
func millis(t time.Time) time.Time {
	return t.Truncate(time.Millisecond).UTC()
}
