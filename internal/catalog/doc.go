// Package catalog persists video asset records in SQLite.
//
// The Store manages database connections, schema initialization, record and
// tag CRUD, tag-intersection filtering, and presence flags. Records capture
// a cleaned absolute path, an ordered tag list, and a free-form description.
//
// Tag filtering follows intersection semantics: a filter naming several tags
// matches only the records carrying all of them, and an empty filter matches
// everything.
//
// Treat this package as the single source of truth for catalog semantics;
// when you add record fields, update schema.sql and bump schemaVersion.
package catalog
