// Package drafts implements wizard draft lifecycle management.
//
// A draft is the partially completed campaign wizard state: everything the
// user has picked so far, persisted between steps so an abandoned session
// can be resumed. The service layer owns validation and depends on the
// Repository interface defined in this package; it never imports from api/.
//
// Repository implementations live in repository/postgres/.
package drafts
