// Package errs defines the application error taxonomy.
//
// Every outcome a command reports to the user that is not a success
// (not found, duplicate, bad input, store unreachable) travels as an
// *AppError so menus can print a consistent message and decide whether
// to continue.
package errs
