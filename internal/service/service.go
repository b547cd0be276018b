// Package service contains the business logic.
//
// It sits between the CLI and repository layers. It receives the
// answers collected by the menus, performs the operation and turns
// store outcomes (zero matches, duplicates) into errs.AppError values
// the menus know how to print.
package service
