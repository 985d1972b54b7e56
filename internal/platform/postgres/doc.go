// Package postgres implements the store interfaces on PostgreSQL via the
// pgx stdlib driver. Driver-level failures are translated to the sentinel
// errors in the store package by MapError; callers never see pg error
// codes.
package postgres
