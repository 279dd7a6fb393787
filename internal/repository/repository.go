// Package repository handles all interactions with the database.
//
// It holds the SQL that fetches, persists and removes records, keeping
// query details away from the service layer. Errors are returned as the
// driver produced them (wrapped with context); translating them for the
// client is the job of sqlerr.
package repository
