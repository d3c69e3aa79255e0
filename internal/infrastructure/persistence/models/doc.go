// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel)
//   - purchase.go: purchase ledger headers, lines and matches
//   - ledger.go: nominal, cash book and VAT postings
//   - reference.go: suppliers, nominal accounts, VAT codes and cash books
package models
