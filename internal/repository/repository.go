// Package repository appends lead rows to the configured store.
//
// Two drivers implement LeadStore: a pgx pool talking SQL directly and a
// PostgREST client for Supabase projects. Both are insert-only.
package repository

import (
	"context"

	"github.com/janmalik2800/Antigravity-web/internal/model"
)

// LeadsTable is the table every driver writes to.
const LeadsTable = "leads"

// LeadStore persists leads. Insert either stores exactly one row or returns an error.
type LeadStore interface {
	Insert(ctx context.Context, lead *model.Lead) error
}
