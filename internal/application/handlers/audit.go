package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/ports"
)

// AuditHandler reads the audit log.
type AuditHandler struct {
	log ports.AuditLog
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(log ports.AuditLog) *AuditHandler {
	return &AuditHandler{log: log}
}

// Recent returns up to limit entries, newest first. A limit of 0 returns all.
func (h *AuditHandler) Recent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	entries, err := h.log.ListAudit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit log: %w", err)
	}
	return entries, nil
}
