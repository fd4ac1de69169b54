package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/localpay/localpay/internal/model"
)

// SaveContact upserts a transfer counterpart keyed by CBU, refreshing
// the last-used timestamp.
func (s *SQLiteStorage) SaveContact(ctx context.Context, c model.Contact) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if c.CBU == "" || c.Name == "" {
		return fmt.Errorf("%w: cbu and name are required", ErrInvalidContact)
	}
	if c.LastUsed.IsZero() {
		c.LastUsed = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (cbu, name, email, last_used)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cbu) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			last_used = MAX(last_used, excluded.last_used)`,
		c.CBU, c.Name, c.Email, c.LastUsed)
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

// ListContacts returns saved contacts, most recently used first.
func (s *SQLiteStorage) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cbu, name, COALESCE(email, ''), last_used
		FROM contacts
		ORDER BY last_used DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.CBU, &c.Name, &c.Email, &c.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.ID = c.CBU
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// DeleteContact removes a saved contact by CBU.
func (s *SQLiteStorage) DeleteContact(ctx context.Context, cbu string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(cbu, "cbu"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE cbu = ?`, cbu)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
