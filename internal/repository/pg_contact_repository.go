package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leadform/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	Save(ctx context.Context, c *model.Contact) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int, error)
	FindByID(ctx context.Context, id string) (*model.Contact, error)
	// UpdateStatus sets the status when status is non-nil and always refreshes
	// updated_at. Returns ErrNotFound when no row has the id.
	UpdateStatus(ctx context.Context, id string, status *model.ContactStatus) (*model.Contact, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	db PoolProvider
}

// NewPgContactRepository creates a PgContactRepository on top of db.
func NewPgContactRepository(db PoolProvider) *PgContactRepository {
	return &PgContactRepository{db: db}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactSelectCols = `id, name, email, company, service, message, status, created_at, updated_at`

func scanContact(scan func(...any) error) (*model.Contact, error) {
	var c model.Contact
	var company *string
	if err := scan(&c.ID, &c.Name, &c.Email, &company, &c.Service, &c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if company != nil {
		c.Company = *company
	}
	return &c, nil
}

// Save inserts a new contacts row and populates c.ID and timestamps
// from the RETURNING clause. A blank company is stored as NULL.
func (r *PgContactRepository) Save(ctx context.Context, c *model.Contact) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, company, service, message, status)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Company, c.Service, c.Message, string(c.Status),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// List returns one page of contacts, newest first, together with the total
// number of contacts matching the filter. Both queries go out in one batch.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	var filterArgs []any
	if opts.Status != "" {
		filterArgs = append(filterArgs, string(opts.Status))
		where = " WHERE status = $1"
	}

	listArgs := make([]any, 0, len(filterArgs)+2)
	listArgs = append(listArgs, filterArgs...)
	listArgs = append(listArgs, opts.Limit, opts.Offset)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM contacts%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		contactSelectCols, where, len(filterArgs)+1, len(filterArgs)+2,
	)

	batch := &pgx.Batch{}
	batch.Queue(listQuery, listArgs...)
	batch.Queue(`SELECT COUNT(*) FROM contacts`+where, filterArgs...)

	br := pool.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, 0, err
	}
	contacts := []*model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// FindByID returns the contact with the given id or ErrNotFound.
func (r *PgContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	row := pool.QueryRow(ctx, `SELECT `+contactSelectCols+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// UpdateStatus implements ContactRepository.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id string, status *model.ContactStatus) (*model.Contact, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	var newStatus any
	if status != nil {
		newStatus = string(*status)
	}
	row := pool.QueryRow(ctx,
		`UPDATE contacts
		 SET status = COALESCE($2::text, status), updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+contactSelectCols,
		id, newStatus,
	)
	c, err := scanContact(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}
