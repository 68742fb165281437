package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

var (
	customersTable  = customersSchema.Name
	customerColumns = customersSchema.columnNames()
)

type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	SearchByDomain(ctx context.Context, domain string) ([]entity.Customer, error)
	Count(ctx context.Context) (int, error)
}

type customerRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewCustomerRepository(db *DB, logger *slog.Logger) CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) (*entity.Customer, error) {
	v := common.NewValidator()
	v.Field("email", c.Email, common.Email, common.MaxLength(254))
	v.Field("company_name", c.CompanyName, common.MaxLength(255))
	v.Field("display_name", c.DisplayName, common.MaxLength(255))
	if strings.TrimSpace(c.CompanyName+c.DisplayName+c.Name) == "" {
		v.Field("company_name", c.CompanyName, common.Required)
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	out := *c
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	out.Email = strings.ToLower(strings.TrimSpace(out.Email))
	out.WebAddr = strings.ToLower(strings.TrimSpace(out.WebAddr))

	query, args := r.builder().
		Insert(customersTable).
		Columns(customerColumns...).
		Values(out.ID.String(), out.Name, out.DisplayName, out.CompanyName, out.GivenName,
			out.FamilyName, out.Email, out.WebAddr, out.CreatedAt.UnixNano()).
		Query()
	if err := r.db.Driver.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("failed to create customer", "company_name", out.CompanyName, "error", err)
		return nil, common.DatabaseError("create customer", err)
	}
	return &out, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	query, args := r.builder().
		Select(customerColumns...).
		From(entsql.Table(customersTable)).
		OrderBy("created_at", "id").
		Query()
	list, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to list customers", "error", err)
		return nil, err
	}
	out := make([]*entity.Customer, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

// SearchByDomain returns customers whose email is at domain or whose web
// address mentions it, oldest first.
func (r *customerRepository) SearchByDomain(ctx context.Context, domain string) ([]entity.Customer, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, common.InvalidInputErrorf("domain is required")
	}
	query, args := r.builder().
		Select(customerColumns...).
		From(entsql.Table(customersTable)).
		Where(entsql.Or(
			entsql.HasSuffix("email", "@"+domain),
			entsql.Contains("web_addr", domain),
		)).
		OrderBy("created_at", "id").
		Query()
	list, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to search customers", "domain", domain, "error", err)
		return nil, err
	}
	return list, nil
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	query, args := r.builder().
		Select(entsql.Count("*")).
		From(entsql.Table(customersTable)).
		Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return 0, common.DatabaseError("count customers", err)
	}
	defer rows.Close()

	n := 0
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, common.DatabaseError("count customers", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, common.DatabaseError("count customers", err)
	}
	return n, nil
}

func (r *customerRepository) query(ctx context.Context, query string, args []any) ([]entity.Customer, error) {
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return nil, common.DatabaseError("query customers", err)
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		var (
			c       entity.Customer
			id      string
			created int64
		)
		if err := rows.Scan(&id, &c.Name, &c.DisplayName, &c.CompanyName, &c.GivenName,
			&c.FamilyName, &c.Email, &c.WebAddr, &created); err != nil {
			return nil, common.DatabaseError("scan customer", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, common.DatabaseError("scan customer id", err)
		}
		c.ID = parsed
		c.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError("iterate customers", err)
	}
	return out, nil
}
