package customers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
	"github.com/joseph-ayodele/po-reader/internal/repository"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email  string
		want   string
		wantOK bool
	}{
		{email: "ap@acme.com", want: "acme.com", wantOK: true},
		{email: "  Orders@WWW.Acme-Foods.co.uk ", want: "acme-foods.co.uk", wantOK: true},
		{email: "no-at-sign.com", wantOK: false},
		{email: "a@b", wantOK: false},
		{email: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, ok := ExtractDomain(tt.email)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompanyNameFromDomain(t *testing.T) {
	tests := map[string]string{
		"acme.com":        "Acme",
		"acme-foods.com":  "Acme Foods",
		"www.BIG.box.net": "Big Box",
		"localhost":       "Localhost",
		"":                "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, CompanyNameFromDomain(in))
		})
	}
}

type fakeDirectory struct {
	customers []entity.Customer
	err       error
	domains   []string
}

func (f *fakeDirectory) SearchByDomain(_ context.Context, domain string) ([]entity.Customer, error) {
	f.domains = append(f.domains, domain)
	return f.customers, f.err
}

func TestMatcher_CompanyNameForEmail(t *testing.T) {
	tests := []struct {
		name string
		dir  *fakeDirectory
		want string
	}{
		{
			name: "company name wins",
			dir:  &fakeDirectory{customers: []entity.Customer{{CompanyName: "Acme Corporation", DisplayName: "Acme"}}},
			want: "Acme Corporation",
		},
		{
			name: "display name when no company",
			dir:  &fakeDirectory{customers: []entity.Customer{{DisplayName: "Acme Display"}}},
			want: "Acme Display",
		},
		{
			name: "skips nameless candidates",
			dir:  &fakeDirectory{customers: []entity.Customer{{Email: "x@acme.com"}, {Name: "Jane Doe"}}},
			want: "Jane Doe",
		},
		{
			name: "heuristic when directory is empty",
			dir:  &fakeDirectory{},
			want: "Acme Foods",
		},
		{
			name: "heuristic when directory fails",
			dir:  &fakeDirectory{err: errors.New("connection refused")},
			want: "Acme Foods",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.dir, quietLogger)
			got, err := m.CompanyNameForEmail(context.Background(), "ap@www.acme-foods.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"acme-foods.com"}, tt.dir.domains)
		})
	}
}

func TestMatcher_NoDirectoryAndBadEmail(t *testing.T) {
	m := NewMatcher(nil, quietLogger)

	got, err := m.CompanyNameForEmail(context.Background(), "billing@big-box.net")
	require.NoError(t, err)
	assert.Equal(t, "Big Box", got)

	got, err = m.CompanyNameForEmail(context.Background(), "not an email")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatcher_WithSQLiteDirectory(t *testing.T) {
	ctx := context.Background()
	db, err := repository.OpenSQLite(ctx, repository.InMemory, quietLogger)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	svc := NewService(repository.NewCustomerRepository(db, quietLogger), quietLogger)
	_, err = svc.CreateCustomer(ctx, CreateCustomerRequest{CompanyName: "Acme Corporation", Email: "ap@acme.com"})
	require.NoError(t, err)

	m := NewMatcher(repository.NewCustomerRepository(db, quietLogger), quietLogger)
	got, err := m.CompanyNameForEmail(ctx, "orders@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", got)
}

func TestService_CreateCustomer(t *testing.T) {
	ctx := context.Background()
	db, err := repository.OpenSQLite(ctx, repository.InMemory, quietLogger)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	svc := NewService(repository.NewCustomerRepository(db, quietLogger), quietLogger)

	t.Run("display name defaults to company", func(t *testing.T) {
		c, err := svc.CreateCustomer(ctx, CreateCustomerRequest{CompanyName: " Beta Foods ", GivenName: "Jo", FamilyName: "Ray"})
		require.NoError(t, err)
		assert.Equal(t, "Beta Foods", c.DisplayName)
		assert.Equal(t, "Jo Ray", c.Name)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.CreateCustomer(ctx, CreateCustomerRequest{Email: "ap@beta.com"})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := svc.CreateCustomer(ctx, CreateCustomerRequest{CompanyName: "Gamma", Email: "gamma.io"})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	list, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := svc.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
