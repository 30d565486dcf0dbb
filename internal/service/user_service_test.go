package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/auth"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/config"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

func newUserService(users *mockUserRepo, tickets *mockTicketRepo) *UserService {
	if users == nil {
		users = &mockUserRepo{}
	}
	if tickets == nil {
		tickets = &mockTicketRepo{}
	}
	return NewUserService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}, UserDependencies{UserRepo: users, TicketRepo: tickets})
}

func TestRegisterDefaultsRoleAndNormalizesEmail(t *testing.T) {
	users := &mockUserRepo{}
	svc := newUserService(users, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Agent@Example.COM ",
		FullName: "Pat Agent",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", user.Email)
	assert.Equal(t, domain.RoleSupportAgent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(nil, nil)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{FullName: "Pat", Password: "longenough"}},
		{"malformed email", RegisterInput{Email: "not-an-email", FullName: "Pat", Password: "longenough"}},
		{"missing name", RegisterInput{Email: "pat@example.com", Password: "longenough"}},
		{"short password", RegisterInput{Email: "pat@example.com", FullName: "Pat", Password: "short"}},
		{"unknown role", RegisterInput{Email: "pat@example.com", FullName: "Pat", Password: "longenough", Role: "wizard"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			assertDomainCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "pat@example.com", email)
			return &domain.User{ID: 12, Email: email, PasswordHash: hash, Role: domain.RoleTeamLead, IsActive: true}, nil
		},
	}
	svc := newUserService(users, nil)

	result, err := svc.Login(context.Background(), " Pat@Example.com ", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.ExpiresAt.IsZero())

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.Equal(t, domain.RoleTeamLead, claims.Role)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 12, Email: email, PasswordHash: hash, IsActive: true}, nil
		},
	}
	svc := newUserService(users, nil)

	_, err = svc.Login(context.Background(), "pat@example.com", "battery-staple")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	svc := newUserService(nil, nil)

	// Unknown accounts get the same error as bad passwords.
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestLoginDeactivatedAccountForbidden(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 12, Email: email, IsActive: false}, nil
		},
	}
	svc := newUserService(users, nil)

	_, err := svc.Login(context.Background(), "pat@example.com", "correct-horse")
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	hash, err := auth.HashPassword("old-password", bcrypt.MinCost)
	require.NoError(t, err)
	actor := &domain.User{ID: 12, PasswordHash: hash, Role: domain.RoleSupportAgent, IsActive: true}
	svc := newUserService(nil, nil)

	err = svc.ChangePassword(context.Background(), actor, "wrong-guess", "new-password")
	assertDomainCode(t, err, "UNAUTHORIZED")

	err = svc.ChangePassword(context.Background(), actor, "old-password", "new-password")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(actor.PasswordHash, "new-password"))
}

func TestListUsersAdminOnly(t *testing.T) {
	svc := newUserService(nil, nil)

	_, err := svc.List(context.Background(), activeUser(9, domain.RoleManager), repository.UserFilter{})
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestHardDeleteUserWithTicketsConflicts(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: true}, nil
		},
	}
	tickets := &mockTicketRepo{
		countForUserFunc: func(ctx context.Context, userID int64) (int64, error) {
			return 4, nil
		},
	}
	svc := newUserService(users, tickets)

	err := svc.HardDeleteUser(context.Background(), activeUser(1, domain.RoleAdmin), 12)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, int64(4), domainErr.Details["ticket_count"])
}

func TestHardDeleteUserWithoutTickets(t *testing.T) {
	deleted := false
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: true}, nil
		},
		hardDeleteFunc: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := newUserService(users, nil)

	require.NoError(t, svc.HardDeleteUser(context.Background(), activeUser(1, domain.RoleAdmin), 12))
	assert.True(t, deleted)
}

func TestSetActiveTogglesAccount(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: true}, nil
		},
	}
	svc := newUserService(users, nil)

	user, err := svc.SetActive(context.Background(), activeUser(1, domain.RoleAdmin), 12, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}
