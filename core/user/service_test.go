package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/user"
	emailsvc "github.com/lvillarreal/educrm/services/email"
	dummydb "github.com/lvillarreal/educrm/storage/database/dummy"
)

func setup(t *testing.T) (*user.Service, *core.Config) {
	t.Helper()
	conf := &core.Config{AppName: "EduCRM", TestMode: true}
	repo := dummydb.NewUserRepository(dummydb.NewDB())
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf)), conf
}

func createUser(t *testing.T, svc *user.Service, email string, role user.Role, pwd string) user.User {
	t.Helper()
	usr, err := svc.Create(context.Background(), user.NewUser{
		Email:    email,
		Password: pwd,
		Name:     "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return usr
}

func Test_Service_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{
		Email:    "ana@uni.edu",
		Password: "s3cret",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.NotZero(t, usr.ID)
	assert.True(t, usr.IsActive)
	// an omitted role defaults to profesor
	assert.Equal(t, user.RoleProfesor, usr.Role)
	// the raw password is never stored
	assert.NotContains(t, string(usr.PasswordHash), "s3cret")
	assert.NoError(t, usr.CheckPassword("s3cret"))
}

func Test_Service_Create_sendsWelcomeEmail(t *testing.T) {
	conf := &core.Config{AppName: "EduCRM", TestMode: true}
	repo := dummydb.NewUserRepository(dummydb.NewDB())
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	svc := user.NewService(repo, mailSvc)

	_, err := svc.Create(context.Background(), user.NewUser{
		Email:    "ana@uni.edu",
		Password: "s3cret",
		Name:     "Ana",
	})
	require.NoError(t, err)

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@uni.edu", sent[0].To[0].Address)
}

func Test_Service_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	createUser(t, svc, "ana@uni.edu", user.RoleAdmin, "s3cret")

	t.Run("ok", func(t *testing.T) {
		usr, err := svc.Authenticate(ctx, "ana@uni.edu", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "ana@uni.edu", usr.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nadie@uni.edu", "s3cret")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ana@uni.edu", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := false
		usr, err := svc.GetByEmail(ctx, "ana@uni.edu")
		require.NoError(t, err)
		_, err = svc.Update(ctx, usr.ID, user.UpdateUser{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "ana@uni.edu", "s3cret")
		assert.ErrorIs(t, err, user.ErrAccountDisabled)
	})
}

func Test_Service_Update_partial(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	usr := createUser(t, svc, "ana@uni.edu", user.RoleAdmin, "s3cret")

	inactive := false
	got, err := svc.Update(ctx, usr.ID, user.UpdateUser{IsActive: &inactive})
	require.NoError(t, err)

	// omitted fields keep their stored values
	assert.Equal(t, "ana@uni.edu", got.Email)
	assert.Equal(t, "Test User", got.Name)
	assert.Equal(t, user.RoleAdmin, got.Role)
	assert.False(t, got.IsActive)

	stored, err := svc.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("s3cret"))

	t.Run("password change", func(t *testing.T) {
		_, err := svc.Update(ctx, usr.ID, user.UpdateUser{Password: "n3w-s3cret"})
		require.NoError(t, err)

		stored, err := svc.GetByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.NoError(t, stored.CheckPassword("n3w-s3cret"))
		assert.Error(t, stored.CheckPassword("s3cret"))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, user.UpdateUser{Name: "Nadie"})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func Test_Service_Delete(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	admin := createUser(t, svc, "root@uni.edu", user.RoleSuperadmin, "s3cret")
	victim := createUser(t, svc, "ana@uni.edu", user.RoleProfesor, "s3cret")

	// no identity can delete itself, role notwithstanding
	err := svc.Delete(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, user.ErrSelfDelete)
	_, err = svc.GetByID(ctx, admin.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin.ID, victim.ID))
	_, err = svc.GetByID(ctx, victim.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func Test_NewUser_Validate_duplicateEmail(t *testing.T) {
	svc, _ := setup(t)
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	createUser(t, svc, "ana@uni.edu", user.RoleProfesor, "s3cret")

	nu := user.NewUser{Email: "ana@uni.edu", Password: "pwd", Name: "Ana 2"}
	err := nu.Validate(validate, svc)
	require.Error(t, err)

	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func Test_NewUser_Validate_role(t *testing.T) {
	svc, _ := setup(t)
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	nu := user.NewUser{Email: "ana@uni.edu", Password: "pwd", Name: "Ana", Role: "root"}
	assert.Error(t, nu.Validate(validate, svc))

	nu.Role = user.RoleAsistente
	assert.NoError(t, nu.Validate(validate, svc))
}
