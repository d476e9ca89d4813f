package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
	emailsvc "github.com/lvillarreal/educrm/services/email"
	logsvc "github.com/lvillarreal/educrm/services/logger"
	dummydb "github.com/lvillarreal/educrm/storage/database/dummy"
)

type testApp struct {
	server    Server
	usrSvc    *user.Service
	schoolSvc *school.Service
	tokenSvc  *TokenService
}

func newTestConfig() *core.Config {
	conf := &core.Config{
		AppName:   "EduCRM",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret-key",
	}
	conf.Server.JWTExpirationDelta = 24 * time.Hour
	return conf
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := newTestConfig()

	db := dummydb.NewDB()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(dummydb.NewUserRepository(db), mailSvc)
	schoolSvc := school.NewService(dummydb.NewSchoolRepository(db))
	tokenSvc := NewTokenService(conf)

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	server := NewServer(&Options{
		Conf:           conf,
		Logger:         logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
		UserSvc:        usrSvc,
		SchoolSvc:      schoolSvc,
		TokenSvc:       tokenSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &testApp{server: server, usrSvc: usrSvc, schoolSvc: schoolSvc, tokenSvc: tokenSvc}
}

func (app *testApp) createUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()
	usr, err := app.usrSvc.Create(context.Background(), user.NewUser{
		Email:    email,
		Password: "s3cret",
		Name:     "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return usr
}

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := app.tokenSvc.Generate(app.tokenSvc.Claims(usr))
	require.NoError(t, err)
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
