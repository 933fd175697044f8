package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"faturaapi.com/internal/api"
	"faturaapi.com/internal/auth"
	"faturaapi.com/internal/config"
	"faturaapi.com/internal/model"
	"faturaapi.com/internal/service"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Usuario{}))

	cfg := &config.Config{
		Server: config.ServerConfig{AppName: "FaturaAPI-test"},
		JWT:    config.JWTConfig{Secret: testSecret, ExpiryHours: 1},
	}

	users := service.NewUserService(db, cfg)
	app := api.NewServer(cfg)
	api.NewRouter(app, cfg, db, users).RegisterRoutes()

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func signupBody() map[string]string {
	return map[string]string{
		"nome":     "Maria Silva",
		"telefone": "11999990000",
		"email":    "maria@example.com",
		"password": "s3nha-forte",
	}
}

func approve(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Model(&model.Usuario{}).
		Where("email = ?", email).
		Update("status", "true").Error)
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Mensagem: Usuário cadastrado com Sucesso!", body)
}

func TestSignup_Duplicate(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Mensagem: O usuário com esse email já existe", body)
}

func TestSignup_MissingField(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	payload := signupBody()
	delete(payload, "telefone")

	resp, body := doJSON(t, app, "POST", "/api/usuarios/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Mensagem: Dados inválidos.", body)
}

func TestLogin_NotApproved(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Freshly registered users start with status "false"
	resp, body := doJSON(t, app, "POST", "/api/usuarios/login", "", map[string]string{
		"email":    "maria@example.com",
		"password": "s3nha-forte",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"mensagem":"Acesso não aprovado pelo administrador"}`, body)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cases := []map[string]string{
		{"email": "maria@example.com", "password": "senha-errada"},
		{"email": "ninguem@example.com", "password": "s3nha-forte"},
	}
	for _, payload := range cases {
		resp, body := doJSON(t, app, "POST", "/api/usuarios/login", "", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"mensagem":"Credenciais incorretas"}`, body)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	app, db := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	approve(t, db, "maria@example.com")

	resp, body := doJSON(t, app, "POST", "/api/usuarios/login", "", map[string]string{
		"email":    "maria@example.com",
		"password": "s3nha-forte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.NotEmpty(t, payload.Token)

	claims, err := auth.ParseToken(payload.Token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestGetMe(t *testing.T) {
	t.Parallel()
	app, db := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	approve(t, db, "maria@example.com")

	resp, body := doJSON(t, app, "POST", "/api/usuarios/login", "", map[string]string{
		"email":    "maria@example.com",
		"password": "s3nha-forte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))

	resp, body = doJSON(t, app, "GET", "/api/usuarios/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var me model.Usuario
	require.NoError(t, json.Unmarshal([]byte(body), &me))
	assert.Equal(t, "maria@example.com", me.Email)
	assert.Equal(t, "user", me.Role)

	// No token, no access
	resp, _ = doJSON(t, app, "GET", "/api/usuarios/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListUsers_AdminOnly(t *testing.T) {
	t.Parallel()
	app, db := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/usuarios/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	approve(t, db, "maria@example.com")

	// The bootstrap admin can list users
	resp, body := doJSON(t, app, "POST", "/api/usuarios/login", "", map[string]string{
		"email":    "admin@faturaapi.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var adminLogin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &adminLogin))

	resp, body = doJSON(t, app, "GET", "/api/usuarios", adminLogin.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []model.Usuario
	require.NoError(t, json.Unmarshal([]byte(body), &users))
	assert.Len(t, users, 2) // bootstrap admin + maria

	// A regular user is forbidden
	resp, body = doJSON(t, app, "POST", "/api/usuarios/login", "", map[string]string{
		"email":    "maria@example.com",
		"password": "s3nha-forte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var userLogin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &userLogin))

	resp, _ = doJSON(t, app, "GET", "/api/usuarios", userLogin.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
