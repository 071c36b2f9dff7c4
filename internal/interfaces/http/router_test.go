package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/purchasing"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/identifier"
	apphttp "github.com/jhoicas/retail-inventory/internal/interfaces/http"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

func call(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out), string(body))
}

func buildAuthApp() *fiber.App {
	gate := authz.NewGateway(nil)
	users := newMemUsers()
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "retail-test"}, nil, gate, nil)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(users, gate, nil),
		ProductUC: usecase.NewProductUseCase(newMemProducts(), gate, nil),
	})
	return app
}

func TestRouter_RegistroLoginYCierreDeSesion(t *testing.T) {
	app := buildAuthApp()

	resp := call(t, app, http.MethodPost, "/api/auth/register", "",
		`{"first_name":"Sam","last_name":"Lee","phone_number":"5551234567","email":"sam@x.com"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var user dto.UserResponse
	decode(t, resp, &user)
	assert.Equal(t, "EMPLOYEE", user.Role)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "",
		`{"first_name":"Sam","last_name":"Lee","phone_number":"5551234567","email":"sam@x.com"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/auth/exists?email=sam@x.com", "", "")
	var exists dto.ExistsResponse
	decode(t, resp, &exists)
	assert.True(t, exists.Exists)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"sam@x.com","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// sin password explícito el teléfono es la contraseña
	resp = call(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"sam@x.com","password":"5551234567"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = call(t, app, http.MethodGet, "/api/me", login.Token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)
	assert.Equal(t, "sam@x.com", me.Email)

	resp = call(t, app, http.MethodPost, "/api/products", login.Token, `{"product_name":"Milk","price":"2.99"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decodeError(t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/users", login.Token, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/logout", login.Token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/me", login.Token, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RegistroInvalido400(t *testing.T) {
	resp := call(t, buildAuthApp(), http.MethodPost, "/api/auth/register", "",
		`{"first_name":"Sam","last_name":"Lee","phone_number":"123","email":"sam@x.com"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func buildProductApp() *fiber.App {
	gate := authz.NewGateway(nil)
	authn := tokenAuth{
		"manager":  access.NewSession(&entity.User{ID: 1, Email: "m@x.com", Role: entity.RoleManager}, "j1"),
		"employee": access.NewSession(&entity.User{ID: 2, Email: "e@x.com", Role: entity.RoleEmployee}, "j2"),
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(newMemProducts(), gate, nil),
		Authenticator: authn,
	})
	return app
}

func TestRouter_ProductosVencidosYRebaja(t *testing.T) {
	app := buildProductApp()

	resp := call(t, app, http.MethodPost, "/api/products", "manager",
		`{"product_name":"Milk","expiration_date":"2024-01-01","markdown_date":"2023-12-15","quantity":10,"price":"2.99","category":"Dairy"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	decode(t, resp, &created)
	assert.Equal(t, "2024-01-01", created.ExpirationDate)

	var list []dto.ProductResponse
	resp = call(t, app, http.MethodGet, "/api/products/expired?date=2024-02-01", "employee", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Milk", list[0].Name)

	resp = call(t, app, http.MethodGet, "/api/products/expired?date=2023-12-01", "employee", "")
	decode(t, resp, &list)
	assert.Empty(t, list)

	resp = call(t, app, http.MethodGet, "/api/products/markdown?date=2023-12-10", "employee", "")
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	var report dto.ExpiredReportResponse
	resp = call(t, app, http.MethodGet, "/api/products/expired/report?date=2024-02-01", "employee", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &report)
	assert.Equal(t, 1, report.Count)

	resp = call(t, app, http.MethodGet, "/api/products/expired?date=01-02-2024", "employee", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProductosErrores(t *testing.T) {
	app := buildProductApp()
	resp := call(t, app, http.MethodPost, "/api/products", "manager", `{"product_name":"Bread","quantity":3,"price":"1.50"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	cases := []struct {
		name, method, path, token, body string
		want                            int
	}{
		{"id no numérico", http.MethodGet, "/api/products/abc", "manager", "", 400},
		{"inexistente", http.MethodGet, "/api/products/99", "manager", "", 404},
		{"cantidad negativa", http.MethodPatch, "/api/products/1/quantity", "manager", `{"quantity":-1}`, 400},
		{"cantidad ausente", http.MethodPatch, "/api/products/1/quantity", "manager", `{}`, 400},
		{"empleado no elimina", http.MethodDelete, "/api/products/1", "employee", "", 403},
		{"sin token", http.MethodGet, "/api/products", "", "", 401},
		{"cuerpo inválido", http.MethodPost, "/api/products", "manager", `{`, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}

	resp = call(t, app, http.MethodPatch, "/api/products/1/quantity", "manager", `{"quantity":7}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.Equal(t, 7, p.Quantity)

	resp = call(t, app, http.MethodDelete, "/api/products/1", "manager", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRouter_ErrorDePersistenciaQuedaEnLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	products := newMemProducts()
	products.listErr = fmt.Errorf("%w: list products: %w", domain.ErrPersistence, errors.New("connection reset by peer"))
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(products, authz.NewGateway(nil), nil),
		Authenticator: testAuth(),
		Log:           log,
	})

	resp := call(t, app, http.MethodGet, "/api/products", "manager-token", "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "PERSISTENCE", body.Code)
	assert.NotContains(t, body.Message, "connection reset by peer")

	logged := buf.String()
	assert.Contains(t, logged, "connection reset by peer")
	assert.Contains(t, logged, `"kind":"PERSISTENCE"`)
	assert.Contains(t, logged, `"path":"/api/products"`)
	assert.Contains(t, logged, `"component":"http"`)
}

func buildManagerApp() (*fiber.App, *memProducts) {
	gate := authz.NewGateway(nil)
	authn := tokenAuth{
		"manager": access.NewSession(&entity.User{ID: 1, Email: "m@x.com", Role: entity.RoleManager}, "j1"),
	}
	products := newMemProducts()
	orders := newMemOrders()
	ids := identifier.NewSeeded(7)
	orderUC := purchasing.NewOrderUseCase(directTx{products: products, orders: orders}, orders, products, ids, gate, nil, purchasing.Config{})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(products, gate, nil),
		StoreUC:       usecase.NewStoreUseCase(newMemStores(), ids, 0, gate, nil),
		OrderUC:       orderUC,
		Authenticator: authn,
	})
	return app, products
}

func TestRouter_ManagerNoCreaTiendas(t *testing.T) {
	app, _ := buildManagerApp()
	resp := call(t, app, http.MethodPost, "/api/stores", "manager",
		`{"store_name":"Centro","address":"Calle 1","city":"Bogotá","state":"DC","zip":11001,"phone":"6011234567","store_type":"retail"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decodeError(t, resp).Code)
}

func TestRouter_ManagerCreaOrdenDeCompra(t *testing.T) {
	app, products := buildManagerApp()
	resp := call(t, app, http.MethodPost, "/api/products", "manager", `{"product_name":"Milk","quantity":4,"price":"2.99"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders", "manager", `{"product_id":1,"quantity":12}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order dto.PurchaseOrderResponse
	decode(t, resp, &order)
	assert.Equal(t, int64(1), order.ProductID)
	assert.Equal(t, 12, order.Quantity)
	assert.Len(t, order.TrackingNumber, 10)

	// la orden no toca el stock
	p, err := products.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Quantity)
}
