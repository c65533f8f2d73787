package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ekost/ekost/internal/audit"
	"github.com/ekost/ekost/internal/balance"
	"github.com/ekost/ekost/internal/payment"
	"github.com/ekost/ekost/internal/room"
	"github.com/ekost/ekost/internal/tenant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret = "test-secret"
	testJWTIssuer = "ekost-auth"

	testTenantID = "0191e8a0-0000-7000-8000-000000000001"
	testRoomID   = "0191e8a0-0000-7000-8000-0000000000a1"
)

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*tenant.Tenant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) GetActiveByRoom(ctx context.Context, roomID string) (*tenant.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTenantRepo) UpdateWithRoomStatus(ctx context.Context, t *tenant.Tenant, roomStatus map[string]string) error {
	args := m.Called(ctx, t, roomStatus)
	return args.Error(0)
}

func (m *mockTenantRepo) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id string) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRoomRepo) GetByNumber(ctx context.Context, number string) (*room.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRoomRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*room.Room, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*room.Room), args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRoomRepo) List(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*room.Room), args.Error(1)
}

func (m *mockRoomRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPaymentRepo) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) SumByTenant(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockPaymentRepo) SumByTenants(ctx context.Context, tenantIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tenantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

type recordingAuditLogger struct {
	events []audit.Event
}

func (l *recordingAuditLogger) Log(_ context.Context, event audit.Event) {
	l.events = append(l.events, event)
}

type testFixture struct {
	tenants  *mockTenantRepo
	rooms    *mockRoomRepo
	payments *mockPaymentRepo
	auditLog *recordingAuditLogger
	server   *httptest.Server
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		tenants:  new(mockTenantRepo),
		rooms:    new(mockRoomRepo),
		payments: new(mockPaymentRepo),
		auditLog: &recordingAuditLogger{},
	}

	roomService := room.NewService(f.rooms, f.auditLog)
	tenantService := tenant.NewService(f.tenants, f.rooms, f.auditLog)
	paymentService := payment.NewService(f.payments, f.tenants, f.auditLog, time.UTC)
	engine := balance.NewEngine(f.tenants, f.rooms, f.payments)

	h := NewHandler(tenantService, roomService, paymentService, engine, f.auditLog, Config{
		JWTSecret: testJWTSecret,
		JWTIssuer: testJWTIssuer,
	})
	router := NewRouter(h, NewRateLimiter(1000, 1000), RouterConfig{})

	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)

	return f
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func validToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"sub": "admin-1",
		"iss": testJWTIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func (f *testFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func activeTenantFixture() *tenant.Tenant {
	now := time.Now()
	roomID := testRoomID
	return &tenant.Tenant{
		ID:        testTenantID,
		Name:      "Budi Santoso",
		Phone:     "081234567890",
		RoomID:    &roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func occupiedRoomFixture() *room.Room {
	now := time.Now()
	return &room.Room{
		ID:          testRoomID,
		RoomNumber:  "A-01",
		RoomType:    "standard",
		MonthlyRent: decimal.RequireFromString("1500000"),
		Status:      room.StatusOccupied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TestPurpose: Validates the API surface rejects unauthenticated and badly
// authenticated requests.
// Scope: Integration Test (router and middleware, mocked stores)
// Security: signature, expiry and issuer are all enforced.
// Expected: 401 for no token, expired token and wrong issuer; health stays
// open.
// Test Case ID: HTTP-01
func TestHTTP_AuthRequired(t *testing.T) {
	f := newTestFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := signToken(t, jwt.MapClaims{
		"sub": "admin-1",
		"iss": testJWTIssuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	resp = f.do(t, http.MethodGet, "/api/v1/tenants", expired, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	wrongIssuer := signToken(t, jwt.MapClaims{
		"sub": "admin-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp = f.do(t, http.MethodGet, "/api/v1/tenants", wrongIssuer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestPurpose: Validates the single-tenant balance endpoint end to end,
// including the decimal string serialization of money fields.
// Scope: Integration Test
// Expected: 200 with monthlyRent, totalPayments, outstandingBalance and
// status fields as exact strings.
// Test Case ID: HTTP-02
func TestHTTP_GetBalance(t *testing.T) {
	f := newTestFixture(t)
	f.tenants.On("GetByID", mock.Anything, testTenantID).Return(activeTenantFixture(), nil)
	f.rooms.On("GetByID", mock.Anything, testRoomID).Return(occupiedRoomFixture(), nil)
	f.payments.On("SumByTenant", mock.Anything, testTenantID).Return(decimal.RequireFromString("800000"), nil)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/"+testTenantID+"/balance", validToken(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		TenantID           string `json:"tenant_id"`
		MonthlyRent        string `json:"monthly_rent"`
		TotalPayments      string `json:"total_payments"`
		OutstandingBalance string `json:"outstanding_balance"`
		Status             string `json:"status"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, testTenantID, body.TenantID)
	assert.Equal(t, "1500000", body.MonthlyRent)
	assert.Equal(t, "800000", body.TotalPayments)
	assert.Equal(t, "700000", body.OutstandingBalance)
	assert.Equal(t, balance.StatusUnpaid, body.Status)
}

// TestPurpose: Validates the error mapping of the balance endpoint: missing
// tenant, missing room assignment and a dangling room reference.
// Scope: Integration Test
// Expected: 404, 409 and 500 respectively; the 500 body carries no detail.
// Test Case ID: HTTP-03
func TestHTTP_GetBalance_ErrorMapping(t *testing.T) {
	f := newTestFixture(t)

	f.tenants.On("GetByID", mock.Anything, "missing").Return(nil, tenant.ErrTenantNotFound)

	now := time.Now()
	noRoom := &tenant.Tenant{ID: "homeless", Name: "No Room", Phone: "0812", CreatedAt: now, UpdatedAt: now}
	f.tenants.On("GetByID", mock.Anything, "homeless").Return(noRoom, nil)

	ghostRef := "ghost-room"
	dangling := &tenant.Tenant{ID: "dangling", Name: "Dangling", Phone: "0812", RoomID: &ghostRef, CreatedAt: now, UpdatedAt: now}
	f.tenants.On("GetByID", mock.Anything, "dangling").Return(dangling, nil)
	f.rooms.On("GetByID", mock.Anything, "ghost-room").Return(nil, room.ErrRoomNotFound)

	token := validToken(t)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/missing/balance", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/tenants/homeless/balance", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/tenants/dangling/balance", token, nil)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body["error"])
}

// TestPurpose: Validates the balances list view: batch computation, status
// filtering and the skipped list for tenants without rooms.
// Scope: Integration Test
// Expected: unpaid filter returns only unpaid tenants; the roomless tenant
// appears under skipped, not items.
// Test Case ID: HTTP-04
func TestHTTP_ListBalances_FilterAndSkipped(t *testing.T) {
	f := newTestFixture(t)
	now := time.Now()

	paidRoomID := "r-paid"
	unpaidRoomID := "r-unpaid"
	paid := &tenant.Tenant{ID: "t-paid", Name: "Paid", Phone: "0812", RoomID: &paidRoomID, CreatedAt: now, UpdatedAt: now}
	unpaid := &tenant.Tenant{ID: "t-unpaid", Name: "Unpaid", Phone: "0813", RoomID: &unpaidRoomID, CreatedAt: now, UpdatedAt: now}
	roomless := &tenant.Tenant{ID: "t-roomless", Name: "Roomless", Phone: "0814", CreatedAt: now, UpdatedAt: now}
	all := []*tenant.Tenant{paid, unpaid, roomless}

	f.tenants.On("List", mock.Anything, listBalancesCap, 0).Return(all, nil)
	f.tenants.On("Count", mock.Anything).Return(len(all), nil)
	f.tenants.On("GetByIDs", mock.Anything, []string{"t-paid", "t-unpaid", "t-roomless"}).Return(map[string]*tenant.Tenant{
		"t-paid": paid, "t-unpaid": unpaid, "t-roomless": roomless,
	}, nil)
	f.rooms.On("GetByIDs", mock.Anything, mock.Anything).Return(map[string]*room.Room{
		"r-paid":   {ID: "r-paid", RoomNumber: "A-01", MonthlyRent: decimal.RequireFromString("1000000"), Status: room.StatusOccupied},
		"r-unpaid": {ID: "r-unpaid", RoomNumber: "A-02", MonthlyRent: decimal.RequireFromString("1500000"), Status: room.StatusOccupied},
	}, nil)
	f.payments.On("SumByTenants", mock.Anything, []string{"t-paid", "t-unpaid", "t-roomless"}).Return(map[string]decimal.Decimal{
		"t-paid":   decimal.RequireFromString("1000000"),
		"t-unpaid": decimal.RequireFromString("200000"),
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/balances?status=unpaid", validToken(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []struct {
			TenantID string `json:"tenant_id"`
			Status   string `json:"status"`
		} `json:"items"`
		Total   int `json:"total"`
		Skipped []struct {
			TenantID string `json:"tenant_id"`
			Reason   string `json:"reason"`
		} `json:"skipped"`
	}
	decodeBody(t, resp, &body)

	require.Len(t, body.Items, 1)
	assert.Equal(t, "t-unpaid", body.Items[0].TenantID)
	assert.Equal(t, balance.StatusUnpaid, body.Items[0].Status)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Skipped, 1)
	assert.Equal(t, "t-roomless", body.Skipped[0].TenantID)
	assert.Equal(t, "no room assignment", body.Skipped[0].Reason)
}

// TestPurpose: Validates pagination input hardening: page and pageSize are
// clamped so offset arithmetic can never overflow or go negative.
// Scope: Unit Test
// Expected: defaults applied, pageSize capped at MaxPageSize, page capped at
// MaxPage even for the largest representable input.
// Test Case ID: HTTP-12
func TestHTTP_ParsePagination_Clamping(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants", nil)
	page, pageSize := parsePagination(req)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, pageSize)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tenants?page=-3&pageSize=0", nil)
	page, pageSize = parsePagination(req)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, pageSize)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tenants?page=9223372036854775807&pageSize=500", nil)
	page, pageSize = parsePagination(req)
	assert.Equal(t, MaxPage, page)
	assert.Equal(t, MaxPageSize, pageSize)
	assert.GreaterOrEqual(t, (page-1)*pageSize, 0)
}

// TestPurpose: Validates that a page far beyond the result set returns an
// empty 200 page instead of panicking on slice bounds.
// Scope: Integration Test
// Expected: 200 with empty items for the largest representable page number.
// Test Case ID: HTTP-13
func TestHTTP_ListBalances_PageBeyondRange(t *testing.T) {
	f := newTestFixture(t)
	now := time.Now()

	roomID := "r1"
	tn := &tenant.Tenant{ID: "t1", Name: "Budi", Phone: "0812", RoomID: &roomID, CreatedAt: now, UpdatedAt: now}
	f.tenants.On("List", mock.Anything, listBalancesCap, 0).Return([]*tenant.Tenant{tn}, nil)
	f.tenants.On("Count", mock.Anything).Return(1, nil)
	f.tenants.On("GetByIDs", mock.Anything, []string{"t1"}).Return(map[string]*tenant.Tenant{"t1": tn}, nil)
	f.rooms.On("GetByIDs", mock.Anything, mock.Anything).Return(map[string]*room.Room{
		"r1": {ID: "r1", RoomNumber: "A-01", MonthlyRent: decimal.RequireFromString("1500000"), Status: room.StatusOccupied},
	}, nil)
	f.payments.On("SumByTenants", mock.Anything, []string{"t1"}).Return(map[string]decimal.Decimal{}, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/balances?page=9223372036854775807&pageSize=50", validToken(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Items, 0)
	assert.Equal(t, 1, body.Total)
}

// TestPurpose: Validates rejection of an unknown status filter.
// Scope: Integration Test
// Expected: 400 before any store read.
// Test Case ID: HTTP-05
func TestHTTP_ListBalances_InvalidFilter(t *testing.T) {
	f := newTestFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/balances?status=overdue", validToken(t), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	f.tenants.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

// TestPurpose: Validates tenant creation over HTTP including request
// validation.
// Scope: Integration Test
// Expected: 201 with the created tenant; 400 on a malformed email.
// Test Case ID: HTTP-06
func TestHTTP_CreateTenant(t *testing.T) {
	f := newTestFixture(t)
	f.tenants.On("Create", mock.Anything, mock.AnythingOfType("*tenant.Tenant")).Return(nil)
	token := validToken(t)

	resp := f.do(t, http.MethodPost, "/api/v1/tenants", token, map[string]string{
		"name":  "Budi Santoso",
		"phone": "081234567890",
		"email": "budi@example.com",
	})
	var created tenant.Tenant
	decodeBody(t, resp, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Budi Santoso", created.Name)
	assert.NotEmpty(t, created.ID)

	resp = f.do(t, http.MethodPost, "/api/v1/tenants", token, map[string]string{
		"name":  "Budi Santoso",
		"phone": "081234567890",
		"email": "not-an-email",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestPurpose: Validates the move-out endpoint emits a transport-level audit
// event carrying the token subject and client address.
// Scope: Integration Test
// Expected: 200; one tenant_moved_out event with ActorID admin-1.
// Test Case ID: HTTP-07
func TestHTTP_MoveOutTenant_Audited(t *testing.T) {
	f := newTestFixture(t)
	f.tenants.On("GetByID", mock.Anything, testTenantID).Return(activeTenantFixture(), nil)
	f.tenants.On("UpdateWithRoomStatus", mock.Anything, mock.AnythingOfType("*tenant.Tenant"),
		map[string]string{testRoomID: room.StatusAvailable}).Return(nil)

	resp := f.do(t, http.MethodPost, "/api/v1/tenants/"+testTenantID+"/move-out", validToken(t), nil)
	var moved tenant.Tenant
	decodeBody(t, resp, &moved)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, moved.MovedOutAt)
	require.Len(t, f.auditLog.events, 1)
	event := f.auditLog.events[0]
	assert.Equal(t, audit.TypeTenantMovedOut, event.Type)
	assert.Equal(t, "admin-1", event.ActorID)
	assert.NotEmpty(t, event.IPAddress)
}

// TestPurpose: Validates payment recording over HTTP including the date
// format rule and the future-date rejection.
// Scope: Integration Test
// Expected: 201 for a past date, 400 for a bad format and a future date.
// Test Case ID: HTTP-08
func TestHTTP_RecordPayment(t *testing.T) {
	f := newTestFixture(t)
	f.tenants.On("GetByID", mock.Anything, testTenantID).Return(activeTenantFixture(), nil)
	f.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)
	token := validToken(t)
	path := "/api/v1/tenants/" + testTenantID + "/payments"

	resp := f.do(t, http.MethodPost, path, token, map[string]any{
		"amount":       "800000",
		"payment_date": time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		"note":         "transfer",
	})
	var p payment.Payment
	decodeBody(t, resp, &p)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("800000")))

	resp = f.do(t, http.MethodPost, path, token, map[string]any{
		"amount":       "800000",
		"payment_date": "13/01/2026",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, path, token, map[string]any{
		"amount":       "800000",
		"payment_date": time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestPurpose: Validates an empty payment history serializes as an empty
// array rather than null.
// Scope: Integration Test
// Expected: items is [] with total 0.
// Test Case ID: HTTP-09
func TestHTTP_ListPayments_Empty(t *testing.T) {
	f := newTestFixture(t)
	f.tenants.On("GetByID", mock.Anything, testTenantID).Return(activeTenantFixture(), nil)
	f.payments.On("ListByTenant", mock.Anything, testTenantID).Return(nil, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/tenants/"+testTenantID+"/payments", validToken(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.NotNil(t, body.Items)
	assert.Len(t, body.Items, 0)
	assert.Equal(t, 0, body.Total)
}

// TestPurpose: Validates occupancy conflicts surface as 409 on the room
// assignment endpoint.
// Scope: Integration Test
// Expected: 409 when the room already has another active tenant.
// Test Case ID: HTTP-10
func TestHTTP_AssignRoom_Conflict(t *testing.T) {
	f := newTestFixture(t)
	now := time.Now()
	applicant := &tenant.Tenant{ID: testTenantID, Name: "Budi", Phone: "0812", CreatedAt: now, UpdatedAt: now}
	occupant := &tenant.Tenant{ID: "other", Name: "Siti", Phone: "0813", CreatedAt: now, UpdatedAt: now}

	f.tenants.On("GetByID", mock.Anything, testTenantID).Return(applicant, nil)
	f.rooms.On("GetByID", mock.Anything, testRoomID).Return(occupiedRoomFixture(), nil)
	f.tenants.On("GetActiveByRoom", mock.Anything, testRoomID).Return(occupant, nil)

	resp := f.do(t, http.MethodPut, "/api/v1/tenants/"+testTenantID+"/room", validToken(t), map[string]string{
		"room_id": testRoomID,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// TestPurpose: Validates room deletion refuses occupied rooms over HTTP.
// Scope: Integration Test
// Expected: 409 with the occupancy message.
// Test Case ID: HTTP-11
func TestHTTP_DeleteRoom_Occupied(t *testing.T) {
	f := newTestFixture(t)
	f.rooms.On("GetByID", mock.Anything, testRoomID).Return(occupiedRoomFixture(), nil)

	resp := f.do(t, http.MethodDelete, "/api/v1/rooms/"+testRoomID, validToken(t), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	f.rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
