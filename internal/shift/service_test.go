package shift

import (
	"testing"
	"time"

	"mastercheffpdv-backend/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	findByNameResults []*models.Shift
	findByNameErr     error
	findByNameCalls   int

	openShift     *models.Shift
	findOpenErr   error
	findOpenCalls int

	createErr   error
	createCalls int
	created     *models.Shift

	orders      []models.Order
	ordersErr   error
	ordersCalls int

	closedID uint
	closedAt time.Time
	closeErr error
}

func (s *stubStore) FindByName(name string) (*models.Shift, error) {
	s.findByNameCalls++
	if s.findByNameErr != nil {
		return nil, s.findByNameErr
	}
	if len(s.findByNameResults) == 0 {
		return nil, nil
	}
	res := s.findByNameResults[0]
	s.findByNameResults = s.findByNameResults[1:]
	return res, nil
}

func (s *stubStore) FindOpen() (*models.Shift, error) {
	s.findOpenCalls++
	return s.openShift, s.findOpenErr
}

func (s *stubStore) Create(sh *models.Shift) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	sh.ID = 1
	s.created = sh
	return nil
}

func (s *stubStore) Close(id uint, at time.Time) error {
	if s.closeErr != nil {
		return s.closeErr
	}
	s.closedID = id
	s.closedAt = at
	s.openShift = nil
	return nil
}

func (s *stubStore) OrdersForSettlement(shiftID uint) ([]models.Order, error) {
	s.ordersCalls++
	return s.orders, s.ordersErr
}

// 2024-12-25 15:00 em São Paulo
var fixedNow = time.Date(2024, 12, 25, 15, 0, 0, 0, defaultLocation)

func newTestService(store *stubStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10,50", "10.5", true},
		{"10.50", "10.5", true},
		{"0", "0", true},
		{"  250 ", "250", true},
		{"0,00", "0", true},
		{"", "", false},
		{"abc", "", false},
		{"-5", "", false},
		{"-0,01", "", false},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if !tc.ok {
			require.ErrorIs(t, err, ErrInvalidAmount, "entrada %q", tc.in)
			continue
		}
		require.NoError(t, err, "entrada %q", tc.in)
		require.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"entrada %q: esperado %s, veio %s", tc.in, tc.want, got)
	}
}

func TestShiftName(t *testing.T) {
	require.Equal(t, "25/12/24", shiftName(fixedNow, defaultLocation))

	// 01:00 UTC do dia 2 ainda é dia 1 em São Paulo
	utc := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	require.Equal(t, "01/01/24", shiftName(utc, defaultLocation))
}

func TestOpen_StoresParsedAmount(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)

	sh, err := svc.Open(7, "10,50")
	require.NoError(t, err)
	require.NotNil(t, sh)

	require.Equal(t, "25/12/24", sh.Name)
	require.Equal(t, models.ShiftStatusOpen, sh.Status)
	require.Equal(t, uint(7), sh.OpenedBy)
	require.True(t, sh.InitialFloat.Equal(decimal.RequireFromString("10.5")))
	require.NotNil(t, store.created)
}

func TestOpen_InvalidAmountTouchesNothing(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "10,5,0"} {
		store := &stubStore{}
		svc := newTestService(store)

		_, err := svc.Open(7, in)
		require.ErrorIs(t, err, ErrInvalidAmount, "entrada %q", in)
		require.Zero(t, store.findByNameCalls, "entrada %q", in)
		require.Zero(t, store.createCalls, "entrada %q", in)
	}
}

func TestOpen_DuplicateFromPreCheck(t *testing.T) {
	store := &stubStore{
		findByNameResults: []*models.Shift{
			{ID: 2, Name: "25/12/24", Status: models.ShiftStatusClosed},
		},
	}
	svc := newTestService(store)

	_, err := svc.Open(7, "50")
	var dup *DuplicateShiftError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, models.ShiftStatusClosed, dup.Status)
	require.Zero(t, store.createCalls, "pré-checagem deve impedir o insert")
}

func TestOpen_DuplicateFromUniqueViolation(t *testing.T) {
	// A pré-checagem não vê nada, o insert bate no índice único e a
	// releitura encontra o caixa do outro operador.
	store := &stubStore{
		findByNameResults: []*models.Shift{
			nil,
			{ID: 2, Name: "25/12/24", Status: models.ShiftStatusOpen},
		},
		createErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation},
	}
	svc := newTestService(store)

	_, err := svc.Open(7, "50")
	var dup *DuplicateShiftError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, models.ShiftStatusOpen, dup.Status)
	require.Equal(t, 1, store.createCalls)
}

func TestRequestClose_RequiresAdmin(t *testing.T) {
	store := &stubStore{
		openShift: &models.Shift{ID: 3, Status: models.ShiftStatusOpen},
	}
	svc := newTestService(store)

	_, err := svc.RequestClose(models.RoleCashier)
	require.ErrorIs(t, err, ErrNotAllowed)
	require.Zero(t, store.findOpenCalls, "sem perfil admin nenhuma leitura acontece")
	require.Zero(t, store.ordersCalls)
}

func TestRequestClose_NoOpenShift(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, err := svc.RequestClose(models.RoleAdmin)
	require.ErrorIs(t, err, ErrNoOpenShift)
}

func TestRequestClose_Summary(t *testing.T) {
	store := &stubStore{
		openShift: &models.Shift{
			ID:           3,
			Name:         "25/12/24",
			Status:       models.ShiftStatusOpen,
			InitialFloat: decimal.RequireFromString("50"),
		},
		orders: []models.Order{
			{Total: decimal.RequireFromString("10"), Method: models.PaymentCash, Status: models.OrderStatusPending},
			{Total: decimal.RequireFromString("20"), Method: models.PaymentPix, Status: models.OrderStatusPending},
			{Total: decimal.RequireFromString("5"), Method: models.PaymentCash, Status: models.OrderStatusCanceled},
		},
	}
	svc := newTestService(store)

	sum, err := svc.RequestClose(models.RoleAdmin)
	require.NoError(t, err)

	require.Equal(t, uint(3), sum.ShiftID)
	require.Equal(t, "25/12/24", sum.ShiftName)
	require.True(t, sum.Total.Equal(decimal.RequireFromString("30")))
	require.True(t, sum.Cash.Equal(decimal.RequireFromString("10")))
	require.True(t, sum.Pix.Equal(decimal.RequireFromString("20")))
	require.True(t, sum.Credit.IsZero())
	require.True(t, sum.Debit.IsZero())
	require.Equal(t, 2, sum.Count, "pedido cancelado fica fora de todos os números")
}

func TestRequestClose_Idempotent(t *testing.T) {
	store := &stubStore{
		openShift: &models.Shift{ID: 3, Name: "25/12/24", Status: models.ShiftStatusOpen},
		orders: []models.Order{
			{Total: decimal.RequireFromString("12.34"), Method: models.PaymentDebit, Status: models.OrderStatusCompleted},
			{Total: decimal.RequireFromString("7.66"), Method: models.PaymentCredit, Status: models.OrderStatusPending},
		},
	}
	svc := newTestService(store)

	a, err := svc.RequestClose(models.RoleAdmin)
	require.NoError(t, err)
	b, err := svc.RequestClose(models.RoleAdmin)
	require.NoError(t, err)

	require.True(t, a.Total.Equal(b.Total))
	require.True(t, a.Cash.Equal(b.Cash))
	require.True(t, a.Credit.Equal(b.Credit))
	require.True(t, a.Debit.Equal(b.Debit))
	require.True(t, a.Pix.Equal(b.Pix))
	require.True(t, a.Other.Equal(b.Other))
	require.Equal(t, a.Count, b.Count)
	require.Equal(t, 2, store.ordersCalls, "leitura pura, sem efeito no conjunto de pedidos")
}

func TestBuildSummary_UnknownMethodGoesToOther(t *testing.T) {
	sum := BuildSummary([]models.Order{
		{Total: decimal.RequireFromString("15"), Method: "voucher", Status: models.OrderStatusPending},
		{Total: decimal.RequireFromString("10"), Method: models.PaymentCash, Status: models.OrderStatusPending},
	})

	require.True(t, sum.Other.Equal(decimal.RequireFromString("15")))
	require.True(t, sum.Total.Equal(decimal.RequireFromString("25")))
	require.Equal(t, 2, sum.Count)

	buckets := sum.Cash.Add(sum.Credit).Add(sum.Debit).Add(sum.Pix).Add(sum.Other)
	require.True(t, buckets.Equal(sum.Total), "colunas sempre fecham com o total")
}

func TestConfirmClose(t *testing.T) {
	openedAt := fixedNow.Add(-8 * time.Hour)
	store := &stubStore{
		openShift: &models.Shift{
			ID:       3,
			Name:     "25/12/24",
			Status:   models.ShiftStatusOpen,
			OpenedAt: openedAt,
		},
	}
	svc := newTestService(store)

	sh, err := svc.ConfirmClose(models.RoleAdmin)
	require.NoError(t, err)

	require.Equal(t, models.ShiftStatusClosed, sh.Status)
	require.NotNil(t, sh.ClosedAt)
	require.False(t, sh.ClosedAt.Before(sh.OpenedAt))
	require.Equal(t, uint(3), store.closedID)

	// Depois do fechamento não há mais caixa ativo
	active, err := svc.Active()
	require.NoError(t, err)
	require.Nil(t, active)
}

func TestConfirmClose_ClockNeverBeforeOpen(t *testing.T) {
	// Relógio regrediu: opened_at está no futuro em relação ao "agora"
	openedAt := fixedNow.Add(2 * time.Hour)
	store := &stubStore{
		openShift: &models.Shift{ID: 3, Status: models.ShiftStatusOpen, OpenedAt: openedAt},
	}
	svc := newTestService(store)

	sh, err := svc.ConfirmClose(models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, sh.ClosedAt.Equal(openedAt))
}

func TestConfirmClose_RequiresAdminAndOpenShift(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, err := svc.ConfirmClose(models.RoleCashier)
	require.ErrorIs(t, err, ErrNotAllowed)

	_, err = svc.ConfirmClose(models.RoleAdmin)
	require.ErrorIs(t, err, ErrNoOpenShift)
}
