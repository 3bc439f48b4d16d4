package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mastercheffpdv-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("troco inicial inválido")
	ErrNotAllowed    = errors.New("apenas administradores podem fechar o caixa")
	ErrNoOpenShift   = errors.New("nenhum caixa aberto")
)

// DuplicateShiftError: já existe um caixa (aberto ou fechado) com o nome do
// dia. Carrega o status do caixa existente para a mensagem ao operador.
type DuplicateShiftError struct {
	Name   string
	Status models.ShiftStatus
}

func (e *DuplicateShiftError) Error() string {
	if e.Status == models.ShiftStatusOpen {
		return fmt.Sprintf("o caixa %s já está aberto", e.Name)
	}
	return fmt.Sprintf("o caixa %s já foi aberto e fechado hoje", e.Name)
}

// Store é o que o serviço precisa do banco. A implementação GORM está em
// store.go; os testes usam um stub.
type Store interface {
	FindByName(name string) (*models.Shift, error)
	FindOpen() (*models.Shift, error)
	Create(sh *models.Shift) error
	Close(id uint, at time.Time) error
	OrdersForSettlement(shiftID uint) ([]models.Order, error)
}

// Fuso fixo do PDV: o nome do caixa é a data local em São Paulo,
// independente do fuso do servidor.
var defaultLocation = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}()

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		loc:   defaultLocation,
		now:   time.Now,
	}
}

// ParseAmount interpreta o troco inicial digitado pelo operador. Aceita
// vírgula ou ponto como separador decimal ("10,50" e "10.50").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func shiftName(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/06")
}

// Open abre o caixa do dia.
//
// A pré-checagem por nome é só conforto para o operador (mensagem imediata);
// quem realmente impede dois caixas no mesmo dia é o índice único de
// shifts.name, cuja violação também vira DuplicateShiftError.
func (s *Service) Open(userID uint, rawFloat string) (*models.Shift, error) {
	amount, err := ParseAmount(rawFloat)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	name := shiftName(now, s.loc)

	existing, err := s.store.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("consulta de caixa existente: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateShiftError{Name: name, Status: existing.Status}
	}

	sh := &models.Shift{
		Name:         name,
		Status:       models.ShiftStatusOpen,
		InitialFloat: amount,
		OpenedAt:     now,
		OpenedBy:     userID,
	}

	if err := s.store.Create(sh); err != nil {
		if isUniqueViolation(err) {
			// Outro operador venceu a corrida entre a pré-checagem e o insert.
			status := models.ShiftStatusOpen
			if again, ferr := s.store.FindByName(name); ferr == nil && again != nil {
				status = again.Status
			}
			return nil, &DuplicateShiftError{Name: name, Status: status}
		}
		return nil, fmt.Errorf("abertura de caixa: %w", err)
	}

	return sh, nil
}

// Active retorna o caixa aberto, ou nil se não houver.
func (s *Service) Active() (*models.Shift, error) {
	sh, err := s.store.FindOpen()
	if err != nil {
		return nil, fmt.Errorf("consulta de caixa aberto: %w", err)
	}
	return sh, nil
}

// RequestClose monta o resumo de fechamento do caixa aberto. Leitura pura:
// nada é gravado até ConfirmClose. A checagem de perfil acontece aqui dentro,
// antes de qualquer consulta, além do middleware de rota.
func (s *Service) RequestClose(role models.UserRole) (*Summary, error) {
	if role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}

	open, err := s.store.FindOpen()
	if err != nil {
		return nil, fmt.Errorf("consulta de caixa aberto: %w", err)
	}
	if open == nil {
		return nil, ErrNoOpenShift
	}

	orders, err := s.store.OrdersForSettlement(open.ID)
	if err != nil {
		return nil, fmt.Errorf("consulta de pedidos do caixa: %w", err)
	}

	sum := BuildSummary(orders)
	sum.ShiftID = open.ID
	sum.ShiftName = open.Name
	sum.InitialFloat = open.InitialFloat
	return sum, nil
}

// ConfirmClose fecha o caixa aberto: status -> closed, closed_at = agora.
// Nenhum outro campo muda.
func (s *Service) ConfirmClose(role models.UserRole) (*models.Shift, error) {
	if role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}

	open, err := s.store.FindOpen()
	if err != nil {
		return nil, fmt.Errorf("consulta de caixa aberto: %w", err)
	}
	if open == nil {
		return nil, ErrNoOpenShift
	}

	closedAt := s.now().In(s.loc)
	// closed_at nunca antes de opened_at, mesmo com relógio regredindo.
	if closedAt.Before(open.OpenedAt) {
		closedAt = open.OpenedAt
	}

	if err := s.store.Close(open.ID, closedAt); err != nil {
		return nil, fmt.Errorf("fechamento de caixa: %w", err)
	}

	open.Status = models.ShiftStatusClosed
	open.ClosedAt = &closedAt
	return open, nil
}
