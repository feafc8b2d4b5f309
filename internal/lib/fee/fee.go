// Package fee рассчитывает комиссию платёжной обработки и итоговую сумму пожертвования,
// а также хранит состояние выбора суммы (фиксированная или своя).
package fee

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// Rate — процентная часть комиссии (2.9%).
	Rate = 0.029
	// Fixed — фиксированная часть комиссии.
	Fixed = 0.30

	// Custom — значение выбора, означающее свою сумму.
	Custom = "custom"
	// DefaultPreset — сумма, выбранная по умолчанию.
	DefaultPreset = "25"

	// MinAmount — наименьшая сумма после округления до центов.
	MinAmount = 0.01
	// MaxAmount — наибольшая сумма одного пожертвования.
	// Итог вместе с комиссией должен помещаться в NUMERIC(12,2).
	MaxAmount = 1_000_000
)

// Presets фиксированные суммы пожертвования.
var Presets = []string{"25", "50", "100", "250", "500"}

var (
	// ErrInvalidAmount сумма не число, меньше цента после округления или больше MaxAmount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrUnknownPreset выбран неизвестный вариант суммы.
	ErrUnknownPreset = errors.New("unknown amount option")
)

// Breakdown результат расчёта.
type Breakdown struct {
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	Total     float64 `json:"total"`
	CoverFees bool    `json:"cover_fees"`
}

// ParseAmount разбирает сумму из строки формы.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return normalize(v)
}

// ProcessingFee возвращает комиссию, округлённую до копеек.
func ProcessingFee(amount float64) float64 {
	// явное приведение запрещает компилятору объединять умножение и сложение (FMA)
	return round2(float64(amount*Rate) + Fixed)
}

// Calculate считает комиссию и итог. Если coverFees == false, итог равен сумме пожертвования.
func Calculate(amount float64, coverFees bool) (Breakdown, error) {
	amount, err := normalize(amount)
	if err != nil {
		return Breakdown{}, err
	}
	b := Breakdown{
		Amount:    amount,
		Fee:       ProcessingFee(amount),
		CoverFees: coverFees,
	}
	b.Total = b.Amount
	if coverFees {
		b.Total = round2(b.Amount + b.Fee)
	}
	return b, nil
}

// normalize округляет сумму до центов и проверяет, что она в [MinAmount, MaxAmount].
// Диапазон проверяется до умножения, поэтому round2 не переполняется.
func normalize(v float64) (float64, error) {
	if math.IsNaN(v) || v <= 0 || v > MaxAmount {
		return 0, ErrInvalidAmount
	}
	v = round2(v)
	if v < MinAmount {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

func round2(v float64) float64 {
	return math.Round(float64(v*100)) / 100
}

// Selection состояние выбора суммы: фиксированная сумма и своя сумма взаимоисключающие.
type Selection struct {
	selected string
	custom   string
	active   string
}

// NewSelection возвращает выбор с суммой по умолчанию.
func NewSelection() *Selection {
	return &Selection{selected: DefaultPreset, active: DefaultPreset}
}

// Choose переключает источник суммы. Активное значение сбрасывается на значение нового источника.
func (s *Selection) Choose(value string) error {
	value = strings.TrimSpace(value)
	switch {
	case value == Custom:
		s.selected = Custom
		s.active = s.custom
	case slices.Contains(Presets, value):
		s.selected = value
		s.active = value
	default:
		return ErrUnknownPreset
	}
	return nil
}

// SetCustom запоминает свою сумму; она становится активной, только если выбран вариант custom.
func (s *Selection) SetCustom(value string) {
	s.custom = strings.TrimSpace(value)
	if s.selected == Custom {
		s.active = s.custom
	}
}

// IsCustom сообщает, выбрана ли своя сумма.
func (s *Selection) IsCustom() bool {
	return s.selected == Custom
}

// Active возвращает текущее активное значение суммы.
func (s *Selection) Active() string {
	return s.active
}

// Amount разбирает активное значение.
func (s *Selection) Amount() (float64, error) {
	return ParseAmount(s.active)
}

// Resolve строит выбор по паре значений из формы: amount — вариант или число, custom — своя сумма.
// Числовое значение amount, не входящее в Presets, трактуется как своя сумма.
func Resolve(amount, custom string) (*Selection, error) {
	sel := NewSelection()
	sel.SetCustom(custom)

	amount = strings.TrimSpace(amount)
	if amount == "" {
		amount = DefaultPreset
	}
	if err := sel.Choose(amount); err != nil {
		if _, perr := ParseAmount(amount); perr != nil {
			return nil, ErrInvalidAmount
		}
		sel.SetCustom(amount)
		_ = sel.Choose(Custom)
	}
	return sel, nil
}
