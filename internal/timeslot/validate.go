package timeslot

import (
	"sort"
	"strings"
	"time"
)

// Field поле интервала
type Field string

const (
	FieldStart Field = "start_time"
	FieldEnd   Field = "end_time"
)

// Proposal предлагаемый интервал события во время редактирования
type Proposal struct {
	Start time.Time
	End   *time.Time
}

// HasStart задано ли начало
func (p Proposal) HasStart() bool {
	return !p.Start.IsZero()
}

// FieldErrors сообщения об ошибках по полям. Пустое значение - проверка пройдена.
type FieldErrors map[Field]string

func (fe FieldErrors) OK() bool {
	return len(fe) == 0
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, string(field)+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// Err возвращает nil, если ошибок нет
func (fe FieldErrors) Err() error {
	if fe.OK() {
		return nil
	}
	return fe
}

// Validate проверяет интервал целиком: начало обязательно,
// оба конца на получасовой сетке, конец позже начала.
func Validate(p Proposal) FieldErrors {
	errs := FieldErrors{}

	if !p.HasStart() {
		errs[FieldStart] = "start is required"
		return errs
	}
	if err := ValidateGranularity(p.Start); err != nil {
		errs[FieldStart] = err.Error()
	}
	if p.End != nil {
		if err := ValidateGranularity(*p.End); err != nil {
			errs[FieldEnd] = err.Error()
		} else if err := ValidateOrdering(p.Start, p.End); err != nil {
			errs[FieldEnd] = err.Error()
		}
	}
	return errs
}
