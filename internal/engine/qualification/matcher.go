// Package qualification фильтрация и ранжирование исполнителей под услугу
// Чистые функции: без I/O и без скрытого состояния
package qualification

import (
	"sort"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
)

var (
	explicit       = ExplicitAssignment{}
	specialization = SpecializationSubstring{}
)

// IsQualified решает, квалифицирован ли исполнитель для услуги:
//   - явные назначения непусты -> только точное совпадение ID (авторитетно)
//   - иначе заданы теги специализации -> эвристика по подстрокам
//   - иначе исполнитель без ограничений - квалифицирован для всего
func IsQualified(svc Service, p *domain.Provider) bool {
	if explicit.Applicable(p) {
		return explicit.Qualified(svc, p)
	}
	if specialization.Applicable(p) {
		return specialization.Qualified(svc, p)
	}
	return true
}

// Qualify фильтрует список исполнителей до квалифицированных для услуги
// Порядок входного списка сохраняется
func Qualify(svc Service, providers []*domain.Provider) []*domain.Provider {
	qualified := make([]*domain.Provider, 0, len(providers))
	for _, p := range providers {
		if IsQualified(svc, p) {
			qualified = append(qualified, p)
		}
	}
	return qualified
}

// Candidate исполнитель-кандидат с контекстом для ранжирования
type Candidate struct {
	Provider     *domain.Provider
	Qualified    bool
	Availability availability.Result
}

// availabilityPriority порядок предпочтения статусов доступности при ранжировании
var availabilityPriority = map[availability.Status]int{
	availability.StatusAvailable:   0,
	availability.StatusBusy:        1,
	availability.StatusUnknown:     2,
	availability.StatusBlocked:     3,
	availability.StatusUnavailable: 4,
}

// Rank упорядочивает кандидатов:
//  1. квалифицированные раньше неквалифицированных
//  2. по приоритету доступности: available < busy < unknown < blocked < unavailable
//  3. по убыванию рейтинга
//
// Сортировка стабильная: равные кандидаты сохраняют входной порядок,
// что делает результат детерминированным
func Rank(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Qualified != b.Qualified {
			return a.Qualified
		}

		pa, pb := availabilityPriority[a.Availability.Status], availabilityPriority[b.Availability.Status]
		if pa != pb {
			return pa < pb
		}

		return a.Provider.AverageRating > b.Provider.AverageRating
	})

	return ranked
}
