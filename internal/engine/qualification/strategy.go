package qualification

import (
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Service данные услуги, необходимые для проверки квалификации
// Заполняется из каталога услуг вызывающей стороной
type Service struct {
	ID       int64
	Name     string
	Category string
}

// Strategy стратегия проверки квалификации исполнителя
type Strategy interface {
	// Applicable сообщает, применима ли стратегия к исполнителю
	Applicable(p *domain.Provider) bool
	// Qualified сообщает, квалифицирован ли исполнитель для услуги
	Qualified(svc Service, p *domain.Provider) bool
}

// ExplicitAssignment стратегия по явному списку назначенных услуг
// Предпочтительная: точное совпадение идентификаторов
type ExplicitAssignment struct{}

// Applicable применима, когда список назначенных услуг непуст
func (ExplicitAssignment) Applicable(p *domain.Provider) bool {
	return len(p.AssignedServiceIDs) > 0
}

// Qualified проверяет членство услуги в списке назначений
func (ExplicitAssignment) Qualified(svc Service, p *domain.Provider) bool {
	return p.HasAssignedService(svc.ID)
}

// SpecializationSubstring эвристическая стратегия по тегам специализации
// Тег совпадает, если он является подстрокой названия/категории услуги
// или наоборот, без учета регистра
//
// Известное свойство: на общих словах ("ремонт", "чистка") эвристика дает
// ложные срабатывания в обе стороны. Семантика сохранена намеренно;
// точность дает ExplicitAssignment
type SpecializationSubstring struct{}

// Applicable применима, когда заданы теги специализации
func (SpecializationSubstring) Applicable(p *domain.Provider) bool {
	return len(p.Specialization) > 0
}

// Qualified проверяет двустороннее вхождение тега и названия/категории услуги
func (SpecializationSubstring) Qualified(svc Service, p *domain.Provider) bool {
	name := strings.ToLower(svc.Name)
	category := strings.ToLower(svc.Category)

	for _, tag := range p.Specialization {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if matches(t, name) || matches(t, category) {
			return true
		}
	}
	return false
}

// matches двустороннее вхождение подстроки
func matches(tag, target string) bool {
	if target == "" {
		return false
	}
	return strings.Contains(target, tag) || strings.Contains(tag, target)
}
