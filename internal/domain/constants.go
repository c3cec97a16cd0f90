package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultServiceStartTime время начала услуги, когда слот не выбран
// Используется политикой отмены/переноса для расчета дедлайнов
const DefaultServiceStartTime = "09:00"

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDelayReasonLength        = 500
	MaxProvidersPerBooking      = 10
)

// SchedulingInactiveStatuses статусы, не занимающие слот в расписании
// Только отмена освобождает слот; завершенные работы остаются в истории дня
var SchedulingInactiveStatuses = []BookingStatus{
	StatusCancelled,
}
