package get_provider_schedule

import "time"

// Request модель запроса расписания исполнителя на дату
type Request struct {
	ProviderID int64
	Date       time.Time
}

// SlotStatus статус одного слота в расписании дня
type SlotStatus struct {
	TimeSlot string
	Status   string
	Reason   string

	// ConflictCount число бронирований, занимающих слот (для busy)
	ConflictCount int
}

// Response модель ответа с расписанием исполнителя на день
type Response struct {
	ProviderID   int64
	ProviderName string
	Date         time.Time
	Slots        []SlotStatus
}
