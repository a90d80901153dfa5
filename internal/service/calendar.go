package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// CalendarService 负责社区活动日历。
type CalendarService struct {
	calendarRepo repository.CalendarRepository
	publisher    Publisher
}

// NewCalendarService 创建 CalendarService 实例。
func NewCalendarService(calendarRepo repository.CalendarRepository, publisher Publisher) *CalendarService {
	if calendarRepo == nil {
		panic("CalendarRepository cannot be nil for CalendarService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for CalendarService")
	}
	return &CalendarService{calendarRepo: calendarRepo, publisher: publisher}
}

// List 返回全部活动。
func (s *CalendarService) List(ctx context.Context) ([]domain.CalendarEvent, error) {
	events, err := s.calendarRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list calendar events")
		return nil, ErrInternalServer
	}
	return events, nil
}

// CreateCalendarEventInput 是新建活动的输入数据。
type CreateCalendarEventInput struct {
	EventName   string
	EventDate   time.Time
	Location    string
	Description string
}

// Create 新建活动。提交成功后向所有连接广播 new_calendar_event。
func (s *CalendarService) Create(ctx context.Context, in CreateCalendarEventInput) (*domain.CalendarEvent, error) {
	logCtx := logrus.WithField("event_name", in.EventName)

	if in.EventName == "" {
		return nil, ErrInvalidInput
	}

	event := &domain.CalendarEvent{
		EventName:   in.EventName,
		EventDate:   in.EventDate,
		Location:    in.Location,
		Description: in.Description,
	}

	if err := s.calendarRepo.Save(ctx, event); err != nil {
		logCtx.WithError(err).Error("Failed to save calendar event")
		return nil, ErrInternalServer
	}

	logCtx.WithField("event_id", event.ID).Info("Calendar event created")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventNewCalendarEvent, dto.CalendarEventPayload{
		EventID:   event.ID,
		EventName: event.EventName,
		EventDate: event.EventDate.Format(time.RFC3339),
		Location:  event.Location,
	})
	return event, nil
}
