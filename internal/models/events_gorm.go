package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventRow is the relational shape of an Event.
type eventRow struct {
	ID               string    `gorm:"type:varchar(36);primaryKey"`
	UserID           string    `gorm:"type:varchar(128);not null;index"`
	EventTitle       string    `gorm:"type:text;not null"`
	EventVenue       string    `gorm:"type:text;not null"`
	EventStartDate   time.Time `gorm:"not null"`
	EventEndDate     time.Time `gorm:"not null"`
	EventStartTime   string    `gorm:"type:varchar(5);not null"`
	EventEndTime     string    `gorm:"type:varchar(5);not null"`
	EventCoverCost   float64   `gorm:"not null"`
	EventImage       string    `gorm:"type:text;not null"`
	EventDescription string    `gorm:"type:text;not null"`
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (eventRow) TableName() string {
	return "events"
}

func rowFromEvent(e *Event) eventRow {
	return eventRow{
		ID:               e.ID,
		UserID:           e.UserID,
		EventTitle:       e.EventTitle,
		EventVenue:       e.EventVenue,
		EventStartDate:   e.EventStartDate,
		EventEndDate:     e.EventEndDate,
		EventStartTime:   e.EventStartTime,
		EventEndTime:     e.EventEndTime,
		EventCoverCost:   e.EventCoverCost,
		EventImage:       e.EventImage,
		EventDescription: e.EventDescription,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (r eventRow) toEvent() *Event {
	return &Event{
		ID:               r.ID,
		UserID:           r.UserID,
		EventTitle:       r.EventTitle,
		EventVenue:       r.EventVenue,
		EventStartDate:   r.EventStartDate.UTC(),
		EventEndDate:     r.EventEndDate.UTC(),
		EventStartTime:   r.EventStartTime,
		EventEndTime:     r.EventEndTime,
		EventCoverCost:   r.EventCoverCost,
		EventImage:       r.EventImage,
		EventDescription: r.EventDescription,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

type GormEventRepo struct {
	db *gorm.DB
}

func NewGormEventRepo(db *gorm.DB) *GormEventRepo {
	return &GormEventRepo{db: db}
}

// Migrate creates or updates the events table.
func (r *GormEventRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&eventRow{}); err != nil {
		return fmt.Errorf("failed to migrate events table: %w", err)
	}
	return nil
}

func (r *GormEventRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	e := *event
	e.ID = uuid.New().String()
	e.Stamp(time.Now())

	row := rowFromEvent(&e)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to insert event into database: %w", err)
	}
	return row.toEvent(), nil
}

func (r *GormEventRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	var rows []eventRow
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	events := make([]*Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

func (r *GormEventRepo) GetEventByID(ctx context.Context, id string) (*Event, error) {
	var row eventRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("error finding event by ID: %w", err)
	}
	return row.toEvent(), nil
}

func (r *GormEventRepo) DeleteEvent(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&eventRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *GormEventRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("db.DB(): %w", err)
	}
	return sqlDB.Close()
}
