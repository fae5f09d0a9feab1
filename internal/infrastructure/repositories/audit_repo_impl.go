package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/internal/infrastructure/models"
)

// NoteRepository implements internal review note operations
type NoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create appends a review note
func (r *NoteRepository) Create(ctx context.Context, note *entities.MerchantNote) error {
	m := &models.MerchantNote{
		ID:         note.ID,
		MerchantID: note.MerchantID,
		AuthorID:   note.AuthorID,
		Body:       note.Body,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	note.ID = m.ID
	note.CreatedAt = m.CreatedAt
	return nil
}

// ListByMerchant lists notes newest first
func (r *NoteRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantNote, error) {
	var noteModels []models.MerchantNote
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&noteModels).Error; err != nil {
		return nil, err
	}

	notes := make([]*entities.MerchantNote, 0, len(noteModels))
	for _, m := range noteModels {
		notes = append(notes, &entities.MerchantNote{
			ID:         m.ID,
			MerchantID: m.MerchantID,
			AuthorID:   m.AuthorID,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}
	return notes, nil
}

// DeleteByMerchant removes a merchant's notes during account deletion
func (r *NoteRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Delete(&models.MerchantNote{}).Error
}

// EventRepository implements the append-only merchant event log
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create appends a status event
func (r *EventRepository) Create(ctx context.Context, event *entities.MerchantEvent) error {
	m := &models.MerchantEvent{
		ID:         event.ID,
		MerchantID: event.MerchantID,
		ActorID:    event.ActorID,
		EventType:  event.EventType,
		Detail:     event.Detail.Ptr(),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}

// ListByMerchant lists events newest first
func (r *EventRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantEvent, error) {
	var eventModels []models.MerchantEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.MerchantEvent, 0, len(eventModels))
	for _, m := range eventModels {
		events = append(events, &entities.MerchantEvent{
			ID:         m.ID,
			MerchantID: m.MerchantID,
			ActorID:    m.ActorID,
			EventType:  m.EventType,
			Detail:     null.StringFromPtr(m.Detail),
			CreatedAt:  m.CreatedAt,
		})
	}
	return events, nil
}

// DeleteByMerchant removes a merchant's event log during account deletion
func (r *EventRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Delete(&models.MerchantEvent{}).Error
}
