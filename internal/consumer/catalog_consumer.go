package consumer

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/onedayclass/booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogConsumer keeps the local read-only mirrors (class_sessions,
// student_profiles) in sync with the catalog and identity services.
type CatalogConsumer struct {
	db *gorm.DB
}

func NewCatalogConsumer(db *gorm.DB) *CatalogConsumer {
	return &CatalogConsumer{db: db}
}

func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CatalogConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	switch {
	case strings.HasPrefix(msg.RoutingKey, "session."):
		cc.upsertSession(msg)
	case strings.HasPrefix(msg.RoutingKey, "student."):
		cc.upsertStudent(msg)
	default:
		log.Printf("[CatalogConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
	}
}

func (cc *CatalogConsumer) upsertSession(msg amqp.Delivery) {
	var session models.ClassSession
	if err := json.Unmarshal(msg.Body, &session); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal session: %v", err)
		msg.Nack(false, false)
		return
	}

	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"class_id", "class_name", "description", "scheduled_at", "capacity", "cost", "updated_at"}),
	}).Create(&session)

	if result.Error != nil {
		log.Printf("[CatalogConsumer] failed to upsert session %d: %v", session.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced session %d: %s", session.ID, session.ClassName)
	msg.Ack(false)
}

func (cc *CatalogConsumer) upsertStudent(msg amqp.Delivery) {
	var profile models.StudentProfile
	if err := json.Unmarshal(msg.Body, &profile); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal student profile: %v", err)
		msg.Nack(false, false)
		return
	}

	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "phone_number", "updated_at"}),
	}).Create(&profile)

	if result.Error != nil {
		log.Printf("[CatalogConsumer] failed to upsert student %d: %v", profile.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced student %d", profile.ID)
	msg.Ack(false)
}
