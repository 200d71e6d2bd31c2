package activityqueue

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Service publishes care plan activity events to a durable queue and waits
// for the broker confirm of every message.
type Service struct {
	ch        publishChannel
	log       *zap.Logger
	queueName string
	confirms  <-chan amqp.Confirmation
	mu        sync.Mutex
}

var _ contracts.ActivityEventPublisher = (*Service)(nil)

// NewService opens a channel, declares the queue and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newService(ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)), queueName, log), nil
}

func newService(ch publishChannel, confirms <-chan amqp.Confirmation, queueName string, log *zap.Logger) *Service {
	return &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  confirms,
	}
}

func (s *Service) PublishActivityEvent(ctx context.Context, event *models.ActivityEvent) error {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ActivityQueue.PublishActivityEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.EventType),
		zap.String(constvars.LoggingProviderKey, event.Provider),
		zap.String(constvars.LoggingProviderActionIDKey, event.ProviderActionID),
	)

	if event.RequestID == "" {
		event.RequestID = requestID
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         fmt.Sprintf("%s.%s", constvars.RabbitMQActivityEventTypePrefix, event.EventType),
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		s.log.Error("ActivityQueue.PublishActivityEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.queueName),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
	}

	s.log.Info("ActivityQueue.PublishActivityEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
	)
	return nil
}
