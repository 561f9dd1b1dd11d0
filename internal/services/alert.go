package services

import (
	"context"
	"fmt"
	"time"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"
)

// Pusher delivers an alert to a device outside the live session.
type Pusher interface {
	Push(ctx context.Context, deviceToken string, alert models.Alert) error
}

// APNSPusher sends alerts through Apple Push Notification service.
type APNSPusher struct {
	client *apns2.Client
	topic  string
}

// NewAPNSPusher loads the p12 certificate and builds an APNs client.
func NewAPNSPusher(certPath, certPassword, topic string, production bool) (*APNSPusher, error) {
	cert, err := certificate.FromP12File(certPath, certPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs certificate: %w", err)
	}

	client := apns2.NewClient(cert).Development()
	if production {
		client = apns2.NewClient(cert).Production()
	}
	return &APNSPusher{client: client, topic: topic}, nil
}

// Push sends one alert notification to a device token.
func (p *APNSPusher) Push(ctx context.Context, deviceToken string, alert models.Alert) error {
	body := fmt.Sprintf("%s sent a %s alert", alert.FromUsername, alert.Type)
	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       p.topic,
		Payload: payload.NewPayload().
			AlertTitle("Status Check").
			AlertBody(body).
			Sound("default").
			Custom("alert_type", alert.Type).
			Custom("from_id", alert.FromID),
	}

	res, err := p.client.PushWithContext(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("push rejected: %s", res.Reason)
	}
	return nil
}

// AlertService fans an alert out to every member of the sender's circle
type AlertService struct {
	circles  CircleStore
	profiles ProfileStore
	hub      *Hub
	pusher   Pusher // nil when push delivery is not configured
}

// NewAlertService creates a new alert service
func NewAlertService(circles CircleStore, profiles ProfileStore, hub *Hub, pusher Pusher) *AlertService {
	return &AlertService{
		circles:  circles,
		profiles: profiles,
		hub:      hub,
		pusher:   pusher,
	}
}

// Send delivers an alert from userID to everyone in their circle:
// online members get it on their live session, members with a
// registered device token also get a push. Individual delivery
// failures are logged and do not fail the send.
func (s *AlertService) Send(ctx context.Context, userID, alertType string) (int, error) {
	if !models.ValidAlertType(alertType) {
		return 0, fmt.Errorf("%w: unknown alert type %q", errs.ErrValidation, alertType)
	}

	sender, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load sender profile: %w", err)
	}

	ids, err := s.circles.MemberIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	members, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	alert := models.Alert{
		Type:         alertType,
		FromID:       sender.ID,
		FromUsername: sender.Username,
		SentAt:       time.Now(),
	}

	for _, member := range members {
		s.hub.Publish(Event{
			Topic: AlertTopic(member.ID),
			Type:  "alert",
			Data:  alert,
		})

		if s.pusher != nil && member.PushToken != nil {
			if err := s.pusher.Push(ctx, *member.PushToken, alert); err != nil {
				log.Error().
					Err(err).
					Str("member_id", member.ID).
					Str("alert_type", alertType).
					Msg("Failed to push alert")
			}
		}
	}

	log.Info().
		Str("user_id", userID).
		Str("alert_type", alertType).
		Int("members", len(members)).
		Msg("Alert sent to circle")

	return len(members), nil
}
