package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event kinds carried on the wire.
const (
	ScheduleCreated = "schedule.created"
	ScheduleUpdated = "schedule.updated"
	ScheduleDeleted = "schedule.deleted"
	CalendarUpdated = "calendar.updated"
)

const broadcastTopic = "schedulum/boards"

// Event is the payload published for every change. Display boards
// dedupe on ID.
type Event struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	UserID int    `json:"user_id,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Publisher pushes change events to hallway display boards over MQTT.
// A nil *Publisher drops everything, so the server runs without a
// broker.
type Publisher struct {
	client mqtt.Client
}

// Connect dials the broker and returns a ready publisher.
func Connect(brokerURL string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("schedulum-" + uuid.NewString()[:8])
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

// ScheduleChanged publishes a schedule mutation to the author's topic
// and the broadcast topic.
func (p *Publisher) ScheduleChanged(kind string, userID int, date time.Time) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		UserID: userID,
		Date:   date.Format("2006-01-02"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal schedule event")
		return
	}
	p.publish(fmt.Sprintf("schedulum/users/%d", userID), payload)
	p.publish(broadcastTopic, payload)
}

// CalendarChanged announces reference-data changes to every board.
func (p *Publisher) CalendarChanged() {
	if p == nil {
		return
	}
	payload, err := json.Marshal(Event{ID: uuid.NewString(), Kind: CalendarUpdated})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal calendar event")
		return
	}
	p.publish(broadcastTopic, payload)
}

func (p *Publisher) publish(topic string, payload []byte) {
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("MQTT publish failed")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
