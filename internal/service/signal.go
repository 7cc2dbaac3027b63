package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"
)

// Signal is the payload fanned out to realtime subscribers whenever a
// check-in is confirmed.
type Signal struct {
	Type      string `json:"type"`
	EventID   string `json:"eventId"`
	Confirmed int64  `json:"confirmed"`
}

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func channelFor(eventID string) string {
	return "attendance:" + eventID
}

// PublishAttendance broadcasts the confirmed check-in count for an event.
func (s *SignalService) PublishAttendance(ctx context.Context, eventID string, confirmed int64) error {

	jsonstr, err := json.Marshal(Signal{
		Type:      "attendance_update",
		EventID:   eventID,
		Confirmed: confirmed,
	})
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channelFor(eventID), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime pumps published signals to output for the event ids received on
// input. It returns when ctx is cancelled or input closes.
func (s *SignalService) Realtime(ctx context.Context, input chan []string, output chan Signal) {

	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	var subscribed []string

	for {
		select {
		case <-ctx.Done():
			return
		case eventIDs, ok := <-input:
			if !ok {
				return
			}
			channels := make([]string, 0, len(eventIDs))
			for _, id := range eventIDs {
				channels = append(channels, channelFor(id))
			}
			for _, ch := range subscribed {
				if !slices.Contains(channels, ch) {
					pubsub.Unsubscribe(ctx, ch)
				}
			}
			for _, ch := range channels {
				if !slices.Contains(subscribed, ch) {
					pubsub.Subscribe(ctx, ch)
				}
			}
			subscribed = channels
		case msg := <-pubsub.Channel():
			if msg == nil {
				continue
			}
			var signal Signal
			err := json.Unmarshal([]byte(msg.Payload), &signal)
			if err != nil {
				slog.ErrorContext(
					ctx, "Failed to decode signal",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- signal:
			case <-ctx.Done():
				return
			}
		}
	}
}
