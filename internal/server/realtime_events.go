package server

import (
	"context"
	"encoding/json"
	"log"

	"vireo/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated    = "post_created"
	EventPostLiked      = "post_liked"
	EventCommentCreated = "comment_created"
)

// publishBroadcastEvent fans a feed event out to local subscribers and, via
// Redis pub/sub, to every other instance's hub.
func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)

	observability.RecordFeedEvent(eventType)

	// Without Redis the local hub still sees the event; with Redis the
	// subscriber wiring delivers it everywhere, including here.
	if s.notifier != nil {
		if err := s.notifier.PublishFeedEvent(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
}
