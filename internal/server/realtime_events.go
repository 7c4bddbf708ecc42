package server

import (
	"context"
	"encoding/json"
	"log"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated       = "post_created"
	EventEngagementUpdated = "engagement_updated"
	EventCommentCreated    = "comment_created"
	EventCommentUpdated    = "comment_updated"
	EventCommentDeleted    = "comment_deleted"
	EventGalleryCreated    = "gallery_created"
)

// publishBroadcastEvent fans an event out to this process's feed readers and
// to every other process via Redis. Delivery is best-effort.
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
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}
