package model_test

import (
	"testing"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
)

func TestWebhookEvent_IsSupportedEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    *model.WebhookEvent
		expected bool
	}{
		{
			name:     "Push event - supported",
			event:    &model.WebhookEvent{Type: model.EventTypePush},
			expected: true,
		},
		{
			name:     "Ping event - not supported",
			event:    &model.WebhookEvent{Type: model.EventTypePing},
			expected: false,
		},
		{
			name:     "Unknown event type",
			event:    &model.WebhookEvent{Type: model.EventTypeUnknown},
			expected: false,
		},
		{
			name:     "Different event type",
			event:    &model.WebhookEvent{Type: model.WebhookEventType("pull_request")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.event.IsSupportedEvent()
			if got != tt.expected {
				t.Errorf("IsSupportedEvent() = %v, want %v", got, tt.expected)
			}
		})
	}
}
