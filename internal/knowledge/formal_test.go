package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTopic(t *testing.T) {
	tests := map[string]Topic{
		"How much is a deluxe room?":      TopicPricing,
		"Do you have availability in May": TopicAvailability,
		"What is the cancellation policy": TopicPolicies,
		"Is there a gym":                  TopicAmenities,
		"Do you offer laundry?":           TopicServices,
		"Tell me a joke":                  TopicDefault,
	}
	for query, want := range tests {
		assert.Equal(t, want, DetectTopic(query), query)
	}
}

func TestFormalResponse(t *testing.T) {
	assert.Contains(t, FormalResponse(TopicPricing), "reservations team")
	assert.Equal(t, FormalResponse(TopicDefault), FormalResponse(Topic("weather")))
	for topic := range formalResponses {
		assert.NotEmpty(t, FormalResponse(topic))
	}
}
