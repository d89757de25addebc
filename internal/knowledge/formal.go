package knowledge

import "strings"

// Topic groups guest questions for canned answers.
type Topic string

const (
	TopicDefault      Topic = "default"
	TopicAmenities    Topic = "amenities"
	TopicPricing      Topic = "pricing"
	TopicAvailability Topic = "availability"
	TopicPolicies     Topic = "policies"
	TopicServices     Topic = "services"
)

var formalResponses = map[Topic]string{
	TopicDefault:      "I appreciate your inquiry. Unfortunately, I don't have specific information on that topic in our current database. I recommend contacting our guest services team directly for comprehensive assistance with your request.",
	TopicAmenities:    "I apologize, but the specific details about that amenity are not available in our system. Please contact our front desk, and they will be delighted to provide you with detailed information about our facilities.",
	TopicPricing:      "Regarding pricing inquiries, I don't have access to real-time rate information. I encourage you to speak with our reservations team who can provide you with accurate quotes and current promotions.",
	TopicAvailability: "To check real-time room availability and rates, please contact our reservations department directly, or I can assist you in starting a booking with us.",
	TopicPolicies:     "For detailed information about our policies, I recommend reaching out to our guest services or administrative team. They will be happy to clarify any policies concerning your stay.",
	TopicServices:     "That specific service information is not available in my current database. Our guest relations team would be the ideal contact to provide you with complete details about all our offerings.",
}

// Checked in order; the first topic with a matching keyword wins.
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicPricing, []string{"price", "cost", "rate", "how much", "fee", "discount"}},
	{TopicAvailability, []string{"available", "availability", "vacanc", "free room", "sold out"}},
	{TopicPolicies, []string{"policy", "policies", "cancellation", "refund", "pet", "smoking", "check-in time", "checkout time"}},
	{TopicAmenities, []string{"pool", "gym", "spa", "wifi", "wi-fi", "parking", "breakfast", "amenit"}},
	{TopicServices, []string{"service", "laundry", "shuttle", "room service", "concierge", "airport"}},
}

// FormalResponse returns the canned answer for topic, falling back to the
// default answer for unknown topics.
func FormalResponse(topic Topic) string {
	if resp, ok := formalResponses[topic]; ok {
		return resp
	}
	return formalResponses[TopicDefault]
}

// DetectTopic guesses which canned topic a question belongs to.
func DetectTopic(query string) Topic {
	q := strings.ToLower(query)
	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(q, kw) {
				return tk.topic
			}
		}
	}
	return TopicDefault
}
