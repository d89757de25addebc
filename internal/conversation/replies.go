package conversation

import "fmt"

// HelpText lists the commands available during a conversation.
const HelpText = `💡 **Booking Help:**
- Type **back** or **exit** to go back to chat
- Type **documents** to see hotel info from RAG
- Type **help** to see available commands
- Type **restart** to start booking over`

// FallbackReply is shown when nothing else can answer the guest.
const FallbackReply = "Please upload hotel documents or say *I want to book a room*."

const (
	exitReply       = "✋ Exited booking mode. How can I help you? (You can still ask about hotels or start a new booking)"
	documentsAck    = "📚 Let me search the hotel documents for you..."
	lookupAck       = "🔍 Let me look that up from the hotel documents..."
	bookingHint     = "💡 *Type **documents** anytime to see hotel info or **help** for commands*"
	cancelledReply  = "❌ Booking cancelled. How can I help you?"
	confirmReprompt = "⚠️ Please type **confirm** to book or **cancel** to exit."
	retrySuffix     = "🔄 Please try again."
	acceptedPrefix  = "✅ Got it!"
	resumePrefix    = "↩️ Back to your booking:"
)

func confirmedReply(bookingID, email string, emailSent bool) string {
	if emailSent {
		return fmt.Sprintf("✅ **Booking confirmed!** Your booking ID is **%s**\n📧 Confirmation email sent to %s", bookingID, email)
	}
	return fmt.Sprintf("✅ **Booking confirmed!** Your booking ID is **%s**\n⚠️ Email delivery pending - check your inbox", bookingID)
}
