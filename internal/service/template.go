package service

import (
	"context"
	"fmt"
	"strings"
)

// TemplateComposer produces fully deterministic replies without any network
// call. It is both the standalone composer when no completion credential is
// configured and the fallback path of the completion-backed composer.
type TemplateComposer struct{}

var _ Composer = TemplateComposer{}

// Compose selects a template by the three-way result state, then by keyword
// for the generic-help cases. It never fails.
func (TemplateComposer) Compose(_ context.Context, in ComposeInput) string {
	lower := strings.ToLower(in.Message)

	if len(in.Exact) > 0 {
		top := in.Exact[0]
		return fmt.Sprintf("Great news! I found %d properties that match your requirements! 🎉\n\n"+
			"The top match is %q priced at ₹%s in %s. It's a %d BHK with %d bathrooms.\n\n"+
			"Check out the property cards below for more details. Would you like to know more about any of these?",
			len(in.Exact), top.Title, formatINR(top.Price), top.City, top.BHK, top.Bathrooms)
	}

	if len(in.Alternatives) > 0 {
		closest := in.Alternatives[0]
		return fmt.Sprintf("I'm sorry, we don't have properties that exactly match your requirements right now. 😔\n\n"+
			"However, I found %d similar properties you might like! The closest match is %q at ₹%s in %s.\n\n"+
			"Would you like to see these alternatives, or should I help you adjust your search criteria? 🏠",
			len(in.Alternatives), closest.Title, formatINR(closest.Price), closest.City)
	}

	if strings.Contains(lower, "bhk") || strings.Contains(lower, "lakh") || strings.Contains(lower, "crore") {
		return "I apologize, but we don't currently have properties matching your specific requirements. 😔\n\n" +
			"Would you like to:\n• Adjust your budget range? 💰\n• Try a different BHK configuration? 🏠\n" +
			"• Explore different locations? 📍\n• See our latest properties?\n\n" +
			"I can also notify you when matching properties become available! Just let me know your contact details. 📧"
	}

	if strings.Contains(lower, "contact") || strings.Contains(lower, "dealer") {
		return "To contact a dealer, click on any property listing and you'll find contact options (call, WhatsApp, email). " +
			"Our dealers are available to answer all your questions! 📞"
	}

	if strings.Contains(lower, "amenities") || strings.Contains(lower, "features") {
		return "Our properties offer amenities like:\n🅿️ Parking\n🔒 Security\n🏋️ Gym\n🏊 Swimming pool\n🌳 Garden\n⚡ Power backup\n\n" +
			"Each property has different amenities. Want to search for properties with specific features?"
	}

	if strings.Contains(lower, "process") || strings.Contains(lower, "how to") {
		return "Our property process:\n1️⃣ Browse & shortlist properties\n2️⃣ Contact dealer\n3️⃣ Schedule visit\n" +
			"4️⃣ Verify documents\n5️⃣ Finalize deal\n\nOur dealers guide you through each step! Need help finding properties? 🏠"
	}

	return "I'm here to help you find your perfect property! 🏠\n\n" +
		"Try asking:\n• 'Show me 2 BHK under 50 lakh'\n• 'Properties in Mumbai'\n" +
		"• 'What amenities do you offer?'\n• 'How to contact dealers?'\n\nWhat can I help you with? 😊"
}
