package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

// Notifier sends SMS through Twilio. All sends are fire-and-forget from
// the booking transaction's perspective: failures are logged and never
// fail the caller. A zero Notifier (no credentials) is a no-op.
type Notifier struct {
	client *twilio.RestClient
	from   string
}

func NewNotifier(env intconfig.Env) *Notifier {
	if env.TwilioAccountSID == "" || env.TwilioAuthToken == "" || env.TwilioFromNumber == "" {
		return &Notifier{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: env.TwilioAccountSID,
		Password: env.TwilioAuthToken,
	})
	return &Notifier{client: client, from: env.TwilioFromNumber}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.client != nil
}

func (n *Notifier) send(requestID, to, body string) {
	if !n.enabled() || to == "" {
		return
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		utils.LogEvent(requestID, "notify", "sms_failed", err.Error())
		return
	}
	utils.LogEvent(requestID, "notify", "sms_sent", "to="+to)
}

func (n *Notifier) BookingConfirmed(requestID, phone string, b models.Booking) {
	go n.send(requestID, phone, fmt.Sprintf(
		"Your shuttle booking %s is confirmed: %d seat(s), total %s.",
		b.Code, b.SeatCount, utils.FormatINR(b.TotalFare)))
}

func (n *Notifier) BookingCancelled(requestID, phone string, b models.Booking) {
	go n.send(requestID, phone, fmt.Sprintf(
		"Booking %s cancelled. Refund eligible: %s.",
		b.Code, utils.FormatINR(b.RefundAmount)))
}

func (n *Notifier) TripStatusChanged(requestID, phone string, tripID int64, status models.TripStatus) {
	go n.send(requestID, phone, fmt.Sprintf(
		"Update for your shuttle trip #%d: %s.", tripID, status))
}
