package webhook

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/conversation"
	"github.com/dodyw/sholat-live/internal/http/api"
	"github.com/dodyw/sholat-live/internal/intent"
	"github.com/dodyw/sholat-live/internal/resolver"
	"github.com/dodyw/sholat-live/internal/responder"
	"github.com/dodyw/sholat-live/internal/schedule"
	"github.com/dodyw/sholat-live/internal/whatsapp"
)

// Sender delivers the reply over the chat transport.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// HistoryStore optionally records recent inbound texts per user.
type HistoryStore interface {
	AppendHistory(ctx context.Context, userID, text string) error
}

type Controller struct {
	verifyToken string
	defaultCity string
	resolver    *resolver.Resolver
	cache       *schedule.Cache
	policy      *conversation.Policy
	history     HistoryStore
	sender      Sender
	now         func() time.Time
}

func NewController(
	verifyToken, defaultCity string,
	res *resolver.Resolver,
	cache *schedule.Cache,
	policy *conversation.Policy,
	history HistoryStore,
	sender Sender,
) *Controller {
	return &Controller{
		verifyToken: verifyToken,
		defaultCity: defaultCity,
		resolver:    res,
		cache:       cache,
		policy:      policy,
		history:     history,
		sender:      sender,
		now:         time.Now,
	}
}

func RegisterRoutes(r gin.IRoutes, ctl *Controller) {
	r.GET("/webhook", ctl.verify)
	r.POST("/webhook", api.ResolveEndpoint(ctl.receive))
}

// GET /webhook — Meta subscription verification handshake. The challenge
// is echoed back as a bare integer only when the token matches.
func (ctl *Controller) verify(ctx *gin.Context) {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode != "subscribe" || token != ctl.verifyToken {
		log.Warn().Str("mode", mode).Msg("webhook verification failed")
		ctx.String(http.StatusForbidden, "Forbidden")
		return
	}

	n, err := strconv.Atoi(challenge)
	if err != nil {
		ctx.String(http.StatusForbidden, "Forbidden")
		return
	}
	ctx.String(http.StatusOK, "%d", n)
}

// POST /webhook — one Cloud API event. Delivery receipts and other
// non-text events are acknowledged without side effects.
func (ctl *Controller) receive(ctx *gin.Context) (any, *api.Error) {
	var payload whatsapp.WebhookPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid payload"}
	}

	if payload.Object != "whatsapp_business_account" {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "unexpected event object"}
	}

	msg, ok := payload.FirstTextMessage()
	if !ok {
		// a receipt, empty batch, or other non-text event; nothing to do
		return gin.H{"status": "ignored"}, nil
	}
	if msg.From == "" || msg.Text.Body == "" {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "missing sender or message body"}
	}

	reply, apiErr := ctl.handleMessage(ctx.Request.Context(), msg.From, msg.Text.Body)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := ctl.sender.SendText(ctx.Request.Context(), msg.From, reply); err != nil {
		log.Error().Err(err).Str("to", msg.From).Msg("failed to send reply")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "failed to send reply"}
	}

	return gin.H{"status": "sent"}, nil
}

// handleMessage classifies the text and builds the reply body.
func (ctl *Controller) handleMessage(ctx context.Context, from, text string) (string, *api.Error) {
	greetDue := ctl.policy.ShouldGreet(ctx, from)

	if ctl.history != nil {
		if err := ctl.history.AppendHistory(ctx, from, text); err != nil {
			log.Error().Err(err).Str("user", from).Msg("failed to record conversation history")
		}
	}

	it := intent.Classify(text)

	var reply string
	switch it.Kind {
	case intent.Greeting:
		// an inbound salutation always gets one back, cooldown or not
		return "Waalaikumsalam 🙏\n\n" + responder.Help(), nil

	case intent.Thanks:
		reply = responder.Thanks()

	case intent.HelpRequest, intent.Unrecognized:
		reply = responder.Help()

	case intent.CityRegistration:
		loc, err := ctl.resolver.Resolve(ctx, it.City)
		if err != nil {
			return "", &api.Error{Code: http.StatusInternalServerError, Message: "city registration failed"}
		}
		if loc == nil {
			reply = responder.CityRegistrationFailed(it.City)
		} else {
			reply = responder.CityRegistered(loc)
		}

	case intent.ScheduleRequest:
		hint := it.City
		if hint == "" {
			hint = ctl.defaultCity
		}

		loc, err := ctl.resolver.Resolve(ctx, hint)
		if err != nil {
			return "", &api.Error{Code: http.StatusInternalServerError, Message: "city resolution failed"}
		}
		if loc == nil {
			reply = responder.CityNotFound(hint)
			break
		}

		entry, err := ctl.cache.GetPrayerTimes(loc, schedule.Today(loc, ctl.now()))
		if err != nil {
			log.Error().Err(err).Str("city", loc.Name).Msg("failed to compute prayer times")
			return "", &api.Error{Code: http.StatusInternalServerError, Message: "failed to compute prayer times"}
		}
		reply = responder.Schedule(loc.DisplayName, entry)
	}

	if greetDue {
		reply = responder.Greeting() + reply
	}
	return reply, nil
}
