package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dodyw/sholat-live/internal/conversation"
	"github.com/dodyw/sholat-live/internal/geocode"
	"github.com/dodyw/sholat-live/internal/model"
	"github.com/dodyw/sholat-live/internal/resolver"
	"github.com/dodyw/sholat-live/internal/schedule"
)

type fakeStore struct {
	locations map[string]*model.Location
	entries   map[string]*model.PrayerTimes
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: map[string]*model.Location{},
		entries:   map[string]*model.PrayerTimes{},
	}
}

func (f *fakeStore) GetLocation(name string) (*model.Location, error) {
	return f.locations[name], nil
}
func (f *fakeStore) CreateLocation(loc *model.Location) (*model.Location, error) {
	f.locations[loc.Name] = loc
	return loc, nil
}
func (f *fakeStore) ListLocations() ([]model.Location, error) { return nil, nil }
func (f *fakeStore) GetPrayerTimes(city, date string) (*model.PrayerTimes, error) {
	return f.entries[city+"|"+date], nil
}
func (f *fakeStore) UpsertPrayerTimes(e *model.PrayerTimes) error {
	f.entries[e.City+"|"+e.Date] = e
	return nil
}

type fakeGeocoder struct{}

func (fakeGeocoder) Search(context.Context, string) (*geocode.Result, error) { return nil, nil }

type fakeTimezones struct{}

func (fakeTimezones) TimezoneFor(_, _ float64) string { return "Asia/Jakarta" }

type fakeCalc struct{}

func (fakeCalc) ForDate(city string, lat, lon float64, date time.Time, timezone string) (*model.PrayerTimes, error) {
	return &model.PrayerTimes{
		City: city, Date: date.Format("2006-01-02"),
		Fajr: "04:11", Sunrise: "05:26", Dhuhr: "11:28",
		Asr: "14:46", Maghrib: "17:26", Isha: "18:36",
	}, nil
}

type fakeContacts struct {
	last map[string]time.Time
}

func (f *fakeContacts) LastContact(_ context.Context, userID string) (time.Time, bool, error) {
	ts, ok := f.last[userID]
	return ts, ok, nil
}
func (f *fakeContacts) TouchContact(_ context.Context, userID string, now time.Time) error {
	f.last[userID] = now
	return nil
}

type fakeSender struct {
	sent []string
	to   []string
	err  error
}

func (f *fakeSender) SendText(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, body)
	return nil
}

func newTestRouter(sender *fakeSender) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	res := resolver.New(store, fakeGeocoder{}, fakeTimezones{})
	cache := schedule.NewCache(store, fakeCalc{})
	policy := conversation.NewPolicy(&fakeContacts{last: map[string]time.Time{}})

	ctl := NewController("verify-secret", "surabaya", res, cache, policy, nil, sender)

	r := gin.New()
	RegisterRoutes(r, ctl)
	return r
}

func textEvent(from, body string) string {
	return `{
		"object": "whatsapp_business_account",
		"entry": [{"id": "1", "changes": [{"field": "messages", "value": {
			"messaging_product": "whatsapp",
			"messages": [{"from": "` + from + `", "id": "wamid.X", "type": "text", "text": {"body": "` + body + `"}}]
		}}]}]
	}`
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyHandshake(t *testing.T) {
	r := newTestRouter(&fakeSender{})

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
	}{
		{"ok", "hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=1158201444", http.StatusOK, "1158201444"},
		{"bad token", "hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=42", http.StatusForbidden, "Forbidden"},
		{"bad mode", "hub.mode=unsubscribe&hub.verify_token=verify-secret&hub.challenge=42", http.StatusForbidden, "Forbidden"},
		{"non-integer challenge", "hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=abc", http.StatusForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReceiveScheduleRequest(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, textEvent("628123", "jadwal medan"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(sender.sent))
	}
	if sender.to[0] != "628123" {
		t.Errorf("reply went to %q", sender.to[0])
	}
	reply := sender.sent[0]
	if !strings.Contains(reply, "*Jadwal Sholat Medan*") {
		t.Errorf("reply missing schedule header: %q", reply)
	}
	// first contact gets the greeting prefix
	if !strings.HasPrefix(reply, "Assalamualaikum") {
		t.Errorf("first contact should be greeted: %q", reply)
	}
}

func TestReceiveGreetingCooldown(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	post(r, textEvent("628123", "jadwal"))
	post(r, textEvent("628123", "jadwal"))

	if len(sender.sent) != 2 {
		t.Fatalf("expected two outbound messages, got %d", len(sender.sent))
	}
	if !strings.HasPrefix(sender.sent[0], "Assalamualaikum") {
		t.Errorf("first reply should be greeted: %q", sender.sent[0])
	}
	if strings.HasPrefix(sender.sent[1], "Assalamualaikum") {
		t.Errorf("second reply inside the cooldown must not be greeted: %q", sender.sent[1])
	}
	// default city answers the bare command
	if !strings.Contains(sender.sent[0], "Surabaya") {
		t.Errorf("bare jadwal should answer for the default city: %q", sender.sent[0])
	}
}

func TestReceiveGreetingMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, textEvent("628123", "assalamualaikum"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(sender.sent) != 1 || !strings.HasPrefix(sender.sent[0], "Waalaikumsalam") {
		t.Errorf("greeting should be answered with a salutation: %v", sender.sent)
	}
}

func TestReceiveUnknownCity(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, textEvent("628123", "jadwal gotham"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "belum tersedia") {
		t.Errorf("unknown city should get the not-found reply: %v", sender.sent)
	}
}

func TestReceiveMalformedPayload(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, `{"object": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = post(r, `{"object": "instagram", "entry": [{}]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong object: status = %d, want 400", w.Code)
	}

	if len(sender.sent) != 0 {
		t.Errorf("malformed payloads must have no side effects, sent %v", sender.sent)
	}
}

func TestReceiveStatusReceiptIsIgnored(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, `{
		"object": "whatsapp_business_account",
		"entry": [{"id": "1", "changes": [{"field": "messages", "value": {
			"messaging_product": "whatsapp",
			"statuses": [{"id": "wamid.X", "status": "delivered", "recipient_id": "628123"}]
		}}]}]
	}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if len(sender.sent) != 0 {
		t.Errorf("receipts must not trigger replies, sent %v", sender.sent)
	}
}

func TestReceiveEmptyEntryIsIgnored(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender)

	w := post(r, `{"object": "whatsapp_business_account", "entry": []}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if len(sender.sent) != 0 {
		t.Errorf("empty batches must not trigger replies, sent %v", sender.sent)
	}
}

func TestReceiveSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("graph api down")}
	r := newTestRouter(sender)

	w := post(r, textEvent("628123", "jadwal"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
