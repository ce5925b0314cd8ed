package prayertimes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dodyw/sholat-live/internal/http/api"
	"github.com/dodyw/sholat-live/internal/prayer"
)

// Controller serves direct prayer-time queries by coordinates, for clients
// other than the chat bot (widgets, the web page).
type Controller struct {
	calc            prayer.Calculator
	defaultTimezone string
}

func NewController(calc prayer.Calculator, defaultTimezone string) *Controller {
	return &Controller{calc: calc, defaultTimezone: defaultTimezone}
}

func RegisterRoutes(r gin.IRoutes, ctl *Controller) {
	r.GET("/prayertimes", api.ResolveEndpoint(ctl.daily))
	r.GET("/prayertimes/monthly", api.ResolveEndpoint(ctl.monthly))
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type dailyResponse struct {
	Date        string      `json:"date"`
	Fajr        string      `json:"fajr"`
	Sunrise     string      `json:"sunrise"`
	Dhuhr       string      `json:"dhuhr"`
	Asr         string      `json:"asr"`
	Maghrib     string      `json:"maghrib"`
	Isha        string      `json:"isha"`
	Timezone    string      `json:"timezone"`
	Coordinates coordinates `json:"coordinates"`
}

// GET /api/prayertimes?latitude=&longitude=&date=&timezone=
func (ctl *Controller) daily(ctx *gin.Context) (any, *api.Error) {
	lat, lon, apiErr := parseCoordinates(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	timezone := ctx.Query("timezone")
	if timezone == "" {
		timezone = ctl.defaultTimezone
	}

	date := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
		}
		date = parsed
	}

	entry, err := ctl.calc.ForDate("", lat, lon, date, timezone)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "error calculating prayer times: " + err.Error()}
	}

	return dailyResponse{
		Date:        entry.Date,
		Fajr:        entry.Fajr,
		Sunrise:     entry.Sunrise,
		Dhuhr:       entry.Dhuhr,
		Asr:         entry.Asr,
		Maghrib:     entry.Maghrib,
		Isha:        entry.Isha,
		Timezone:    timezone,
		Coordinates: coordinates{Latitude: lat, Longitude: lon},
	}, nil
}

type monthlyResponse struct {
	Month       int         `json:"month"`
	Year        int         `json:"year"`
	Timezone    string      `json:"timezone"`
	Coordinates coordinates `json:"coordinates"`
	PrayerTimes []dayEntry  `json:"prayerTimes"`
}

type dayEntry struct {
	Date    string `json:"date"`
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// GET /api/prayertimes/monthly?latitude=&longitude=&month=&year=&timezone=
func (ctl *Controller) monthly(ctx *gin.Context) (any, *api.Error) {
	lat, lon, apiErr := parseCoordinates(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	timezone := ctx.Query("timezone")
	if timezone == "" {
		timezone = ctl.defaultTimezone
	}

	now := time.Now()
	month := int(now.Month())
	if raw := ctx.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "month must be between 1 and 12"}
		}
		month = m
	}
	year := now.Year()
	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid year"}
		}
		year = y
	}

	entries, err := ctl.calc.ForMonth(lat, lon, year, time.Month(month), timezone)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "error calculating prayer times: " + err.Error()}
	}

	days := make([]dayEntry, 0, len(entries))
	for _, e := range entries {
		days = append(days, dayEntry{
			Date:    e.Date,
			Fajr:    e.Fajr,
			Sunrise: e.Sunrise,
			Dhuhr:   e.Dhuhr,
			Asr:     e.Asr,
			Maghrib: e.Maghrib,
			Isha:    e.Isha,
		})
	}

	return monthlyResponse{
		Month:       month,
		Year:        year,
		Timezone:    timezone,
		Coordinates: coordinates{Latitude: lat, Longitude: lon},
		PrayerTimes: days,
	}, nil
}

func parseCoordinates(ctx *gin.Context) (float64, float64, *api.Error) {
	lat, err := strconv.ParseFloat(ctx.Query("latitude"), 64)
	if err != nil {
		return 0, 0, &api.Error{Code: http.StatusBadRequest, Message: "latitude and longitude are required parameters"}
	}
	lon, err := strconv.ParseFloat(ctx.Query("longitude"), 64)
	if err != nil {
		return 0, 0, &api.Error{Code: http.StatusBadRequest, Message: "latitude and longitude are required parameters"}
	}
	return lat, lon, nil
}
