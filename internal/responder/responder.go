package responder

import (
	"fmt"
	"strings"
	"time"

	"github.com/dodyw/sholat-live/internal/cities"
	"github.com/dodyw/sholat-live/internal/model"
)

var indonesianDays = [...]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Greeting is prefixed to a reply after the cooldown gap.
func Greeting() string {
	return "Assalamualaikum 🙏\n\n"
}

func Thanks() string {
	return "Sama-sama, semoga bermanfaat 🙏"
}

func Help() string {
	return "Untuk melihat jadwal sholat, ketik:\n" +
		"*jadwal* untuk Surabaya\n" +
		"atau\n" +
		"*jadwal [nama_kota]* untuk kota lain\n" +
		"Contoh: jadwal banda aceh\n\n" +
		"Kota belum ada? Ketik: *tambah kota [nama_kota]*"
}

// Schedule renders one day of prayer times the way the bot has always
// formatted them.
func Schedule(displayName string, entry *model.PrayerTimes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Jadwal Sholat %s*\n", displayName)
	fmt.Fprintf(&b, "%s\n\n", indonesianDate(entry.Date))
	fmt.Fprintf(&b, "Subuh: %s\n", entry.Fajr)
	fmt.Fprintf(&b, "Terbit: %s\n", entry.Sunrise)
	fmt.Fprintf(&b, "Dzuhur: %s\n", entry.Dhuhr)
	fmt.Fprintf(&b, "Ashar: %s\n", entry.Asr)
	fmt.Fprintf(&b, "Maghrib: %s\n", entry.Maghrib)
	fmt.Fprintf(&b, "Isya: %s", entry.Isha)
	return b.String()
}

// CityNotFound lists the available cities so the user can retry.
func CityNotFound(cityInput string) string {
	return fmt.Sprintf("Maaf, kota %s belum tersedia.\nKota yang tersedia:\n%s",
		cityInput, strings.Join(cities.DisplayNames(), "\n"))
}

func CityRegistered(loc *model.Location) string {
	return fmt.Sprintf("Kota %s berhasil ditambahkan ✅\nKetik *jadwal %s* untuk melihat jadwal sholatnya.",
		loc.DisplayName, strings.ToLower(loc.DisplayName))
}

func CityRegistrationFailed(cityInput string) string {
	return fmt.Sprintf("Maaf, kota %s tidak ditemukan. Periksa kembali penulisan nama kotanya.", cityInput)
}

// indonesianDate renders "2026-09-01" as "Selasa, 1 September 2026".
// A date that fails to parse is shown as-is.
func indonesianDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s, %d %s %d",
		indonesianDays[t.Weekday()], t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
