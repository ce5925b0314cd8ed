package intent

import (
	"regexp"
	"strings"
)

// Kind tags a classified message.
type Kind int

const (
	Unrecognized Kind = iota
	Greeting
	Thanks
	HelpRequest
	ScheduleRequest
	CityRegistration
)

// Intent is the classification result. City is the extracted city hint for
// ScheduleRequest and CityRegistration; empty means no city was mentioned.
type Intent struct {
	Kind Kind
	City string
}

// Word lists and patterns are tried strictly in order; the first match wins.
// Later patterns are intentionally shadowed by earlier ones, and the tests
// pin that precedence.
var (
	islamicGreetings = regexp.MustCompile(`\b(assalamualaikum|assalamu'alaikum|asalamualaikum|salam)\b`)
	plainGreetings   = regexp.MustCompile(`\b(halo|hai|hallo|hello|hi)\b`)
	timeGreetings    = regexp.MustCompile(`\bselamat\s+(pagi|siang|sore|malam)\b|^(pagi|siang|sore|malam)$`)
	thanksWords      = regexp.MustCompile(`\b(terima\s*kasih|makasih|trims|thanks|thank\s+you)\b`)
	helpWords        = regexp.MustCompile(`\b(help|bantuan|menu|panduan|cara\s+pakai|gimana\s+cara|bagaimana\s+cara)\b`)

	registrationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^tambah(?:kan)?\s+kota\s+(.+)$`),
		regexp.MustCompile(`^daftar(?:kan)?\s+kota\s+(.+)$`),
		regexp.MustCompile(`^kota\s+(.+?)\s+belum\s+(?:ada|tersedia)$`),
	}

	// command prefix form: "jadwal", "jadwal medan", "jadwal sholat di medan"
	commandPattern = regexp.MustCompile(`^jadwal(?:\s+(?:sholat|shalat|solat))?(?:\s+di)?(?:\s+(.+))?$`)

	// natural-language request templates
	schedulePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:waktu|jam|jadwal)\s+(?:sholat|shalat|solat)\s+(?:di|untuk|buat)\s+(.+)$`),
		regexp.MustCompile(`^kapan\s+(?:waktu\s+)?(?:sholat|shalat|solat)\s+(?:di\s+)?(.+)$`),
		regexp.MustCompile(`^(.+?)\s+jadwal\s+(?:sholat|shalat|solat)$`),
		regexp.MustCompile(`^(?:subuh|dzuhur|ashar|maghrib|isya|terbit)\s+(?:di\s+)?(.+)$`),
		regexp.MustCompile(`^(?:minta|mohon|tolong)\s+jadwal(?:\s+(?:sholat|shalat|solat))?\s+(.+)$`),
		regexp.MustCompile(`^(?:sholat|shalat|solat)\s+(?:hari\s+ini|besok|sekarang)\s+(?:di\s+)?(.+)$`),
		regexp.MustCompile(`^(?:sholat|shalat|solat)\s+(?:di\s+)?(.+)$`),
	}

	// a message that is nothing but letters and spaces is taken as a bare
	// city name
	bareCityPattern = regexp.MustCompile(`^[a-z]+(?: [a-z]+)*$`)

	relativeTime = regexp.MustCompile(`\b(hari\s+ini|besok|sekarang)\b`)

	stopWords = map[string]struct{}{
		"kota":     {},
		"daerah":   {},
		"wilayah":  {},
		"area":     {},
		"sekarang": {},
		"besok":    {},
		"ini":      {},
	}
)

// Classify maps a free-text message to an Intent.
func Classify(text string) Intent {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" {
		return Intent{Kind: Unrecognized}
	}

	switch {
	case islamicGreetings.MatchString(msg),
		plainGreetings.MatchString(msg),
		timeGreetings.MatchString(msg):
		return Intent{Kind: Greeting}
	case thanksWords.MatchString(msg):
		return Intent{Kind: Thanks}
	case helpWords.MatchString(msg):
		return Intent{Kind: HelpRequest}
	}

	for _, re := range registrationPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			if city := CleanCity(m[1]); city != "" {
				return Intent{Kind: CityRegistration, City: city}
			}
		}
	}

	if m := commandPattern.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: ScheduleRequest, City: CleanCity(m[1])}
	}

	for _, re := range schedulePatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			if city := CleanCity(m[1]); city != "" {
				return Intent{Kind: ScheduleRequest, City: city}
			}
		}
	}

	if bareCityPattern.MatchString(msg) {
		return Intent{Kind: ScheduleRequest, City: msg}
	}

	return Intent{Kind: Unrecognized}
}

// CleanCity strips relative-time phrases and filler words from a captured
// city hint, keeping internal spaces of multi-word names intact.
func CleanCity(raw string) string {
	raw = relativeTime.ReplaceAllString(strings.ToLower(raw), " ")

	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		if _, skip := stopWords[f]; skip {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
