package cities

import (
	"sort"
	"strings"

	"github.com/dodyw/sholat-live/internal/model"
)

// City is one built-in entry. Coordinates cover the 50 largest Indonesian
// cities; the city key is the lowercased name with spaces removed.
type City struct {
	Name        string
	DisplayName string
	Latitude    float64
	Longitude   float64
	Timezone    string
	Aliases     []string
}

var builtin = []City{
	// Java
	{"jakarta", "Jakarta", -6.2088, 106.8456, "Asia/Jakarta",
		[]string{"dki", "dki jakarta", "jakarta pusat", "jakpus", "jakarta selatan", "jaksel", "jakarta timur", "jaktim", "jakarta barat", "jakbar", "jakarta utara", "jakut"}},
	{"surabaya", "Surabaya", -7.2575, 112.7521, "Asia/Jakarta", []string{"sby", "suroboyo"}},
	{"bandung", "Bandung", -6.9175, 107.6191, "Asia/Jakarta", []string{"bdg", "paris van java"}},
	{"semarang", "Semarang", -7.0051, 110.4381, "Asia/Jakarta", []string{"smg"}},
	{"yogyakarta", "Yogyakarta", -7.7971, 110.3688, "Asia/Jakarta", []string{"jogja", "yogya", "jogjakarta", "diy"}},
	{"malang", "Malang", -7.9797, 112.6304, "Asia/Jakarta", []string{"mlg"}},
	{"bogor", "Bogor", -6.5971, 106.8060, "Asia/Jakarta", []string{"bgr"}},
	{"tangerang", "Tangerang", -6.1784, 106.6319, "Asia/Jakarta", []string{"tang", "tangsel", "tangerang selatan"}},
	{"depok", "Depok", -6.4025, 106.7942, "Asia/Jakarta", []string{"dpk"}},
	{"bekasi", "Bekasi", -6.2349, 106.9896, "Asia/Jakarta", []string{"bks"}},
	{"serang", "Serang", -6.1104, 106.1640, "Asia/Jakarta", nil},
	{"cilegon", "Cilegon", -6.0174, 106.0541, "Asia/Jakarta", nil},
	{"cirebon", "Cirebon", -6.7320, 108.5523, "Asia/Jakarta", nil},
	{"sukabumi", "Sukabumi", -6.9277, 106.9300, "Asia/Jakarta", nil},
	{"tasikmalaya", "Tasikmalaya", -7.3274, 108.2207, "Asia/Jakarta", nil},
	{"pekalongan", "Pekalongan", -6.8898, 109.6746, "Asia/Jakarta", nil},
	{"tegal", "Tegal", -6.8797, 109.1256, "Asia/Jakarta", nil},
	{"magelang", "Magelang", -7.4797, 110.2177, "Asia/Jakarta", nil},
	{"solo", "Solo", -7.5755, 110.8243, "Asia/Jakarta", []string{"surakarta"}},
	{"purwokerto", "Purwokerto", -7.4206, 109.2372, "Asia/Jakarta", nil},
	{"kediri", "Kediri", -7.8168, 112.0184, "Asia/Jakarta", nil},

	// Sumatra
	{"medan", "Medan", 3.5952, 98.6722, "Asia/Jakarta", []string{"mdn"}},
	{"palembang", "Palembang", -2.9761, 104.7754, "Asia/Jakarta", []string{"plg", "plbg"}},
	{"bandaaceh", "Banda Aceh", 5.5483, 95.3238, "Asia/Jakarta", []string{"aceh"}},
	{"padang", "Padang", -0.9471, 100.4172, "Asia/Jakarta", []string{"pdg"}},
	{"pekanbaru", "Pekanbaru", 0.5103, 101.4478, "Asia/Jakarta", []string{"pkb", "pku"}},
	{"jambi", "Jambi", -1.6101, 103.6131, "Asia/Jakarta", []string{"jmb"}},
	{"bengkulu", "Bengkulu", -3.7928, 102.2608, "Asia/Jakarta", []string{"bgl"}},
	{"bandarlampung", "Bandar Lampung", -5.3971, 105.2668, "Asia/Jakarta", []string{"lampung"}},
	{"pematangsiantar", "Pematang Siantar", 2.9570, 99.0681, "Asia/Jakarta", []string{"siantar"}},
	{"batam", "Batam", 1.1301, 104.0529, "Asia/Jakarta", nil},
	{"tanjungpinang", "Tanjung Pinang", 0.9179, 104.4665, "Asia/Jakarta", nil},
	{"pangkalpinang", "Pangkal Pinang", -2.1316, 106.1169, "Asia/Jakarta", nil},

	// Kalimantan
	{"pontianak", "Pontianak", -0.0263, 109.3425, "Asia/Jakarta", []string{"ptk"}},
	{"palangkaraya", "Palangka Raya", -2.2161, 113.9135, "Asia/Jakarta", []string{"plk"}},
	{"banjarmasin", "Banjarmasin", -3.3186, 114.5944, "Asia/Makassar", []string{"bjm", "banjar"}},
	{"banjarbaru", "Banjarbaru", -3.4572, 114.8313, "Asia/Makassar", nil},
	{"samarinda", "Samarinda", -0.4948, 117.1436, "Asia/Makassar", []string{"smd"}},
	{"balikpapan", "Balikpapan", -1.2379, 116.8529, "Asia/Makassar", []string{"bpp"}},

	// Sulawesi
	{"makassar", "Makassar", -5.1477, 119.4327, "Asia/Makassar", []string{"ujung pandang", "mks"}},
	{"manado", "Manado", 1.4748, 124.8421, "Asia/Makassar", []string{"mnd"}},
	{"palu", "Palu", -0.9003, 119.8779, "Asia/Makassar", []string{"plu"}},
	{"gorontalo", "Gorontalo", 0.5375, 123.0568, "Asia/Makassar", []string{"gto"}},
	{"kendari", "Kendari", -3.9985, 122.5127, "Asia/Makassar", []string{"kdi"}},
	{"mamuju", "Mamuju", -2.6748, 118.8885, "Asia/Makassar", nil},

	// Bali, Nusa Tenggara
	{"denpasar", "Denpasar", -8.6500, 115.2167, "Asia/Makassar", []string{"bali", "dps"}},
	{"mataram", "Mataram", -8.5833, 116.1167, "Asia/Makassar", []string{"mtr", "lombok"}},
	{"kupang", "Kupang", -10.1772, 123.6070, "Asia/Makassar", []string{"kpg"}},

	// Maluku, Papua
	{"ambon", "Ambon", -3.6954, 128.1814, "Asia/Jayapura", []string{"amb"}},
	{"ternate", "Ternate", 0.7963, 127.3862, "Asia/Jayapura", []string{"tnt"}},
	{"jayapura", "Jayapura", -2.5916, 140.6690, "Asia/Jayapura", []string{"papua", "djj"}},
	{"sorong", "Sorong", -0.8767, 131.2558, "Asia/Jayapura", nil},
}

// international covers a handful of well-known cities abroad. Consulted
// only when geocoding yields nothing usable.
var international = []City{
	{"tokyo", "Tokyo", 35.6762, 139.6503, "Asia/Tokyo", nil},
	{"beijing", "Beijing", 39.9042, 116.4074, "Asia/Shanghai", nil},
	{"hongkong", "Hong Kong", 22.3193, 114.1694, "Asia/Hong_Kong", []string{"hong kong"}},
	{"singapore", "Singapore", 1.3521, 103.8198, "Asia/Singapore", []string{"singapura"}},
	{"seoul", "Seoul", 37.5665, 126.9780, "Asia/Seoul", nil},
	{"bangkok", "Bangkok", 13.7563, 100.5018, "Asia/Bangkok", nil},
	{"kualalumpur", "Kuala Lumpur", 3.1390, 101.6869, "Asia/Kuala_Lumpur", []string{"kuala lumpur", "kl"}},
}

var (
	byKey     = map[string]*City{}
	intlByKey = map[string]*City{}
)

func init() {
	for i := range builtin {
		c := &builtin[i]
		byKey[c.Name] = c
		for _, a := range c.Aliases {
			byKey[Normalize(a)] = c
		}
	}
	for i := range international {
		c := &international[i]
		intlByKey[c.Name] = c
		for _, a := range c.Aliases {
			intlByKey[Normalize(a)] = c
		}
	}
}

// Normalize folds free-text input to the joined-words key form:
// "Banda Aceh" -> "bandaaceh".
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// Lookup finds a built-in Indonesian city by name or alias.
func Lookup(name string) (*City, bool) {
	c, ok := byKey[Normalize(name)]
	return c, ok
}

// LookupInternational finds one of the fixed international override cities.
func LookupInternational(name string) (*City, bool) {
	c, ok := intlByKey[Normalize(name)]
	return c, ok
}

// All returns the built-in cities in table order.
func All() []City {
	return builtin
}

// DisplayNames returns the sorted display names of all built-in cities,
// used for the "kota belum tersedia" reply.
func DisplayNames() []string {
	names := make([]string, 0, len(builtin))
	for _, c := range builtin {
		names = append(names, c.DisplayName)
	}
	sort.Strings(names)
	return names
}

// Location converts a built-in entry to the shared location record.
func (c *City) Location() *model.Location {
	return &model.Location{
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Timezone:    c.Timezone,
		Aliases:     append([]string(nil), c.Aliases...),
	}
}
