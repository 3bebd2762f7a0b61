// Package extract turns free-text conversation turns into typed trip facts.
//
// Extraction is deliberately simple pattern matching: keyword lists and
// regular expressions over the user's turns. Every extractor is pure and
// deterministic, and a miss is never an error — it just yields the zero
// value. The canonical itinerary is authoritative: facts it already carries
// are returned unchanged without scanning the transcript.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Travelers describes who is taking the trip.
type Travelers struct {
	Count int    `json:"count"`
	Type  string `json:"type"` // solo, couple, family, friends, group
}

// Facts is a partial record of trip facts pulled from the conversation.
// Zero values mean "not extracted".
type Facts struct {
	Destination     string     `json:"destination,omitempty"`
	Duration        int        `json:"duration,omitempty"`
	Budget          int        `json:"budget,omitempty"` // yen
	Travelers       *Travelers `json:"travelers,omitempty"`
	Interests       []string   `json:"interests,omitempty"`
	Pace            string     `json:"pace,omitempty"` // relaxed, packed
	SpecificSpots   []string   `json:"specificSpots,omitempty"`
	MealPreferences []string   `json:"mealPreferences,omitempty"`
	Accommodation   string     `json:"accommodation,omitempty"`
}

// Extract runs every extractor over the transcript and current itinerary.
func Extract(tr conversation.Transcript, itin *itinerary.Itinerary) Facts {
	return Facts{
		Destination:     ExtractDestination(tr, itin),
		Duration:        ExtractDuration(tr, itin),
		Budget:          ExtractBudget(tr, itin),
		Travelers:       ExtractTravelers(tr),
		Interests:       ExtractInterests(tr),
		Pace:            ExtractPace(tr),
		SpecificSpots:   ExtractSpecificSpots(tr),
		MealPreferences: ExtractMealPreferences(tr),
		Accommodation:   ExtractAccommodation(tr),
	}
}

// knownDestinations is the city/region keyword list, most specific first.
var knownDestinations = []string{
	"京都", "東京", "大阪", "北海道", "沖縄", "奈良", "福岡", "名古屋",
	"神戸", "広島", "札幌", "金沢", "箱根", "鎌倉", "日光", "長崎",
	"仙台", "横浜", "高山", "軽井沢",
}

// ExtractDestination returns the trip destination, preferring the canonical
// itinerary and otherwise scanning user turns most-recent-first for a known
// city or region name.
func ExtractDestination(tr conversation.Transcript, itin *itinerary.Itinerary) string {
	if itin != nil && itin.Destination != "" {
		return itin.Destination
	}
	return scanUserTurns(tr, func(text string) (string, bool) {
		for _, dest := range knownDestinations {
			if strings.Contains(text, dest) {
				return dest, true
			}
		}
		return "", false
	})
}

var (
	stayNightsRe = regexp.MustCompile(`(\d+)泊(\d+)日`)
	daysRe       = regexp.MustCompile(`(\d+)日間?`)
)

// ExtractDuration returns the trip length in days. Recognizes "N泊M日"
// (M wins), "N日間"/"N日", and "日帰り" (1 day).
func ExtractDuration(tr conversation.Transcript, itin *itinerary.Itinerary) int {
	if itin != nil && itin.Duration > 0 {
		return itin.Duration
	}
	got := scanUserTurns(tr, func(text string) (string, bool) {
		if m := stayNightsRe.FindStringSubmatch(text); m != nil {
			return m[2], true
		}
		if m := daysRe.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		if strings.Contains(text, "日帰り") {
			return "1", true
		}
		return "", false
	})
	if got == "" {
		return 0
	}
	n, err := strconv.Atoi(got)
	if err != nil {
		return 0
	}
	return n
}

var (
	manYenRe = regexp.MustCompile(`(\d+)万円`)
	yenRe    = regexp.MustCompile(`(\d+)円`)
)

// ExtractBudget returns the total budget in yen ("N万円" or "N円").
func ExtractBudget(tr conversation.Transcript, itin *itinerary.Itinerary) int {
	if itin != nil && itin.TotalBudget != nil && *itin.TotalBudget > 0 {
		return int(*itin.TotalBudget)
	}
	got := scanUserTurns(tr, func(text string) (string, bool) {
		if m := manYenRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return strconv.Itoa(n * 10000), true
		}
		if m := yenRe.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", false
	})
	if got == "" {
		return 0
	}
	n, _ := strconv.Atoi(got)
	return n
}

var (
	countRe       = regexp.MustCompile(`(\d+)人`)
	kanjiCounts   = map[string]int{"一人": 1, "二人": 2, "三人": 3, "四人": 4, "五人": 5}
	travelerTypes = []struct {
		kind     string
		keywords []string
	}{
		{"couple", []string{"彼女", "彼氏", "カップル", "夫婦", "恋人"}},
		{"family", []string{"家族", "子供", "子連れ", "両親"}},
		{"friends", []string{"友達", "友人", "仲間"}},
		{"solo", []string{"一人旅", "ひとり旅", "ソロ", "一人で", "ひとりで"}},
	}
)

// ExtractTravelers returns the party size and relationship type. A type
// without an explicit count falls back to its natural size (couple=2,
// solo=1). Returns nil when nothing matched.
func ExtractTravelers(tr conversation.Transcript) *Travelers {
	users := tr.UserTurns()
	for i := len(users) - 1; i >= 0; i-- {
		text := foldWidth(users[i].Content)

		count := 0
		if m := countRe.FindStringSubmatch(text); m != nil {
			count, _ = strconv.Atoi(m[1])
		}
		if count == 0 {
			for word, n := range kanjiCounts {
				if strings.Contains(text, word) {
					count = n
					break
				}
			}
		}

		kind := ""
		for _, tt := range travelerTypes {
			for _, kw := range tt.keywords {
				if strings.Contains(text, kw) {
					kind = tt.kind
					break
				}
			}
			if kind != "" {
				break
			}
		}

		if count == 0 && kind == "" {
			continue
		}
		if count == 0 {
			switch kind {
			case "couple":
				count = 2
			case "solo":
				count = 1
			}
		}
		if kind == "" {
			if count == 1 {
				kind = "solo"
			} else {
				kind = "group"
			}
		}
		return &Travelers{Count: count, Type: kind}
	}
	return nil
}

// interestBuckets maps interest tags to their trigger keywords. Slice order
// keeps extraction output deterministic.
var interestBuckets = []struct {
	tag      string
	keywords []string
}{
	{"history", []string{"歴史", "神社", "寺", "城", "史跡"}},
	{"food", []string{"グルメ", "食べ歩き", "料理", "食事", "名物"}},
	{"nature", []string{"自然", "山", "海", "景色", "絶景", "紅葉"}},
	{"art", []string{"美術館", "博物館", "アート"}},
	{"shopping", []string{"買い物", "ショッピング", "お土産"}},
	{"onsen", []string{"温泉"}},
	{"nightlife", []string{"夜景", "バー", "ナイトライフ"}},
	{"anime", []string{"アニメ", "聖地巡礼"}},
}

// ExtractInterests returns every interest bucket triggered anywhere in the
// user turns, deduplicated, in bucket order.
func ExtractInterests(tr conversation.Transcript) []string {
	var out []string
	for _, bucket := range interestBuckets {
		for _, turn := range tr.UserTurns() {
			if containsAny(turn.Content, bucket.keywords) {
				out = append(out, bucket.tag)
				break
			}
		}
	}
	return out
}

// ExtractPace classifies the desired trip tempo.
func ExtractPace(tr conversation.Transcript) string {
	return scanUserTurns(tr, func(text string) (string, bool) {
		if containsAny(text, []string{"ゆっくり", "のんびり", "まったり"}) {
			return "relaxed", true
		}
		if containsAny(text, []string{"詰め込", "たくさん回", "効率よく", "フルに"}) {
			return "packed", true
		}
		return "", false
	})
}

// knownSpots is the named-attraction keyword list for preference capture.
var knownSpots = []string{
	"清水寺", "金閣寺", "伏見稲荷", "嵐山", "銀閣寺",
	"東京タワー", "スカイツリー", "浅草寺", "明治神宮",
	"大阪城", "道頓堀", "ユニバ", "USJ", "ディズニー",
	"厳島神社", "兼六園", "白川郷",
}

// ExtractSpecificSpots returns every known attraction mentioned in the
// user turns, deduplicated, first-mention order.
func ExtractSpecificSpots(tr conversation.Transcript) []string {
	var out []string
	seen := map[string]bool{}
	for _, turn := range tr.UserTurns() {
		for _, spot := range knownSpots {
			if !seen[spot] && strings.Contains(turn.Content, spot) {
				seen[spot] = true
				out = append(out, spot)
			}
		}
	}
	return out
}

var mealBuckets = []struct {
	tag      string
	keywords []string
}{
	{"washoku", []string{"和食", "懐石", "定食"}},
	{"sushi", []string{"寿司", "すし", "海鮮"}},
	{"ramen", []string{"ラーメン"}},
	{"yakiniku", []string{"焼肉", "焼き肉"}},
	{"italian", []string{"イタリアン", "パスタ"}},
	{"cafe", []string{"カフェ", "スイーツ", "甘いもの"}},
	{"vegetarian", []string{"ベジタリアン", "ビーガン", "精進料理"}},
}

// ExtractMealPreferences returns the meal-preference tags triggered in the
// user turns, in bucket order.
func ExtractMealPreferences(tr conversation.Transcript) []string {
	var out []string
	for _, bucket := range mealBuckets {
		for _, turn := range tr.UserTurns() {
			if containsAny(turn.Content, bucket.keywords) {
				out = append(out, bucket.tag)
				break
			}
		}
	}
	return out
}

// ExtractAccommodation classifies the preferred lodging style.
func ExtractAccommodation(tr conversation.Transcript) string {
	return scanUserTurns(tr, func(text string) (string, bool) {
		switch {
		case strings.Contains(text, "旅館"):
			return "ryokan", true
		case strings.Contains(text, "ゲストハウス"), strings.Contains(text, "民泊"):
			return "guesthouse", true
		case strings.Contains(text, "カプセル"):
			return "capsule", true
		case strings.Contains(text, "ホテル"):
			return "hotel", true
		}
		return "", false
	})
}

// scanUserTurns walks user turns most-recent-first and returns the first
// match. Turn text is width-folded so full-width digits match ASCII
// patterns.
func scanUserTurns(tr conversation.Transcript, match func(string) (string, bool)) string {
	users := tr.UserTurns()
	for i := len(users) - 1; i >= 0; i-- {
		if got, ok := match(foldWidth(users[i].Content)); ok {
			return got
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
