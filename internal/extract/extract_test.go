package extract

import (
	"testing"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

func userTranscript(messages ...string) conversation.Transcript {
	var tr conversation.Transcript
	for _, m := range messages {
		tr = tr.Append(conversation.RoleUser, m)
	}
	return tr
}

func TestExtractDestination(t *testing.T) {
	tr := userTranscript("京都に3日間行きたいです")
	if got := ExtractDestination(tr, nil); got != "京都" {
		t.Errorf("destination = %q, want 京都", got)
	}
}

func TestExtractDestination_ItineraryWins(t *testing.T) {
	tr := userTranscript("大阪も気になります")
	itin := &itinerary.Itinerary{Destination: "京都"}
	if got := ExtractDestination(tr, itin); got != "京都" {
		t.Errorf("destination = %q, itinerary must be authoritative", got)
	}
}

func TestExtractDestination_MostRecentWins(t *testing.T) {
	tr := userTranscript("東京に行きたい", "やっぱり京都にします")
	if got := ExtractDestination(tr, nil); got != "京都" {
		t.Errorf("destination = %q, want the most recent mention", got)
	}
}

func TestExtractDuration(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"京都に3日間行きたいです", 3},
		{"2泊3日で考えています", 3},
		{"日帰りで行きます", 1},
		{"３日間お願いします", 3}, // full-width digits
		{"予算は5万円です", 0},
	}
	for _, tc := range cases {
		tr := userTranscript(tc.text)
		if got := ExtractDuration(tr, nil); got != tc.want {
			t.Errorf("ExtractDuration(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestExtractBudget(t *testing.T) {
	tr := userTranscript("予算は5万円くらいです")
	if got := ExtractBudget(tr, nil); got != 50000 {
		t.Errorf("budget = %d, want 50000", got)
	}

	tr = userTranscript("一人3000円までで")
	if got := ExtractBudget(tr, nil); got != 3000 {
		t.Errorf("budget = %d, want 3000", got)
	}
}

func TestExtractTravelers_Couple(t *testing.T) {
	tr := userTranscript("彼女と二人で行きます")
	got := ExtractTravelers(tr)
	if got == nil {
		t.Fatal("expected travelers, got nil")
	}
	if got.Count != 2 || got.Type != "couple" {
		t.Errorf("travelers = %+v, want {Count:2 Type:couple}", got)
	}
}

func TestExtractTravelers_TypeImpliesCount(t *testing.T) {
	tr := userTranscript("夫婦で旅行します")
	got := ExtractTravelers(tr)
	if got == nil || got.Count != 2 || got.Type != "couple" {
		t.Errorf("travelers = %+v, want couple of 2", got)
	}

	tr = userTranscript("一人旅です")
	got = ExtractTravelers(tr)
	if got == nil || got.Count != 1 || got.Type != "solo" {
		t.Errorf("travelers = %+v, want solo of 1", got)
	}
}

func TestExtractTravelers_CountOnly(t *testing.T) {
	tr := userTranscript("4人で行きます")
	got := ExtractTravelers(tr)
	if got == nil || got.Count != 4 || got.Type != "group" {
		t.Errorf("travelers = %+v, want group of 4", got)
	}
}

func TestExtractTravelers_NoMatch(t *testing.T) {
	tr := userTranscript("京都に行きたいです")
	if got := ExtractTravelers(tr); got != nil {
		t.Errorf("travelers = %+v, want nil", got)
	}
}

func TestExtractInterests(t *testing.T) {
	tr := userTranscript("神社やお寺を回りたい", "グルメも楽しみたいです")
	got := ExtractInterests(tr)
	if len(got) != 2 || got[0] != "history" || got[1] != "food" {
		t.Errorf("interests = %v, want [history food]", got)
	}
}

func TestExtractPace(t *testing.T) {
	tr := userTranscript("ゆっくり観光したいです")
	if got := ExtractPace(tr); got != "relaxed" {
		t.Errorf("pace = %q, want relaxed", got)
	}
}

func TestExtractSpecificSpots(t *testing.T) {
	tr := userTranscript("清水寺は絶対行きたい", "金閣寺と清水寺も見たい")
	got := ExtractSpecificSpots(tr)
	if len(got) != 2 || got[0] != "清水寺" || got[1] != "金閣寺" {
		t.Errorf("spots = %v, want [清水寺 金閣寺]", got)
	}
}

func TestExtractAccommodation(t *testing.T) {
	tr := userTranscript("旅館に泊まりたいです")
	if got := ExtractAccommodation(tr); got != "ryokan" {
		t.Errorf("accommodation = %q, want ryokan", got)
	}
}

func TestExtract_Composite(t *testing.T) {
	tr := userTranscript(
		"京都に3日間行きたいです",
		"彼女と二人で、予算は5万円です",
		"歴史的な場所とグルメを楽しみたい",
	)
	facts := Extract(tr, nil)

	if facts.Destination != "京都" {
		t.Errorf("destination = %q", facts.Destination)
	}
	if facts.Duration != 3 {
		t.Errorf("duration = %d", facts.Duration)
	}
	if facts.Budget != 50000 {
		t.Errorf("budget = %d", facts.Budget)
	}
	if facts.Travelers == nil || facts.Travelers.Type != "couple" {
		t.Errorf("travelers = %+v", facts.Travelers)
	}
	if len(facts.Interests) != 2 {
		t.Errorf("interests = %v", facts.Interests)
	}
}
