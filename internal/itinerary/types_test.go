package itinerary

import "testing"

func TestPhaseIsTerminal(t *testing.T) {
	if PhaseDetailing.IsTerminal() {
		t.Error("detailing is not terminal")
	}
	if !PhaseCompleted.IsTerminal() {
		t.Error("completed is terminal")
	}
}

func TestDayOverflow(t *testing.T) {
	itin := &Itinerary{
		Duration: 2,
		Schedule: []DaySchedule{{Day: 1}, {Day: 2}, {Day: 3}},
	}
	if got := itin.DayOverflow(); got != 1 {
		t.Errorf("DayOverflow = %d, want 1", got)
	}

	itin.Duration = 0
	if got := itin.DayOverflow(); got != 0 {
		t.Errorf("DayOverflow with no duration = %d, want 0", got)
	}
}

func TestClone_Independence(t *testing.T) {
	budget := 50000.0
	itin := &Itinerary{
		ID:          "i1",
		TotalBudget: &budget,
		Schedule: []DaySchedule{
			{Day: 1, Spots: []TouristSpot{{ID: "s1", Location: &GeoLocation{Latitude: 35.0}}}},
		},
	}

	clone := itin.Clone()
	clone.Schedule[0].Spots[0].Name = "changed"
	*clone.TotalBudget = 1
	clone.Schedule[0].Spots[0].Location.Latitude = 0

	if itin.Schedule[0].Spots[0].Name == "changed" {
		t.Error("clone shares spot slice with original")
	}
	if *itin.TotalBudget != 50000 {
		t.Error("clone shares budget pointer with original")
	}
	if itin.Schedule[0].Spots[0].Location.Latitude != 35.0 {
		t.Error("clone shares location pointer with original")
	}
}

func TestTotalDays(t *testing.T) {
	itin := &Itinerary{Duration: 3, Schedule: []DaySchedule{{Day: 1}}}
	if itin.TotalDays() != 3 {
		t.Errorf("TotalDays = %d, want 3", itin.TotalDays())
	}
	itin.Duration = 0
	if itin.TotalDays() != 1 {
		t.Errorf("TotalDays = %d, want 1", itin.TotalDays())
	}
}
