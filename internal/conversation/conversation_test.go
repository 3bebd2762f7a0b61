package conversation

import "testing"

func TestTranscriptRoles(t *testing.T) {
	var tr Transcript
	tr = tr.Append(RoleUser, "京都に行きたいです")
	tr = tr.Append(RoleAssistant, "いいですね。何日間ですか？")
	tr = tr.Append(RoleUser, "3日間です")

	if got := len(tr.UserTurns()); got != 2 {
		t.Errorf("user turns = %d, want 2", got)
	}
	if got := len(tr.AssistantTurns()); got != 1 {
		t.Errorf("assistant turns = %d, want 1", got)
	}
	if tr[0].At.IsZero() {
		t.Error("Append must stamp the turn time")
	}
}

func TestTranscriptTail(t *testing.T) {
	var tr Transcript
	for i := 0; i < 5; i++ {
		tr = tr.Append(RoleUser, "message")
	}

	if got := len(tr.Tail(3)); got != 3 {
		t.Errorf("Tail(3) = %d turns, want 3", got)
	}
	if got := len(tr.Tail(10)); got != 5 {
		t.Errorf("Tail(10) = %d turns, want 5", got)
	}
	if got := len(tr.Tail(0)); got != 5 {
		t.Errorf("Tail(0) = %d turns, want the whole transcript", got)
	}
}
