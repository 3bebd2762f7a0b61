package response

import (
	"strings"
	"testing"
)

func TestAccumulator_PayloadSplitAcrossChunks(t *testing.T) {
	var acc Accumulator

	if got := acc.Feed("プランを更新します。\n```json\n{\"title\":"); got != nil {
		t.Errorf("incomplete fence must not yield a payload, got %v", got)
	}
	got := acc.Feed(" \"京都の旅\"}\n```\n以上です。")
	if len(got) != 1 {
		t.Fatalf("expected 1 payload on fence completion, got %d", len(got))
	}
	if got[0].Title != "京都の旅" {
		t.Errorf("payload = %+v", got[0])
	}

	// The same payload must never be reported twice.
	if again := acc.Feed("追記です。"); again != nil {
		t.Errorf("completed payload re-reported: %v", again)
	}
}

func TestAccumulator_MultiplePayloads(t *testing.T) {
	var acc Accumulator
	got := acc.Feed("```json\n{\"title\":\"一\"}\n```x```json\n{\"title\":\"二\"}\n```")
	if len(got) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(got))
	}
	if got[0].Title != "一" || got[1].Title != "二" {
		t.Errorf("payloads = %+v, %+v", got[0], got[1])
	}
}

func TestAccumulator_MalformedBlockSkipped(t *testing.T) {
	var acc Accumulator
	if got := acc.Feed("```json\n{oops}\n```"); got != nil {
		t.Errorf("malformed block must be skipped, got %v", got)
	}
	got := acc.Feed("```json\n{\"title\":\"良\"}\n```")
	if len(got) != 1 || got[0].Title != "良" {
		t.Errorf("later valid block must still parse, got %v", got)
	}
}

func TestAccumulator_MessageHidesOpenFence(t *testing.T) {
	var acc Accumulator
	acc.Feed("ここまでが本文です。\n```json\n{\"title\":")
	msg := acc.Message()
	if strings.Contains(msg, "```") || strings.Contains(msg, "title") {
		t.Errorf("open payload block must be hidden: %q", msg)
	}
	if !strings.Contains(msg, "ここまでが本文です。") {
		t.Errorf("prose must survive: %q", msg)
	}
}

func TestAccumulator_Discard(t *testing.T) {
	var acc Accumulator
	acc.Feed("本文\n```json\n{\"title\":\"捨\"}\n```")
	acc.Discard()

	if acc.Raw() != "" || acc.Message() != "" {
		t.Error("discard must drop all state")
	}
	got := acc.Feed("```json\n{\"title\":\"新\"}\n```")
	if len(got) != 1 || got[0].Title != "新" {
		t.Errorf("accumulator must be reusable after discard, got %v", got)
	}
}

func TestAccumulator_BareFencePayload(t *testing.T) {
	var acc Accumulator
	if got := acc.Feed("できました。\n```\n{\"title\": \"京"); got != nil {
		t.Errorf("incomplete fence must not yield a payload, got %v", got)
	}
	got := acc.Feed("都の旅\"}\n```")
	if len(got) != 1 || got[0].Title != "京都の旅" {
		t.Fatalf("bare-fenced payload = %v", got)
	}
	if msg := acc.Message(); strings.Contains(msg, "title") {
		t.Errorf("payload text must not reach the message: %q", msg)
	}
}

func TestAccumulator_NonPayloadFenceKept(t *testing.T) {
	var acc Accumulator
	if got := acc.Feed("持ち物です。\n```\n- パスポート\n```\n以上。"); got != nil {
		t.Errorf("a verbatim fence is not a payload, got %v", got)
	}
	msg := acc.Message()
	if !strings.Contains(msg, "パスポート") {
		t.Errorf("verbatim fence content must stay visible: %q", msg)
	}
	if !strings.Contains(msg, "以上。") {
		t.Errorf("prose after the fence must survive: %q", msg)
	}
}
