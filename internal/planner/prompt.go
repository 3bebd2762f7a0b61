package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// basePrompt sets the assistant's role and the payload contract: prose for
// the user, plus a fenced json block whenever the itinerary should change.
const basePrompt = `あなたは日本の旅行プランナーです。ユーザーと対話しながら旅程を作ります。

回答のルール:
- ユーザーへの返事は自然な日本語で書いてください。
- 旅程を作成・変更するときは、返事の後に必ず ` + "```json" + ` フェンスで囲んだ
  旅程データを1つだけ出力してください。
- 旅程データの形式: {"title", "destination", "duration", "schedule": [{"day",
  "theme", "spots": [{"name", "description", "category", "scheduledTime",
  "durationMinutes", "estimatedCost"}]}]}
- category は sightseeing / dining / transportation / accommodation / other。
- scheduledTime は "09:00" のような24時間表記。
- 既存のスポットを変更するときは、そのスポットの id をそのまま含めてください。
- 旅程に変更がない返事では json ブロックを出力しないでください。`

// BuildSystemPrompt assembles the system prompt: the base instructions,
// the current itinerary as JSON context, the facts known so far, the
// phase-specific guidance, and the interview hint.
func BuildSystemPrompt(itin *itinerary.Itinerary, facts extract.Facts, hint string) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if itin != nil {
		if data, err := json.MarshalIndent(itin, "", "  "); err == nil {
			b.WriteString("\n\n現在の旅程:\n")
			b.Write(data)
		}
		b.WriteString("\n\n")
		b.WriteString(phaseGuidance(itin))
	}

	if data, err := json.MarshalIndent(facts, "", "  "); err == nil && string(data) != "{}" {
		b.WriteString("\n\nこれまでに分かっている条件:\n")
		b.Write(data)
	}

	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}
	return b.String()
}

// phaseGuidance tells the model what this planning step is about.
func phaseGuidance(itin *itinerary.Itinerary) string {
	switch itin.Phase {
	case itinerary.PhaseInitial, itinerary.PhaseCollecting:
		return "現在は条件ヒアリング中です。旅程はまだ作らず、質問と相談を中心にしてください。"
	case itinerary.PhaseSkeleton:
		return "現在は骨組み作成中です。各日のテーマと主要スポットだけの粗い旅程を作ってください。"
	case itinerary.PhaseDetailing:
		return fmt.Sprintf("現在は%d日目の詳細化中です。%d日目のスポットに時刻・費用・説明を付けてください。他の日は変更しないでください。", itin.CurrentDay, itin.CurrentDay)
	case itinerary.PhaseCompleted:
		return "旅程は完成済みです。質問には答えますが、大きな変更は確認してから行ってください。"
	default:
		return ""
	}
}
