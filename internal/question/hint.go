package question

import (
	"fmt"
	"strings"
)

// DefaultCompletionThreshold is the interview coverage rate at which the
// assistant may suggest moving to the next phase.
const DefaultCompletionThreshold = 0.6

// PromptHint renders the interview guidance appended to the system prompt:
// which question to ask next, how complete the interview is, and whether
// the assistant may propose advancing the phase.
func PromptHint(q *Queue, threshold float64) string {
	if threshold <= 0 {
		threshold = DefaultCompletionThreshold
	}

	var b strings.Builder
	status := q.Completion()
	fmt.Fprintf(&b, "ヒアリング進捗: %d/%d\n", status.Answered, status.Total)

	if next := q.NextQuestion(); next != nil {
		fmt.Fprintf(&b, "次に聞くべき質問: %s\n", next.Text)
		if next.FollowUp != "" {
			fmt.Fprintf(&b, "補足: %s\n", next.FollowUp)
		}
		b.WriteString("回答への返信に、この質問を自然に織り込んでください。\n")
	}

	mayTransition := status.RequiredFilled && status.Rate >= threshold
	if mayTransition {
		b.WriteString("必須情報は揃っています。次のステップに進めることをユーザーに伝えて構いません。\n")
	}
	if q.AllAsked() {
		b.WriteString("質問はすべて済んでいます。次のステップへの移行を提案してください。\n")
	}
	return b.String()
}
