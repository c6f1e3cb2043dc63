package insight

import (
	"fmt"
	"strings"

	"newsdesk/internal/model"
)

// insightPrompt builds the per-article commentary prompt.
func insightPrompt(it model.NewsItem) string {
	body := it.Content
	if body == "" {
		body = it.Summary
	}
	if body == "" {
		body = it.NewsContent
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "다음 뉴스 기사를 읽고 2~4문장의 짧은 분석 코멘트를 작성해 주세요.\n")
	fmt.Fprintf(b, "왜 이 소식이 중요한지, 어떤 파급 효과가 있을지에 집중하고, 링크나 머리말 없이 본문만 출력하세요.\n\n")
	fmt.Fprintf(b, "제목: %s\n", it.Title)
	if body != "" {
		fmt.Fprintf(b, "내용: %s\n", body)
	}
	return b.String()
}

// replyPrompt builds the AI reply prompt for a human comment, embedding
// the article title and the comment text.
func replyPrompt(title, comment string) string {
	return fmt.Sprintf(
		"뉴스 기사 \"%s\" 에 대해 독자가 이런 의견을 남겼습니다:\n\"%s\"\n\n"+
			"이 의견에 대해 동의하거나 보완하는 관점을 2~3문장으로 답해 주세요. 정중하고 구체적으로, 본문만 출력하세요.",
		title, comment)
}
