package slack

import (
	"fmt"
	"time"

	"portfolio-contact-api/internal/domain"
)

const (
	BlockHeader  = "header"
	BlockDivider = "divider"
	BlockSection = "section"
	BlockContext = "context"

	TextPlain    = "plain_text"
	TextMarkdown = "mrkdwn"
)

// Message is the Block Kit body accepted by Slack Incoming Webhooks
type Message struct {
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Fields   []TextObject `json:"fields,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// BlockFormatter builds the contact notification shown in Slack
type BlockFormatter struct {
	loc *time.Location
}

// NewBlockFormatter returns a formatter that stamps times in Japan Standard Time
func NewBlockFormatter() *BlockFormatter {
	return &BlockFormatter{loc: tokyo()}
}

func (f *BlockFormatter) Format(req *domain.ContactRequest, sentAt time.Time) (domain.Notification, error) {
	if req == nil {
		return nil, fmt.Errorf("slack: nil contact request")
	}

	return Message{
		Blocks: []Block{
			{
				Type: BlockHeader,
				Text: &TextObject{Type: TextPlain, Text: "📩 ポートフォリオからのお問い合わせ", Emoji: true},
			},
			{Type: BlockDivider},
			{
				Type: BlockSection,
				Fields: []TextObject{
					{Type: TextMarkdown, Text: "*お名前:*\n" + req.Name},
					{Type: TextMarkdown, Text: "*メールアドレス:*\n" + req.Email},
				},
			},
			{
				Type: BlockSection,
				Text: &TextObject{Type: TextMarkdown, Text: "*メッセージ:*\n" + req.Message},
			},
			{
				Type: BlockContext,
				Elements: []TextObject{
					{Type: TextMarkdown, Text: "送信日時: " + FormatJST(sentAt.In(f.loc))},
				},
			},
		},
	}, nil
}

// FormatJST renders t the way ja-JP locales print date and time, e.g. 2025/1/2 9:05:07
func FormatJST(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func tokyo() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// JST has no DST, a fixed zone is exact
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}
