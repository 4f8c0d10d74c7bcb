package telegram

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kitbuilder587/wikiseek/internal/view"
)

const messageLimit = 4096

const (
	callbackNewSearch     = "new_search"
	callbackRequeryPrefix = "rq:"
)

// FormatFragment renders a result fragment as Telegram HTML.
func FormatFragment(frag view.Fragment) string {
	var sb strings.Builder

	if frag.Summary != "" {
		sb.WriteString("<b>" + html.EscapeString(frag.Summary) + "</b>\n\n")
	}

	for i, e := range frag.Entries {
		switch e.Kind {
		case view.EntryArticle:
			sb.WriteString(fmt.Sprintf("<a href=\"%s\">%s</a>\n", html.EscapeString(e.LinkURL), html.EscapeString(e.Title)))
			sb.WriteString(renderSnippet(e.Snippet) + "...\n")
			sb.WriteString(fmt.Sprintf("<i>Article Word Count:</i> %d\n", e.WordCount))
		case view.EntrySuggestion:
			sb.WriteString(html.EscapeString(e.Title) + "\n")
		}
		if i < len(frag.Entries)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

const searchmatchOpen = `<span class="searchmatch">`

// renderSnippet keeps the snippet text as delivered but translates the
// service's searchmatch spans into tags Telegram accepts. Everything
// else is escaped.
func renderSnippet(snippet string) string {
	s := strings.ReplaceAll(snippet, searchmatchOpen, "\x00")
	s = strings.ReplaceAll(s, "</span>", "\x01")
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "\x00", "<b>")
	s = strings.ReplaceAll(s, "\x01", "</b>")
	return s
}

// fragmentKeyboard builds the affordance buttons: one "search again"
// button per entry, plus the "New search" row when the reset affordance
// is visible. Callback data carries the entry index; the view resolves
// it back to the query text.
func fragmentKeyboard(frag view.Fragment, newSearchVisible bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, e := range frag.Entries {
		var label string
		switch e.Kind {
		case view.EntrySuggestion:
			label = fmt.Sprintf("Search %q", e.Requery)
		default:
			label = "Search: " + e.Requery
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncateLabel(label, 64), fmt.Sprintf("%s%d", callbackRequeryPrefix, i)),
		))
	}

	if newSearchVisible {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("New search", callbackNewSearch),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncateLabel(label string, maxLen int) string {
	if len(label) <= maxLen {
		return label
	}
	// back up to a rune boundary so the cut never splits a multibyte
	// character
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(label[cut]) {
		cut--
	}
	return label[:cut] + "..."
}

// SplitMessage cuts text into chunks that fit the Telegram message
// limit without splitting inside an HTML tag.
func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) {
			continue
		}
		if isInsideHTMLTag(text, i) {
			continue
		}

		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}

	// split point landed inside a tag, walk to its end
	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return maxLen
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}
