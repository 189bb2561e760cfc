package segment

import (
	"regexp"
	"strings"
)

var sentinelPattern = regexp.MustCompile(`(?i)\*{20}\[(item_\d+[a-z]?)\]\*{20}`)

// TextBlock is the text of one section.
type TextBlock struct {
	Key  string `json:"item_key"`
	Text string `json:"text"`
}

// Split cuts linearized text at every sentinel. Each block runs from the end
// of its sentinel to the start of the next one (or the end of text), trimmed.
// Text before the first sentinel belongs to no block.
func Split(text string) []TextBlock {
	matches := sentinelPattern.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]TextBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, TextBlock{
			Key:  strings.ToLower(text[m[2]:m[3]]),
			Text: strings.TrimSpace(text[m[1]:end]),
		})
	}
	return blocks
}
