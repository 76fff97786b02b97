package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/estate_extract.txt
var estateTemplate string

//go:embed prompts/vision_date.txt
var visionDatePrompt string

// EstateSystemPrompt frames every estate extraction call.
const EstateSystemPrompt = "You extract fields from legal documents. Return ONLY a JSON object."

// BuildEstatePrompt fills the extraction template with the key list and document text.
func BuildEstatePrompt(keys []string, documentText string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = `"` + k + `"`
	}
	return strings.NewReplacer(
		"{key_list}", strings.Join(quoted, ", "),
		"{document_text}", documentText,
	).Replace(estateTemplate)
}

// VisionDatePrompt is sent with each cropped page image when the text pass found no date.
func VisionDatePrompt() string {
	return strings.TrimSpace(visionDatePrompt)
}
