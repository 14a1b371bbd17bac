package summarizer

import "fmt"

const systemPrompt = "You summarize articles. Reply with the summary only, as plain prose in the language of the input text."

// buildPrompt asks a chat model for a summary inside the configured bounds. Params are
// token counts, so they are converted to the rough word counts chat models follow better.
//
// Example output:
//
//	"Summarize the following text in 22 to 97 words.\n\n{text}"
func buildPrompt(p Params, input string) string {
	return fmt.Sprintf("Summarize the following text in %d to %d words.\n\n%s",
		tokensToWords(p.MinLength), tokensToWords(p.MaxLength), input)
}

func tokensToWords(tokens int) int {
	return tokens * 3 / 4
}

// outputTokenBudget leaves headroom over MaxLength so that chat models are not cut off
// mid-sentence.
func outputTokenBudget(p Params) int {
	return max(p.MaxLength*2, 256)
}
