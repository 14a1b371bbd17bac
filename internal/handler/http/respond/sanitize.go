package respond

import (
	"regexp"
)

// Patterns are applied in order; more specific ones come first.
var (
	anthropicKeyPattern   = regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]+`)
	openaiKeyPattern      = regexp.MustCompile(`sk-[a-zA-Z0-9\-_]{10,}`)
	huggingFaceKeyPattern = regexp.MustCompile(`hf_[a-zA-Z0-9]{10,}`)
	bearerPattern         = regexp.MustCompile(`(?i)(bearer\s+)[a-zA-Z0-9\-_.~+/=]+`)

	// user:password@ in redis://, rediss:// or any other URL.
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// api_key=..., token=... in query strings.
	querySecretPattern = regexp.MustCompile(`(?i)([?&](?:api_key|apikey|key|token|access_token)=)[^&\s"]+`)
)

// SanitizeError returns the message of err with API keys, bearer tokens and URL
// credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}

// Sanitize masks secrets in msg.
func Sanitize(msg string) string {
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = huggingFaceKeyPattern.ReplaceAllString(msg, "hf_****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = querySecretPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
