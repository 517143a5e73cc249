package respond

import (
	"regexp"
)

var (
	// AI プロバイダのAPIキーパターン
	// 注意: anthropicKeyPatternを先に適用する（より具体的なパターンから）
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す。
// 回答生成クライアントのAPIキーとDBパスワードが対象。
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// 順序重要: より具体的なパターンから適用
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")

	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
