package utils

import (
	"encoding/base64"
	"fmt"
)

// ToDataUri renders a binary payload as a base64 "data:" URI
func ToDataUri(contentType string, payload []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(payload))
}
