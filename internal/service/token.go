package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// link tokens carry 256 bits of entropy and are bound to a single invite
const tokenBytes = 32

func newLinkToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error while generating link token. %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func linkUrl(baseUrl string, token string) string {
	return strings.TrimRight(baseUrl, "/") + "/bid/" + token
}
