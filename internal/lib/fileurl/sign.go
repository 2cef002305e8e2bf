// Package fileurl signs links handed to external web apps, so the app can trust the
// user id in the query until the link expires.
package fileurl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Sign adds expires and sig query parameters to rawURL.
// The signature covers "{subject}:{expiresUnix}" using HMAC-SHA256.
func Sign(rawURL, subject, secret string, ttl time.Duration) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	expires := time.Now().Add(ttl).Unix()

	q := u.Query()
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", computeHMAC(subject, expires, secret))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Verify checks that the HMAC signature is valid and the link has not expired.
func Verify(subject, expires, sig, secret string) bool {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > exp {
		return false
	}
	expected := computeHMAC(subject, exp, secret)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func computeHMAC(subject string, expires int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s:%d", subject, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}
