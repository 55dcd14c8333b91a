package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// verifyInitData checks the WebApp initData signature and returns the embedded user.
// See https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
func verifyInitData(initData, botToken string, maxAge time.Duration, now time.Time) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}

	if !hmac.Equal([]byte(hash), []byte(signInitData(values, botToken))) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if maxAge > 0 && now.Sub(time.Unix(authDate, 0)) > maxAge {
		return nil, ErrExpiredInitData
	}

	raw := values.Get("user")
	if raw == "" {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInitData)
	}
	var u TelegramUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: bad user: %v", ErrInvalidInitData, err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInitData)
	}
	return &u, nil
}

// signInitData computes the hex hash Telegram puts in the "hash" field.
func signInitData(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(strings.Join(pairs, "\n"))))
}

func hmacSHA256(key, msg []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(msg)
	return m.Sum(nil)
}
