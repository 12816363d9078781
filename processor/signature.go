package processor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader 回调签名头，格式 t=<unix>,v1=<hex>
const SignatureHeader = "mux-signature"

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Verifier 校验回调签名，签名内容为 "<t>.<原始 body>"
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

func (v *Verifier) Verify(body []byte, header string) error {
	if header == "" {
		return ErrMissingSignature
	}
	ts, sigs, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}
	if v.tolerance > 0 {
		age := v.now().Sub(time.Unix(ts, 0))
		if age > v.tolerance || age < -v.tolerance {
			return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
		}
	}
	expected := Sign(v.secret, ts, body)
	for _, sig := range sigs {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Sign 生成 v1 签名
func Sign(secret []byte, ts int64, body []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(strconv.FormatInt(ts, 10)))
	h.Write([]byte("."))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// SignatureFor 生成完整的签名头，测试与本地调试使用
func SignatureFor(secret string, ts time.Time, body []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), Sign([]byte(secret), ts.Unix(), body))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		ts    int64
		hasTS bool
		sigs  []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
			}
			ts, hasTS = n, true
		case "v1":
			sigs = append(sigs, value)
		}
	}
	if !hasTS || len(sigs) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}
	return ts, sigs, nil
}
