// Package vnpay builds signed VNPay payment URLs and verifies signed gateway
// callbacks. The canonicalization in signData is dictated by the gateway and
// must be byte-identical on both halves: any divergence invalidates every
// signature.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	version = "2.1.0"
	command = "pay"

	// ResponseCodeSuccess is the gateway's code for a completed payment.
	ResponseCodeSuccess = "00"

	hashParam     = "vnp_SecureHash"
	hashTypeParam = "vnp_SecureHashType"
)

var (
	ErrInvalidSignature = errors.New("vnpay: signature mismatch")
	ErrMissingSignature = errors.New("vnpay: callback has no secure hash")
)

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

type Client struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

// PaymentRequest describes one payment attempt for an order. Amount is in the
// store's smallest currency unit; the gateway's minor-unit convention (x100)
// is applied here.
type PaymentRequest struct {
	OrderID  uint
	Amount   int64
	ClientIP string
}

// CallbackData is the verified content of a gateway callback.
type CallbackData struct {
	TxnRef       string
	OrderID      uint
	Amount       int64
	ResponseCode string
	BankCode     string
}

// encode URL-encodes s with encoded spaces as '+', the form the gateway signs.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%20", "+")
}

// signData canonicalizes params and returns the hex HMAC-SHA512 digest.
// Pairs are sorted by encoded key, not raw key; the gateway recomputes the
// same ordering.
func signData(params map[string]string, secret string) string {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{encode(k), encode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.k)
		b.WriteByte('=')
		b.WriteString(p.v)
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign computes the secure hash over a parameter set exactly as the gateway
// does. Exposed so sandbox tooling and tests can construct valid callbacks.
func Sign(params map[string]string, secret string) string {
	return signData(params, secret)
}

// BuildPaymentURL returns the gateway redirect URL for one payment attempt.
// The transaction reference is time-based and unique per attempt; the order id
// travels in vnp_OrderInfo so the callback can locate the order. The secure
// hash is appended after signing and is never part of the signed payload.
func (c *Client) BuildPaymentURL(req PaymentRequest) string {
	now := c.now()
	params := map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    command,
		"vnp_TmnCode":    c.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     strconv.FormatInt(now.UnixNano(), 10),
		"vnp_OrderInfo":  strconv.FormatUint(uint64(req.OrderID), 10),
		"vnp_OrderType":  "other",
		"vnp_Locale":     "vn",
		"vnp_ReturnUrl":  c.cfg.ReturnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": now.Format("20060102150405"),
	}

	hash := signData(params, c.cfg.HashSecret)

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set(hashParam, hash)

	return c.cfg.PayURL + "?" + query.Encode()
}

// VerifyCallback authenticates an inbound callback parameter set. The hash
// fields are stripped, the remainder re-canonicalized and re-signed, and the
// digests compared in constant time. It fails closed: a missing or mismatched
// hash never yields callback data.
func (c *Client) VerifyCallback(values url.Values) (*CallbackData, error) {
	received := values.Get(hashParam)
	if received == "" {
		return nil, ErrMissingSignature
	}

	params := make(map[string]string, len(values))
	for k := range values {
		if k == hashParam || k == hashTypeParam {
			continue
		}
		params[k] = values.Get(k)
	}

	expected := signData(params, c.cfg.HashSecret)
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, ErrInvalidSignature
	}

	orderID, err := strconv.ParseUint(values.Get("vnp_OrderInfo"), 10, 64)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	var amount int64
	if raw := values.Get("vnp_Amount"); raw != "" {
		gatewayAmount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidSignature
		}
		amount = gatewayAmount / 100
	}

	return &CallbackData{
		TxnRef:       values.Get("vnp_TxnRef"),
		OrderID:      uint(orderID),
		Amount:       amount,
		ResponseCode: values.Get("vnp_ResponseCode"),
		BankCode:     values.Get("vnp_BankCode"),
	}, nil
}
